package stage

// FrameFunc 每帧回调，deltaTime 为距上一帧的秒数
type FrameFunc func(deltaTime float64)

// Scheduler 帧调度器
//
// 核心不依赖具体的帧循环：ebiten 宿主在 Update 中推进，
// 终端预览在自己的事件循环中推进，测试以固定步长推进。
type Scheduler interface {
	Start(frame FrameFunc)
	Stop()
}

// StepScheduler 由调用方显式推进的调度器
type StepScheduler struct {
	frame   FrameFunc
	running bool
	frames  int
}

// NewStepScheduler 创建步进调度器
func NewStepScheduler() *StepScheduler {
	return &StepScheduler{}
}

// Start 实现 Scheduler
func (s *StepScheduler) Start(frame FrameFunc) {
	s.frame = frame
	s.running = true
}

// Stop 实现 Scheduler，之后的 Step 不再调用回调
func (s *StepScheduler) Stop() {
	s.running = false
	s.frame = nil
}

// Step 推进一帧，调度器未运行时返回 false
func (s *StepScheduler) Step(deltaTime float64) bool {
	if !s.running || s.frame == nil {
		return false
	}
	s.frames++
	s.frame(deltaTime)
	return true
}

// Running 调度器是否在运行
func (s *StepScheduler) Running() bool {
	return s.running
}

// Frames 已推进的帧数
func (s *StepScheduler) Frames() int {
	return s.frames
}
