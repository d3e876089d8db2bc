// Package stage 组装滚动动画核心并按固定顺序推进每一帧
//
// Stage 是唯一的上下文对象：它拥有滚动状态、ECS 实体管理器和全部系统，
// 宿主只通过它输入事件、推进时间，并从注入的 visual.Sink 读取样式。
package stage

import (
	"fmt"
	"log"

	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/systems"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// 帧间隔异常时的处理：超过 LagThreshold 的间隔按 LagFrame 计算，
// 避免窗口拖动或切到后台回来后所有动画瞬间跳到终点
const (
	LagThreshold = 0.5
	LagFrame     = 1.0 / 30
)

// Settings Stage 构建参数
type Settings struct {
	Scroll  systems.ScrollConfig
	Pointer systems.PointerConfig

	// Document 文档根元素，接收 scrollTop
	Document visual.Target
	// ProgressBar 阅读进度条，可为空
	ProgressBar visual.Target
	// Nav 导航栏，可为空
	Nav visual.Target
}

// Stage 页面动画引擎实例
type Stage struct {
	entityManager *ecs.EntityManager
	sink          visual.Sink
	geometry      visual.Geometry
	scheduler     Scheduler

	scroll    *systems.ScrollSystem
	tweens    *systems.TweenSystem
	timelines *systems.TimelineSystem
	triggers  *systems.TriggerSystem
	pins      *systems.PinSystem
	pointer   *systems.PointerSystem
	progress  *systems.ProgressSystem

	// failed 已出错的系统，之后跳过（对应元素停在最后写入的静态样式）
	failed  map[string]bool
	started bool
	closed  bool
}

// New 创建引擎
//
// 指针能力开关在这里检查一次：此时 geometry.Viewport() 的宽度决定
// 指针效果在整个生命周期内是否启用。
func New(sink visual.Sink, geometry visual.Geometry, scheduler Scheduler, settings Settings) *Stage {
	em := ecs.NewEntityManager()
	scroll := systems.NewScrollSystem(geometry, settings.Scroll)
	state := scroll.State()
	tweens := systems.NewTweenSystem(em, sink)
	timelines := systems.NewTimelineSystem(em, tweens)
	triggers := systems.NewTriggerSystem(em, geometry, state, timelines, sink)

	document := settings.Document
	if document == "" {
		document = "document"
	}

	return &Stage{
		entityManager: em,
		sink:          sink,
		geometry:      geometry,
		scheduler:     scheduler,
		scroll:        scroll,
		tweens:        tweens,
		timelines:     timelines,
		triggers:      triggers,
		pins:          systems.NewPinSystem(em, geometry, state, triggers, sink),
		pointer:       systems.NewPointerSystem(em, geometry, state, tweens, sink, settings.Pointer),
		progress:      systems.NewProgressSystem(state, sink, document, settings.ProgressBar, settings.Nav),
		failed:        make(map[string]bool),
	}
}

// Start 把 Tick 注册到调度器
func (s *Stage) Start() {
	if s.started || s.closed {
		return
	}
	s.started = true
	if s.scheduler != nil {
		s.scheduler.Start(s.Tick)
	}
	log.Printf("[Stage] 启动 (滚动上限 %.0f, 指针效果 %v)", s.scroll.State().Limit(), s.pointer.Enabled())
}

// Tick 推进一帧
//
// 顺序：滚动 → 触发器/滚动绑定 → 固定区块 → 时间轴 → 补间 → 指针跟随 → 阅读进度。
// 触发器在时间轴之前求值，时间轴在补间之前，保证触发当帧就写入起始值。
func (s *Stage) Tick(deltaTime float64) {
	if s.closed {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	if deltaTime > LagThreshold {
		deltaTime = LagFrame
	}

	s.run("scroll", s.scroll.Update, deltaTime)
	s.run("triggers", s.triggers.Update, deltaTime)
	s.run("pins", s.pins.Update, deltaTime)
	s.run("timelines", s.timelines.Update, deltaTime)
	s.run("tweens", s.tweens.Update, deltaTime)
	s.run("pointer", s.pointer.Update, deltaTime)
	s.run("progress", s.progress.Update, deltaTime)

	s.entityManager.RemoveMarkedEntities()
}

// run 执行一个系统；系统 panic 后记录日志并在之后的帧中跳过
func (s *Stage) run(name string, update func(float64), deltaTime float64) {
	if s.failed[name] {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.failed[name] = true
			log.Printf("[Stage] 系统 %s 出错，已停用: %v", name, r)
		}
	}()
	update(deltaTime)
}

// Close 停止调度并释放全部订阅和指针监听
func (s *Stage) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.scroll.Close()
	s.pointer.Close()
	log.Printf("[Stage] 已关闭")
}

// Closed 引擎是否已关闭
func (s *Stage) Closed() bool {
	return s.closed
}

// Failed 返回已停用的系统名
func (s *Stage) Failed() []string {
	var names []string
	for _, name := range []string{"scroll", "triggers", "pins", "timelines", "tweens", "pointer", "progress"} {
		if s.failed[name] {
			names = append(names, name)
		}
	}
	return names
}

// OnWheel 滚轮输入（像素，向下为正）
func (s *Stage) OnWheel(deltaY float64) {
	s.scroll.OnWheel(deltaY)
}

// OnTouchDelta 触摸拖动输入（像素，向下为正）
func (s *Stage) OnTouchDelta(deltaY float64) {
	s.scroll.OnTouchDelta(deltaY)
}

// SyncNative 宿主原生滚动（滚动条、键盘）
func (s *Stage) SyncNative(offset float64) {
	s.scroll.SyncNative(offset)
}

// OnPointerMove 指针移动（视口坐标）
func (s *Stage) OnPointerMove(x, y float64) {
	if s.closed {
		return
	}
	s.pointer.OnPointerMove(x, y)
}

// OnPointerLeave 指针离开窗口
func (s *Stage) OnPointerLeave() {
	if s.closed {
		return
	}
	s.pointer.OnPointerLeave()
}

// OnResize 视口或文档尺寸变化（Geometry 已更新后调用）
// 指针能力开关不会重新评估
func (s *Stage) OnResize() {
	s.scroll.Resize()
}

// ScrollTo 平滑滚动到偏移
func (s *Stage) ScrollTo(offset float64) {
	s.scroll.ScrollTo(offset)
}

// ScrollToTarget 平滑滚动到元素（导航锚点）
func (s *Stage) ScrollToTarget(target visual.Target) error {
	if !s.scroll.ScrollToTarget(target) {
		return fmt.Errorf("scroll target %q cannot be measured", target)
	}
	return nil
}

// ReadingProgress 阅读进度 [0, 1]（最近一帧的值）
func (s *Stage) ReadingProgress() float64 {
	return s.progress.Progress()
}

// ScrollState 只读滚动状态
func (s *Stage) ScrollState() *systems.ScrollState {
	return s.scroll.State()
}

// Settled 平滑滚动是否已稳定
func (s *Stage) Settled() bool {
	return s.scroll.Settled()
}

// Subscribe 订阅每帧虚拟偏移
func (s *Stage) Subscribe(listener systems.ScrollListener) func() {
	return s.scroll.Subscribe(listener)
}

// Sink 返回样式写入目标
func (s *Stage) Sink() visual.Sink { return s.sink }

// Geometry 返回布局信息来源
func (s *Stage) Geometry() visual.Geometry { return s.geometry }

// EntityManager 返回实体管理器（构建页面时使用）
func (s *Stage) EntityManager() *ecs.EntityManager { return s.entityManager }

// Tweens 返回补间系统
func (s *Stage) Tweens() *systems.TweenSystem { return s.tweens }

// Timelines 返回时间轴系统
func (s *Stage) Timelines() *systems.TimelineSystem { return s.timelines }

// Triggers 返回触发器系统
func (s *Stage) Triggers() *systems.TriggerSystem { return s.triggers }

// Pins 返回区块固定系统
func (s *Stage) Pins() *systems.PinSystem { return s.pins }

// Pointer 返回指针效果系统
func (s *Stage) Pointer() *systems.PointerSystem { return s.pointer }
