package systems

import (
	"log"
	"math"
	"sort"

	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// ScrollState 页面滚动状态
//
// 由唯一的 ScrollSystem 持有并写入；其他组件只能通过只读方法访问。
// 不存在包级全局实例，每个 Stage 拥有自己的一份。
type ScrollState struct {
	raw     float64
	virtual float64
	limit   float64
}

// Raw 原生（目标）滚动偏移
func (s *ScrollState) Raw() float64 { return s.raw }

// Virtual 平滑后的虚拟滚动偏移，所有动画都基于它计算
func (s *ScrollState) Virtual() float64 { return s.virtual }

// Limit 最大滚动偏移（文档高度 - 视口高度）
func (s *ScrollState) Limit() float64 { return s.limit }

// ScrollConfig 平滑滚动配置
type ScrollConfig struct {
	// Smoothing 平滑时长（秒），越大越滞后。原版页面为 1.2
	Smoothing float64
	// WheelMultiplier 滚轮增量倍数
	WheelMultiplier float64
	// TouchMultiplier 触摸增量倍数
	TouchMultiplier float64
	// Epsilon 判断"已稳定"的阈值（像素）
	Epsilon float64
}

// DefaultScrollConfig 返回默认平滑滚动配置
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		Smoothing:       1.2,
		WheelMultiplier: 1,
		TouchMultiplier: 1,
		Epsilon:         0.5,
	}
}

// ScrollListener 每帧接收虚拟滚动偏移
type ScrollListener func(offset float64)

// ScrollSystem 平滑滚动模拟器
//
// 累积滚轮/触摸增量到原生偏移（限制在 [0, limit]），每帧以
// virtual += (raw - virtual) * k 逼近，k = 1 - e^(-λ·dt)。
// 指数衰减收敛：永不过冲，也永不精确相等（用 Settled 判断稳定）。
type ScrollSystem struct {
	state    ScrollState
	geometry visual.Geometry
	config   ScrollConfig
	rate     float64

	listeners    map[int]ScrollListener
	nextListener int
	closed       bool
}

// NewScrollSystem 创建平滑滚动系统
// 零值配置项使用默认值
func NewScrollSystem(geometry visual.Geometry, config ScrollConfig) *ScrollSystem {
	defaults := DefaultScrollConfig()
	if config.Smoothing <= 0 {
		config.Smoothing = defaults.Smoothing
	}
	if config.WheelMultiplier <= 0 {
		config.WheelMultiplier = defaults.WheelMultiplier
	}
	if config.TouchMultiplier <= 0 {
		config.TouchMultiplier = defaults.TouchMultiplier
	}
	if config.Epsilon <= 0 {
		config.Epsilon = defaults.Epsilon
	}

	s := &ScrollSystem{
		geometry:  geometry,
		config:    config,
		rate:      utils.DecayRate(config.Smoothing),
		listeners: make(map[int]ScrollListener),
	}
	s.refreshLimit()
	return s
}

// State 返回只读滚动状态
func (s *ScrollSystem) State() *ScrollState {
	return &s.state
}

// OnWheel 接收滚轮增量（像素，向下为正）
func (s *ScrollSystem) OnWheel(deltaY float64) {
	s.setRaw(s.state.raw + deltaY*s.config.WheelMultiplier)
}

// OnTouchDelta 接收触摸拖动增量（像素，向下为正）
func (s *ScrollSystem) OnTouchDelta(deltaY float64) {
	s.setRaw(s.state.raw + deltaY*s.config.TouchMultiplier)
}

// ScrollTo 平滑滚动到指定偏移
func (s *ScrollSystem) ScrollTo(offset float64) {
	s.setRaw(offset)
}

// ScrollToTarget 平滑滚动到元素顶部（导航锚点）
// 元素无法测量时返回 false
func (s *ScrollSystem) ScrollToTarget(target visual.Target) bool {
	rect, ok := s.geometry.Bounds(target)
	if !ok {
		log.Printf("[ScrollSystem] 无法滚动到 %s: 元素无法测量", target)
		return false
	}
	s.setRaw(rect.Y)
	return true
}

// Jump 立即跳到指定偏移（原生与虚拟偏移同时设置）
func (s *ScrollSystem) Jump(offset float64) {
	s.setRaw(offset)
	s.state.virtual = s.state.raw
}

// SyncNative 同步宿主原生滚动（滚动条拖动、键盘翻页）
// 只更新原生偏移，虚拟偏移照常平滑追赶
func (s *ScrollSystem) SyncNative(offset float64) {
	s.setRaw(offset)
}

// Resize 视口或文档尺寸变化后重新计算滚动上限
func (s *ScrollSystem) Resize() {
	s.refreshLimit()
	s.setRaw(s.state.raw)
	if s.state.virtual > s.state.limit {
		s.state.virtual = s.state.limit
	}
}

// Settled 原生与虚拟偏移之差小于阈值
func (s *ScrollSystem) Settled() bool {
	return math.Abs(s.state.raw-s.state.virtual) < s.config.Epsilon
}

// Subscribe 订阅每帧的虚拟偏移，返回取消订阅函数
func (s *ScrollSystem) Subscribe(listener ScrollListener) func() {
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	return func() {
		delete(s.listeners, id)
	}
}

// Update 推进一帧：虚拟偏移向原生偏移逼近，并向所有订阅者发布
// 无论偏移是否变化，每帧都会发布（订阅者应保证幂等）
func (s *ScrollSystem) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.state.virtual = utils.Approach(s.state.virtual, s.state.raw, s.rate, deltaTime)

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.listeners[id](s.state.virtual)
	}
}

// Close 释放全部订阅，停止推进
func (s *ScrollSystem) Close() {
	s.closed = true
	s.listeners = make(map[int]ScrollListener)
}

func (s *ScrollSystem) setRaw(offset float64) {
	if s.closed {
		return
	}
	s.state.raw = utils.Clamp(offset, 0, s.state.limit)
}

func (s *ScrollSystem) refreshLimit() {
	_, vh := s.geometry.Viewport()
	limit := s.geometry.ScrollHeight() - vh
	if limit < 0 {
		limit = 0
	}
	s.state.limit = limit
}
