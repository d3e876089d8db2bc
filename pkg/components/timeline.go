package components

import (
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// StepPosition 时间轴步骤的定位方式
type StepPosition int

const (
	// PositionAfterPrevious 起点 = 上一步结束 + Offset（默认）
	PositionAfterPrevious StepPosition = iota
	// PositionWithPrevious 起点 = 上一步开始 + Offset（与上一步同时开始）
	PositionWithPrevious
)

// TweenSpec 描述时间轴中的一个补间
type TweenSpec struct {
	Target   visual.Target
	Property string

	// HasFrom 为 true 时使用显式起始值（fromTo），
	// 起始值在时间轴构建时即写入，使元素在播放前保持初始状态
	HasFrom bool
	From    float64

	To       float64
	Duration float64
	Easing   utils.Easing

	// Repeat 额外重复次数（-1 无限），Yoyo 往返
	Repeat int
	Yoyo   bool

	TextProperty string
	Format       func(value float64) string
}

// TimelineStep 时间轴中的一步
type TimelineStep struct {
	Tween TweenSpec

	// Offset 相对偏移（秒），负值表示与上一步重叠
	Offset float64

	// Position 偏移的参照点
	Position StepPosition
}

// TimelineState 时间轴播放状态
type TimelineState int

const (
	// TimelineIdle 已构建，未播放
	TimelineIdle TimelineState = iota
	// TimelinePlaying 播放中
	TimelinePlaying
	// TimelineDone 所有步骤均已启动，终态
	TimelineDone
)

// TimelineComponent 时间轴组件
// 有序的补间序列，共享同一个播放原点；只播放一次，不可暂停或倒放
type TimelineComponent struct {
	// Label 调试用名称
	Label string

	// Steps 步骤列表（播放开始后不可修改）
	Steps []TimelineStep

	// StartTimes 每一步的绝对起点（秒，相对播放原点，不含 Delay）
	// 由 TimelineSystem 在创建时计算
	StartTimes []float64

	// Delay 播放原点之前的等待时间（秒）
	Delay float64

	// State 播放状态
	State TimelineState

	// Clock 自播放原点起经过的时间（秒，含 Delay）
	Clock float64

	// Launched 每一步是否已启动补间
	Launched []bool

	// Fresh 本帧刚开始播放，首次更新不推进时钟
	Fresh bool
}
