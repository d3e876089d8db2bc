package components

import (
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// TriggerMode 触发方式
type TriggerMode int

const (
	// ActivateOnVisibility 可见比例从阈值以下越过阈值时触发
	ActivateOnVisibility TriggerMode = iota
	// ActivateOnAnchor 滚动偏移越过锚点（如 "top 88%"）时触发
	ActivateOnAnchor
)

// TriggerState 一次性触发器状态
type TriggerState int

const (
	// TriggerPending 等待触发
	TriggerPending TriggerState = iota
	// TriggerFired 已触发，终态，永不回退
	TriggerFired
)

// TriggerComponent 一次性（ONESHOT）触发器组件
// 元素进入视口时播放绑定的时间轴，整个页面生命周期内最多触发一次
type TriggerComponent struct {
	// Target 被观察的元素
	Target visual.Target

	// Mode 触发方式
	Mode TriggerMode

	// Threshold 可见比例阈值（ActivateOnVisibility）
	Threshold float64

	// Anchor 锚点（ActivateOnAnchor）
	Anchor utils.Anchor

	// Timeline 触发时播放的时间轴实体
	Timeline ecs.EntityID

	// State 当前状态
	State TriggerState

	// WasActive 上一次测量时是否已达到触发条件
	// 初始为 false：加载时已在视口内的元素会在第一帧触发
	WasActive bool
}
