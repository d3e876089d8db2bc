package components

import (
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// PinClass 区块分类
type PinClass int

const (
	// PinNatural 高于视口的区块，按正常文档流滚动，从不固定
	PinNatural PinClass = iota
	// PinPinnable 不高于视口的区块，可固定
	PinPinnable
)

func (c PinClass) String() string {
	if c == PinPinnable {
		return "PINNABLE"
	}
	return "NATURAL"
}

// PinComponent 区块固定片段（PinSegment）
// 在 [RangeStart, RangeEnd] 滚动区间内保持区块的屏幕位置不变，
// 同时由下一个区块的进入驱动本区块的淡出（淡出由配套的 ScrubComponent 完成）
type PinComponent struct {
	// Section 被固定的区块
	Section visual.Target

	// Next 下一个区块（淡出由它的位置驱动）
	Next visual.Target

	// RangeStart 固定开始的滚动偏移（= 区块顶部）
	RangeStart float64

	// RangeEnd 固定结束的滚动偏移（= 区块顶部 + 视口高度）
	RangeEnd float64

	// Active 当前是否处于固定状态
	Active bool

	// Fade 配套淡出绑定的实体ID
	Fade ecs.EntityID
}
