package components

import (
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// ScrollRange 滚动区间
//
// 两种形式：
//   - 绝对区间：Anchored=false，直接使用 Start / End（像素）
//   - 锚定区间：Anchored=true，每帧根据 Trigger 元素的几何信息把
//     StartAnchor / EndAnchor 换算成像素
type ScrollRange struct {
	Start float64
	End   float64

	Anchored    bool
	Trigger     visual.Target
	StartAnchor utils.Anchor
	EndAnchor   utils.Anchor
}

// ScrubProperty 一个被滚动驱动的属性
type ScrubProperty struct {
	Property string
	From     float64
	To       float64

	// RelativeTo 非空时，From/To 是该元素高度的比例（如视差 "20%"）
	RelativeTo visual.Target
}

// ScrubComponent 滚动驱动（SCRUB）绑定组件
// 进度 p = clamp((offset - Start) / (End - Start), 0, 1)，属性值 = From + (To-From) * p
// 除滚动偏移外没有任何隐藏状态，完全可逆
type ScrubComponent struct {
	// Target 被修改的元素
	Target visual.Target

	// Range 滚动区间
	Range ScrollRange

	// Properties 同一进度驱动的属性列表
	Properties []ScrubProperty

	// Easing 进度映射，nil 视为线性（GSAP ease: "none"）
	Easing utils.Easing

	// LastProgress 最近一次计算的进度（只用于调试和测试，不参与计算）
	LastProgress float64
}
