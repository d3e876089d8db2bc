package components

import (
	"github.com/gonewx/scrollstage/pkg/visual"
)

// FollowerComponent 光标跟随组件
// 以指数衰减方式逼近指针坐标（与平滑滚动同一定律，常数不同）
type FollowerComponent struct {
	// Target 跟随元素（光标圆点或圆环）
	Target visual.Target

	// Rate 衰减率 λ（1/秒），由平滑时长换算
	Rate float64

	// X, Y 当前坐标（视口坐标）
	X, Y float64

	// HoverScale 悬停在可交互元素上时的目标缩放（0 表示不缩放）
	HoverScale float64

	// Scale, ScaleVelocity 缩放弹簧状态
	Scale         float64
	ScaleVelocity float64
}

// MagneticComponent 磁吸组件
// 指针在元素内移动时，元素向指针方向偏移 (pointer - center) * Strength；
// 指针离开时以弹性缓动回到原位。偏移写入 magnetX / magnetY，
// 与入场动画的 x / y 叠加，互不覆盖
type MagneticComponent struct {
	Target visual.Target

	// Strength 磁吸强度（原版按钮为 0.3）
	Strength float64

	// Inside 指针当前是否在元素内
	Inside bool
}

// SpotlightComponent 聚光卡片组件
// 指针在卡片内移动时写入相对卡片左上角的坐标（spotX / spotY）
type SpotlightComponent struct {
	Target visual.Target
}

// InteractiveComponent 可交互元素标记
// 指针悬停其上时，跟随光标进入 hovering 状态
type InteractiveComponent struct {
	Target visual.Target
}
