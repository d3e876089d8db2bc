// Package visual 定义动画核心与表现层之间的边界
//
// 核心只通过 Sink 写样式属性、通过 Geometry 读元素几何信息，
// 从不直接接触渲染原语。桌面端（ebiten）、终端预览（tcell）和
// 离屏快照（gg）各自提供实现；测试使用 StyleBook 记录写入。
package visual

import "github.com/gonewx/scrollstage/pkg/utils"

// Target 是可渲染元素的不透明句柄（例如 "hero-title"）
// 核心从不创建或销毁 Target，只修改其样式
type Target string

// 常用样式属性名
const (
	PropOpacity = "opacity"
	PropX       = "x"
	PropY       = "y"
	PropScale   = "scale"
	PropScaleX  = "scaleX"
	PropBlur    = "blur" // 模糊半径（像素）
	PropPinY    = "pinY" // 固定区块时抵消滚动的纵向平移
	PropText    = "text"
	PropHover   = "hovering" // 0 / 1
	PropSpotX   = "spotX"
	PropSpotY   = "spotY"
	PropMagnetX = "magnetX" // 磁吸偏移，叠加在 x / y 之上
	PropMagnetY = "magnetY"
	PropScroll  = "scrollTop" // 文档虚拟滚动位置
	PropFlag    = "scrolled"  // 导航栏"已滚动"标记 0 / 1
)

// Sink 接收核心产生的样式写入，由表现层实现
type Sink interface {
	SetNumber(target Target, property string, value float64)
	SetText(target Target, property string, value string)
}

// Geometry 提供元素的布局信息，由表现层实现
//
// Bounds 返回元素在文档坐标中的矩形（不含核心写入的变换）。
// 元素暂时无法测量时返回 false，调用方跳过本帧并在下一帧重试。
type Geometry interface {
	Bounds(target Target) (utils.Rect, bool)
	Viewport() (width, height float64)
	ScrollHeight() float64
}
