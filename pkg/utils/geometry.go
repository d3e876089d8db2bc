package utils

// Rect 轴对齐矩形（文档坐标，像素）
type Rect struct {
	X, Y, W, H float64
}

// Bottom 返回矩形底边Y坐标
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Right 返回矩形右边X坐标
func (r Rect) Right() float64 { return r.X + r.W }

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains 检查点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Offset 返回平移后的矩形
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ViewportRect 返回滚动偏移为 offset 时视口在文档坐标中的矩形
func ViewportRect(offset, width, height float64) Rect {
	return Rect{X: 0, Y: offset, W: width, H: height}
}

// VisibleFraction 计算元素在视口内可见的比例
//
// 只考虑纵向：交集高度 / 元素高度，结果在 [0, 1]。
// 高度为 0 的元素在视口内（含边界）时视为完全可见，否则为 0。
func VisibleFraction(element, viewport Rect) float64 {
	if element.H <= 0 {
		if element.Y >= viewport.Y && element.Y <= viewport.Bottom() {
			return 1
		}
		return 0
	}

	top := element.Y
	if viewport.Y > top {
		top = viewport.Y
	}
	bottom := element.Bottom()
	if viewport.Bottom() < bottom {
		bottom = viewport.Bottom()
	}

	if bottom <= top {
		return 0
	}
	return Clamp01((bottom - top) / element.H)
}
