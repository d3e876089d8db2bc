package visual

import "github.com/gonewx/scrollstage/pkg/utils"

// StaticLayout 固定布局，实现 Geometry
//
// 元素矩形在初始化后不变（资源已加载、内容高度固定）。
// 宿主在窗口尺寸变化时调用 SetViewport。
//
// 固定定位元素（导航栏、光标）以视口坐标放置，Bounds 按最近一次
// Follow 的滚动偏移换算成文档坐标。
type StaticLayout struct {
	rects          map[Target]utils.Rect
	fixed          map[Target]bool
	order          []Target
	offset         float64
	viewportWidth  float64
	viewportHeight float64
	scrollHeight   float64
}

// NewStaticLayout 创建固定布局
func NewStaticLayout(viewportWidth, viewportHeight float64) *StaticLayout {
	return &StaticLayout{
		rects:          make(map[Target]utils.Rect),
		fixed:          make(map[Target]bool),
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// Place 放置元素；文档高度随最低元素的底边增长
func (l *StaticLayout) Place(target Target, rect utils.Rect) {
	if _, exists := l.rects[target]; !exists {
		l.order = append(l.order, target)
	}
	l.rects[target] = rect
	if rect.Bottom() > l.scrollHeight {
		l.scrollHeight = rect.Bottom()
	}
}

// PlaceFixed 放置固定定位元素（视口坐标），不影响文档高度
func (l *StaticLayout) PlaceFixed(target Target, rect utils.Rect) {
	if _, exists := l.rects[target]; !exists {
		l.order = append(l.order, target)
	}
	l.rects[target] = rect
	l.fixed[target] = true
}

// IsFixed 元素是否为固定定位
func (l *StaticLayout) IsFixed(target Target) bool {
	return l.fixed[target]
}

// Follow 记录当前滚动偏移，可直接作为滚动订阅者
func (l *StaticLayout) Follow(offset float64) {
	l.offset = offset
}

// Remove 移除元素（模拟元素暂时无法测量）
func (l *StaticLayout) Remove(target Target) {
	delete(l.rects, target)
	delete(l.fixed, target)
	for i, t := range l.order {
		if t == target {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// SetViewport 更新视口尺寸
func (l *StaticLayout) SetViewport(width, height float64) {
	l.viewportWidth = width
	l.viewportHeight = height
}

// SetScrollHeight 显式设置文档高度（不小于已放置元素的底边）
func (l *StaticLayout) SetScrollHeight(h float64) {
	if h > l.scrollHeight {
		l.scrollHeight = h
	}
}

// Bounds 实现 Geometry
func (l *StaticLayout) Bounds(target Target) (utils.Rect, bool) {
	r, ok := l.rects[target]
	if ok && l.fixed[target] {
		r = r.Offset(0, l.offset)
	}
	return r, ok
}

// Viewport 实现 Geometry
func (l *StaticLayout) Viewport() (float64, float64) {
	return l.viewportWidth, l.viewportHeight
}

// ScrollHeight 实现 Geometry
func (l *StaticLayout) ScrollHeight() float64 {
	return l.scrollHeight
}

// Targets 按放置顺序返回全部元素
func (l *StaticLayout) Targets() []Target {
	out := make([]Target, len(l.order))
	copy(out, l.order)
	return out
}
