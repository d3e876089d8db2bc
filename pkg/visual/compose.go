package visual

import (
	"sort"

	"github.com/gonewx/scrollstage/pkg/utils"
)

// 渲染宿主识别的元素类型
const (
	KindSection = "section"
	KindCursor  = "cursor"
)

// Element 一个可渲染元素的静态描述
type Element struct {
	Target Target
	Kind   string
	Label  string
	// Rect 文档坐标；Fixed 时为视口坐标
	Rect  utils.Rect
	Fixed bool
}

// Item 合成后的一帧绘制指令
type Item struct {
	Element

	// Screen 屏幕坐标矩形（已计入滚动、固定平移、位移和缩放）
	Screen  utils.Rect
	Opacity float64
	Blur    float64
	// Text 文本属性覆盖 Label
	Text     string
	Hovering bool
	// Scrolled 导航栏的"已滚动"状态
	Scrolled bool

	HasSpot      bool
	SpotX, SpotY float64
}

// Composer 把样式表中的属性合成为屏幕上的绘制指令
//
// 普通元素继承所在区块的固定平移、不透明度、缩放和模糊；
// 固定元素直接使用视口坐标。三个渲染宿主共用同一套合成规则。
type Composer struct {
	elements []Element
	section  map[Target]Target
}

// NewComposer 创建合成器；区块归属按元素顶部所在的区块确定
func NewComposer(elements []Element) *Composer {
	c := &Composer{section: make(map[Target]Target)}

	// 普通元素在前，固定元素（导航、光标）绘制在最上层
	c.elements = make([]Element, len(elements))
	copy(c.elements, elements)
	sort.SliceStable(c.elements, func(i, j int) bool {
		return !c.elements[i].Fixed && c.elements[j].Fixed
	})

	var sections []Element
	for _, el := range c.elements {
		if el.Kind == KindSection && !el.Fixed {
			sections = append(sections, el)
		}
	}
	for _, el := range c.elements {
		if el.Fixed || el.Kind == KindSection {
			continue
		}
		for _, s := range sections {
			if el.Rect.Y >= s.Rect.Y && el.Rect.Y < s.Rect.Bottom() {
				c.section[el.Target] = s.Target
				break
			}
		}
	}
	return c
}

// Elements 返回按绘制顺序排列的元素
func (c *Composer) Elements() []Element {
	return c.elements
}

// Compose 合成一帧，跳过完全透明或位于视口外的元素
func (c *Composer) Compose(book *StyleBook, offset, viewportWidth, viewportHeight float64) []Item {
	viewport := utils.Rect{W: viewportWidth, H: viewportHeight}
	items := make([]Item, 0, len(c.elements))

	for _, el := range c.elements {
		item := Item{
			Element: el,
			Opacity: book.NumberOr(el.Target, PropOpacity, 1),
			Blur:    book.NumberOr(el.Target, PropBlur, 0),
			Text:    el.Label,
		}
		if text, ok := book.Text(el.Target, PropText); ok {
			item.Text = text
		}
		item.Hovering = book.NumberOr(el.Target, PropHover, 0) > 0
		item.Scrolled = book.NumberOr(el.Target, PropFlag, 0) > 0
		if x, ok := book.Number(el.Target, PropSpotX); ok {
			item.HasSpot = true
			item.SpotX = x
			item.SpotY = book.NumberOr(el.Target, PropSpotY, 0)
		}

		rect := el.Rect
		dx := book.NumberOr(el.Target, PropX, 0)
		dy := book.NumberOr(el.Target, PropY, 0)
		switch {
		case el.Kind == KindCursor:
			// 光标元素的 x/y 是指针位置，未写入前不显示
			if _, ok := book.Number(el.Target, PropX); !ok {
				continue
			}
			rect = utils.Rect{X: dx - rect.W/2, Y: dy - rect.H/2, W: rect.W, H: rect.H}
		case el.Fixed:
			dx += book.NumberOr(el.Target, PropMagnetX, 0)
			dy += book.NumberOr(el.Target, PropMagnetY, 0)
			rect = rect.Offset(dx, dy)
		default:
			dx += book.NumberOr(el.Target, PropMagnetX, 0)
			dy += book.NumberOr(el.Target, PropMagnetY, 0)
			pinY := book.NumberOr(el.Target, PropPinY, 0)
			rect = rect.Offset(dx, dy+pinY-offset)
		}
		rect = scaleRect(rect, book.NumberOr(el.Target, PropScale, 1))
		rect.W *= book.NumberOr(el.Target, PropScaleX, 1)

		if parent, ok := c.section[el.Target]; ok {
			rect = c.inherit(book, parent, rect, offset, &item)
		}

		if item.Opacity <= 0 || !intersects(rect, viewport) {
			continue
		}
		item.Screen = rect
		items = append(items, item)
	}
	return items
}

// inherit 应用所在区块的固定平移、缩放、不透明度和模糊
func (c *Composer) inherit(book *StyleBook, parent Target, rect utils.Rect, offset float64, item *Item) utils.Rect {
	rect = rect.Offset(0, book.NumberOr(parent, PropPinY, 0))
	item.Opacity *= book.NumberOr(parent, PropOpacity, 1)
	if blur := book.NumberOr(parent, PropBlur, 0); blur > item.Blur {
		item.Blur = blur
	}

	scale := book.NumberOr(parent, PropScale, 1)
	if scale == 1 {
		return rect
	}
	for _, el := range c.elements {
		if el.Target != parent {
			continue
		}
		section := el.Rect.Offset(0, book.NumberOr(parent, PropPinY, 0)-offset)
		cx, cy := section.Center()
		return utils.Rect{
			X: cx + (rect.X-cx)*scale,
			Y: cy + (rect.Y-cy)*scale,
			W: rect.W * scale,
			H: rect.H * scale,
		}
	}
	return rect
}

// scaleRect 以中心为原点缩放
func scaleRect(r utils.Rect, scale float64) utils.Rect {
	if scale == 1 {
		return r
	}
	cx, cy := r.Center()
	w, h := r.W*scale, r.H*scale
	return utils.Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func intersects(a, b utils.Rect) bool {
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}
