package visual

import "image/color"

// Palette 页面主题配色
type Palette struct {
	Background color.RGBA
	Section    color.RGBA
	Backdrop   color.RGBA
	Card       color.RGBA
	Button     color.RGBA
	Bar        color.RGBA
	Accent     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
}

var palettes = map[string]Palette{
	"light": {
		Background: color.RGBA{0xf7, 0xf5, 0xf0, 0xff},
		Section:    color.RGBA{0xfb, 0xfa, 0xf7, 0xff},
		Backdrop:   color.RGBA{0xe8, 0xe2, 0xd4, 0xff},
		Card:       color.RGBA{0xff, 0xff, 0xff, 0xff},
		Button:     color.RGBA{0x1f, 0x3a, 0x5f, 0xff},
		Bar:        color.RGBA{0xff, 0xff, 0xff, 0xff},
		Accent:     color.RGBA{0xc8, 0x8a, 0x2e, 0xff},
		Text:       color.RGBA{0x1a, 0x1a, 0x1a, 0xff},
		Muted:      color.RGBA{0x6b, 0x6b, 0x6b, 0xff},
	},
	"dark": {
		Background: color.RGBA{0x0b, 0x0f, 0x17, 0xff},
		Section:    color.RGBA{0x10, 0x16, 0x22, 0xff},
		Backdrop:   color.RGBA{0x1c, 0x26, 0x3a, 0xff},
		Card:       color.RGBA{0x17, 0x20, 0x30, 0xff},
		Button:     color.RGBA{0xd4, 0xa5, 0x4a, 0xff},
		Bar:        color.RGBA{0x0b, 0x0f, 0x17, 0xff},
		Accent:     color.RGBA{0xd4, 0xa5, 0x4a, 0xff},
		Text:       color.RGBA{0xf0, 0xf0, 0xf0, 0xff},
		Muted:      color.RGBA{0x9a, 0xa3, 0xb2, 0xff},
	},
}

// PaletteFor 返回主题配色，未知主题使用浅色
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes["light"]
}

// Fill 返回元素类型的填充色；文本类元素不填充
func (p Palette) Fill(kind string) (color.RGBA, bool) {
	switch kind {
	case KindSection:
		return p.Section, true
	case "backdrop":
		return p.Backdrop, true
	case "card":
		return p.Card, true
	case "button":
		return p.Button, true
	case "bar":
		return p.Bar, true
	case "progress", "indicator":
		return p.Accent, true
	}
	return color.RGBA{}, false
}

// Ink 返回元素类型的文字颜色
func (p Palette) Ink(kind string) color.RGBA {
	switch kind {
	case "button":
		return p.Background
	case "text":
		return p.Muted
	case "counter":
		return p.Accent
	}
	return p.Text
}

// 各类元素的字号
var fontSizes = map[string]float64{
	"title":   34,
	"counter": 40,
	"button":  17,
	"text":    17,
	"card":    18,
}

// FontSize 返回元素类型的字号；不显示文字的类型返回 false
func FontSize(kind string) (float64, bool) {
	size, ok := fontSizes[kind]
	return size, ok
}

// Fade 按不透明度和模糊缩放颜色的 alpha
// 模糊没有逐像素实现，按半径降低不透明度近似
func Fade(c color.RGBA, opacity, blur float64) color.RGBA {
	a := opacity
	if blur > 0 {
		a *= 1 / (1 + blur/10)
	}
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// 预乘 alpha
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
