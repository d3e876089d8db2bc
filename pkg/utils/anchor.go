package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor 描述"元素上的某点与视口上的某条线对齐"的位置，例如 "top 88%"。
//
// 第一个词是元素上的点，第二个词是视口上的线。每个词可以是
// top / center / bottom、百分比（相对元素或视口高度）或像素值（"120px" 或 "120"）。
type Anchor struct {
	ElementFrac float64 // 元素高度的比例
	ElementPx   float64 // 额外像素偏移
	ViewFrac    float64 // 视口高度的比例
	ViewPx      float64
}

// ParseAnchor 解析 "top 88%" 形式的锚点描述
func ParseAnchor(s string) (Anchor, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Anchor{}, fmt.Errorf("anchor %q must have two words (element, viewport)", s)
	}

	var a Anchor
	var err error
	if a.ElementFrac, a.ElementPx, err = parseAnchorWord(fields[0]); err != nil {
		return Anchor{}, fmt.Errorf("anchor %q element part: %w", s, err)
	}
	if a.ViewFrac, a.ViewPx, err = parseAnchorWord(fields[1]); err != nil {
		return Anchor{}, fmt.Errorf("anchor %q viewport part: %w", s, err)
	}
	return a, nil
}

// MustParseAnchor 同 ParseAnchor，解析失败时 panic（仅用于常量锚点）
func MustParseAnchor(s string) Anchor {
	a, err := ParseAnchor(s)
	if err != nil {
		panic(err)
	}
	return a
}

func parseAnchorWord(w string) (frac, px float64, err error) {
	switch w {
	case "top":
		return 0, 0, nil
	case "center":
		return 0.5, 0, nil
	case "bottom":
		return 1, 0, nil
	}

	if strings.HasSuffix(w, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64)
		if err != nil {
			return 0, 0, err
		}
		return v / 100, 0, nil
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(w, "px"), 64)
	if err != nil {
		return 0, 0, err
	}
	return 0, v, nil
}

// Resolve 计算锚点对齐时的滚动偏移量
//
// 元素点的文档坐标 = element.Y + ElementFrac*element.H + ElementPx
// 视口线相对视口顶部 = ViewFrac*viewportHeight + ViewPx
// 两者重合时 offset = 元素点 - 视口线
func (a Anchor) Resolve(element Rect, viewportHeight float64) float64 {
	elementPoint := element.Y + a.ElementFrac*element.H + a.ElementPx
	viewLine := a.ViewFrac*viewportHeight + a.ViewPx
	return elementPoint - viewLine
}
