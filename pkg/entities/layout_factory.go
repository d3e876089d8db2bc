package entities

import (
	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// BuildLayout 根据页面配置创建静态布局
// 固定定位元素使用视口坐标，其余元素使用文档坐标
func BuildLayout(cfg *config.PageConfig) *visual.StaticLayout {
	layout := visual.NewStaticLayout(cfg.Viewport.Width, cfg.Viewport.Height)
	for _, el := range cfg.Layout {
		rect := utils.Rect{X: el.X, Y: el.Y, W: el.W, H: el.H}
		if el.Fixed {
			layout.PlaceFixed(visual.Target(el.Target), rect)
			continue
		}
		layout.Place(visual.Target(el.Target), rect)
	}
	return layout
}

// BuildElements 根据页面配置生成渲染用的元素描述，顺序与配置一致
func BuildElements(cfg *config.PageConfig) []visual.Element {
	elements := make([]visual.Element, 0, len(cfg.Layout))
	for _, el := range cfg.Layout {
		elements = append(elements, visual.Element{
			Target: visual.Target(el.Target),
			Kind:   el.Kind,
			Label:  el.Label,
			Rect:   utils.Rect{X: el.X, Y: el.Y, W: el.W, H: el.H},
			Fixed:  el.Fixed,
		})
	}
	return elements
}
