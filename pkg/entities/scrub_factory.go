package entities

import (
	"fmt"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/systems"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// NewScrub 创建滚动驱动绑定
//
// 区间由 Trigger 元素上的两个锚点确定。百分比数值相对 Trigger 元素的高度，
// 同一属性的起止值必须同为百分比或同为像素。
func NewScrub(triggers *systems.TriggerSystem, cfg config.ScrubConfig) (ecs.EntityID, error) {
	if triggers == nil {
		return 0, fmt.Errorf("trigger system cannot be nil")
	}
	start, err := utils.ParseAnchor(cfg.Start)
	if err != nil {
		return 0, fmt.Errorf("scrub %s: %w", cfg.Target, err)
	}
	end, err := utils.ParseAnchor(cfg.End)
	if err != nil {
		return 0, fmt.Errorf("scrub %s: %w", cfg.Target, err)
	}
	easing, err := utils.EasingByName(cfg.Ease)
	if err != nil {
		return 0, fmt.Errorf("scrub %s: %w", cfg.Target, err)
	}

	trigger := visual.Target(cfg.Trigger)
	props := make([]components.ScrubProperty, 0, len(cfg.To))
	for _, prop := range cfg.To {
		sp := components.ScrubProperty{
			Property: prop.Name,
			From:     systems.DefaultValue(prop.Name),
			To:       prop.Value.Number,
		}
		if prop.Value.Percent {
			sp.RelativeTo = trigger
			// 百分比属性省略起点时从 0 开始
			sp.From = 0
		}
		if v, ok := cfg.From.Get(prop.Name); ok {
			if v.Percent != prop.Value.Percent {
				return 0, fmt.Errorf("scrub %s: property %q mixes percentage and pixel values", cfg.Target, prop.Name)
			}
			sp.From = v.Number
		}
		props = append(props, sp)
	}

	return triggers.RegisterScrub(visual.Target(cfg.Target), components.ScrollRange{
		Anchored:    true,
		Trigger:     trigger,
		StartAnchor: start,
		EndAnchor:   end,
	}, props, easing), nil
}
