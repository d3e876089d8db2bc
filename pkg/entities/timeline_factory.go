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

// NewEntranceTimeline 创建页面加载时的入场时间轴并立即播放
//
// 每个 StepConfig 按属性展开为多个补间：第一个属性按 Offset 相对上一步结束定位，
// 其余属性与它同时开始。From 中列出的属性在创建时即写入起始值。
//
// 参数:
//   - timelines: 时间轴系统
//   - cfg: 入场配置
//
// 返回:
//   - ecs.EntityID: 时间轴实体ID
//   - error: 缓动名称无效或没有步骤时返回错误
func NewEntranceTimeline(timelines *systems.TimelineSystem, cfg *config.TimelineConfig) (ecs.EntityID, error) {
	if timelines == nil {
		return 0, fmt.Errorf("timeline system cannot be nil")
	}
	if cfg == nil || len(cfg.Steps) == 0 {
		return 0, fmt.Errorf("entrance timeline has no steps")
	}

	var steps []components.TimelineStep
	for i, step := range cfg.Steps {
		easing, err := utils.EasingByName(step.Ease)
		if err != nil {
			return 0, fmt.Errorf("entrance step %d: %w", i, err)
		}
		expanded := tweenSteps(visual.Target(step.Target), step.From, step.To, step.Duration, easing)
		if len(expanded) == 0 {
			continue
		}
		expanded[0].Offset = step.Offset
		expanded[0].Position = components.PositionAfterPrevious
		steps = append(steps, expanded...)
	}

	id := timelines.Create("entrance", cfg.Delay, steps...)
	timelines.Play(id)
	return id, nil
}

// NewRevealTimeline 创建单个元素的入场时间轴（未播放，等待触发器）
// 所有属性同时开始
func NewRevealTimeline(timelines *systems.TimelineSystem, target visual.Target, from, to config.Props, duration float64, easing utils.Easing) ecs.EntityID {
	return timelines.Create("reveal:"+string(target), 0, tweenSteps(target, from, to, duration, easing)...)
}

// tweenSteps 把一组属性展开为同时开始的时间轴步骤
// 百分比数值在这里按原值使用（入场动画只使用像素和比例属性）
func tweenSteps(target visual.Target, from, to config.Props, duration float64, easing utils.Easing) []components.TimelineStep {
	steps := make([]components.TimelineStep, 0, len(to))
	for _, prop := range to {
		spec := components.TweenSpec{
			Target:   target,
			Property: prop.Name,
			To:       prop.Value.Number,
			Duration: duration,
			Easing:   easing,
		}
		if v, ok := from.Get(prop.Name); ok {
			spec.HasFrom = true
			spec.From = v.Number
		}
		steps = append(steps, components.TimelineStep{
			Tween:    spec,
			Position: components.PositionWithPrevious,
		})
	}
	return steps
}

// revealProperties 把分组入场的属性表转换为 RevealProperty
// From 省略的属性使用样式默认值
func revealProperties(from, to config.Props) []systems.RevealProperty {
	props := make([]systems.RevealProperty, 0, len(to))
	for _, prop := range to {
		start := systems.DefaultValue(prop.Name)
		if v, ok := from.Get(prop.Name); ok {
			start = v.Number
		}
		props = append(props, systems.RevealProperty{
			Property: prop.Name,
			From:     start,
			To:       prop.Value.Number,
		})
	}
	return props
}
