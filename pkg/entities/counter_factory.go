package entities

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/stage"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

const (
	// CounterInitialText 计数器触发前显示的文本
	CounterInitialText = "0"
	// CounterProperty 计数器数值所在的内部属性
	CounterProperty = "counter"
)

// FormatCounter 渲染计数器文本：前缀 + 四舍五入的整数 + 后缀
func FormatCounter(prefix string, value float64, suffix string) string {
	return prefix + strconv.FormatInt(int64(math.Round(value)), 10) + suffix
}

// NewCounter 创建数字计数器
//
// 元素可见比例首次达到阈值时，数值在 Duration 内从 0 补间到 End，
// 每帧以文本形式写入。触发前显示 "0"。
//
// 返回:
//   - ecs.EntityID: 触发器实体ID
//   - error: 配置无效时返回错误
func NewCounter(st *stage.Stage, cfg config.CounterConfig) (ecs.EntityID, error) {
	if st == nil {
		return 0, fmt.Errorf("stage cannot be nil")
	}
	easing, err := utils.EasingByName(cfg.Ease)
	if err != nil {
		return 0, fmt.Errorf("counter %s: %w", cfg.Target, err)
	}

	target := visual.Target(cfg.Target)
	prefix, suffix := cfg.Prefix, cfg.Suffix
	timeline := st.Timelines().Create("counter:"+cfg.Target, 0, components.TimelineStep{
		Tween: components.TweenSpec{
			Target:       target,
			Property:     CounterProperty,
			HasFrom:      true,
			From:         0,
			To:           cfg.End,
			Duration:     cfg.Duration,
			Easing:       easing,
			TextProperty: visual.PropText,
			Format: func(value float64) string {
				return FormatCounter(prefix, value, suffix)
			},
		},
	})

	st.Sink().SetText(target, visual.PropText, CounterInitialText)
	return st.Triggers().RegisterOneShot(target, cfg.Threshold, timeline), nil
}
