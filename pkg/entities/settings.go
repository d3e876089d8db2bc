package entities

import (
	"fmt"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/stage"
	"github.com/gonewx/scrollstage/pkg/systems"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// StageSettings 把页面配置转换为引擎参数
// 配置中省略的数值保持零值，由各系统填充默认值
func StageSettings(cfg *config.PageConfig) (stage.Settings, error) {
	if cfg == nil {
		return stage.Settings{}, fmt.Errorf("page config cannot be nil")
	}

	scroll := systems.DefaultScrollConfig()
	if cfg.Scroll.Smoothing > 0 {
		scroll.Smoothing = cfg.Scroll.Smoothing
	}
	if cfg.Scroll.WheelMultiplier > 0 {
		scroll.WheelMultiplier = cfg.Scroll.WheelMultiplier
	}
	if cfg.Scroll.TouchMultiplier > 0 {
		scroll.TouchMultiplier = cfg.Scroll.TouchMultiplier
	}

	pointer := systems.PointerConfig{
		Threshold:      cfg.Pointer.Threshold,
		DotSmoothing:   cfg.Pointer.DotSmoothing,
		RingSmoothing:  cfg.Pointer.RingSmoothing,
		HoverScale:     cfg.Pointer.HoverScale,
		MagnetDuration: cfg.Pointer.MagnetDuration,
		ReturnDuration: cfg.Pointer.ReturnDuration,
	}
	// 空名称表示使用默认缓动，而不是线性
	if cfg.Pointer.MagnetEase != "" {
		easing, err := utils.EasingByName(cfg.Pointer.MagnetEase)
		if err != nil {
			return stage.Settings{}, fmt.Errorf("pointer magnet easing: %w", err)
		}
		pointer.MagnetEasing = easing
	}
	if cfg.Pointer.ReturnEase != "" {
		easing, err := utils.EasingByName(cfg.Pointer.ReturnEase)
		if err != nil {
			return stage.Settings{}, fmt.Errorf("pointer return easing: %w", err)
		}
		pointer.ReturnEasing = easing
	}

	return stage.Settings{
		Scroll:      scroll,
		Pointer:     pointer,
		Document:    visual.Target(cfg.Chrome.Document),
		ProgressBar: visual.Target(cfg.Chrome.ProgressBar),
		Nav:         visual.Target(cfg.Chrome.Nav),
	}, nil
}
