package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalPage = `
name: test
pinning: true
layout:
  - {target: hero, y: 0, w: 1280, h: 800}
  - {target: hero-bg, y: 0, w: 1280, h: 800}
  - {target: hero-title, y: 300, w: 800, h: 90}
  - {target: stats, y: 800, w: 1280, h: 400}
  - {target: stat-1, y: 900, w: 220, h: 200}
  - {target: stat-1-value, y: 940, w: 180, h: 60}
sections: [hero, stats]
entrance:
  delay: 0.3
  steps:
    - {target: hero-title, from: {y: 50, opacity: 0}, to: {y: 0, opacity: 1}, duration: 1, ease: power3.out}
groups:
  - container: stats
    children: [stat-1]
    start: top 85%
    from: {opacity: 0, y: 40}
    to: {opacity: 1, y: 0}
    duration: 0.8
    ease: power3.out
scrubs:
  - target: hero-bg
    trigger: hero
    start: top top
    end: bottom top
    to: {y: 20%}
counters:
  - {target: stat-1-value, end: 100, suffix: "%", ease: power2.out}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadPageConfig(t *testing.T) {
	cfg, err := LoadPageConfig(writeConfig(t, minimalPage))
	if err != nil {
		t.Fatalf("LoadPageConfig failed: %v", err)
	}

	if cfg.Name != "test" || !cfg.Pinning {
		t.Errorf("name=%q pinning=%v", cfg.Name, cfg.Pinning)
	}

	// 默认值
	if cfg.Viewport.Width != 1280 || cfg.Viewport.Height != 800 {
		t.Errorf("默认视口应为 1280x800，实际 %vx%v", cfg.Viewport.Width, cfg.Viewport.Height)
	}
	if cfg.Chrome.Document != "document" {
		t.Errorf("默认文档元素应为 document，实际 %q", cfg.Chrome.Document)
	}
	if cfg.Groups[0].Stagger != 0.12 {
		t.Errorf("默认错开间隔应为 0.12，实际 %v", cfg.Groups[0].Stagger)
	}
	if cfg.Counters[0].Threshold != 0.5 || cfg.Counters[0].Duration != 2 {
		t.Errorf("计数器默认阈值 0.5、时长 2，实际 %v / %v", cfg.Counters[0].Threshold, cfg.Counters[0].Duration)
	}

	// 百分比
	y, ok := cfg.Scrubs[0].To.Get("y")
	if !ok || !y.Percent || y.Number != 0.2 {
		t.Errorf("y: 20%% 应解析为比例 0.2，实际 %+v", y)
	}

	// 属性顺序保持书写顺序
	names := cfg.Groups[0].From.Names()
	if len(names) != 2 || names[0] != "opacity" || names[1] != "y" {
		t.Errorf("属性顺序应为 [opacity y]，实际 %v", names)
	}
	names = cfg.Entrance.Steps[0].From.Names()
	if names[0] != "y" || names[1] != "opacity" {
		t.Errorf("属性顺序应为 [y opacity]，实际 %v", names)
	}

	if el, ok := cfg.Element("stat-1"); !ok || el.Y != 900 {
		t.Errorf("Element(stat-1) = %+v, %v", el, ok)
	}
}

func TestLoadPageConfigErrors(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(string) string
		errContains string
	}{
		{
			name:        "未知缓动",
			mutate:      func(s string) string { return strings.Replace(s, "ease: power2.out", "ease: bounce.wobble", 1) },
			errContains: "unknown easing",
		},
		{
			name:        "未知元素",
			mutate:      func(s string) string { return strings.Replace(s, "children: [stat-1]", "children: [stat-9]", 1) },
			errContains: "unknown target \"stat-9\"",
		},
		{
			name:        "锚点格式错误",
			mutate:      func(s string) string { return strings.Replace(s, "start: top 85%", "start: top", 1) },
			errContains: "two words",
		},
		{
			name:        "无效百分比",
			mutate:      func(s string) string { return strings.Replace(s, "y: 20%", "y: abc%", 1) },
			errContains: "invalid percentage",
		},
		{
			name:        "重复元素",
			mutate:      func(s string) string { return strings.Replace(s, "target: hero-bg, y: 0", "target: hero, y: 0", 1) },
			errContains: "duplicate target",
		},
		{
			name:        "负时长",
			mutate:      func(s string) string { return strings.Replace(s, "duration: 0.8", "duration: -1", 1) },
			errContains: "duration must be >= 0",
		},
		{
			name:        "阈值越界",
			mutate:      func(s string) string { return strings.Replace(s, "end: 100,", "end: 100, threshold: 1.5,", 1) },
			errContains: "threshold must be in [0, 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPageConfig(writeConfig(t, tt.mutate(minimalPage)))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestLoadPageConfigMissingFile(t *testing.T) {
	_, err := LoadPageConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read page config") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestShippedVariants 随程序发布的两个页面变体都能通过校验
func TestShippedVariants(t *testing.T) {
	tests := []struct {
		variant string
		pinning bool
		scrubs  int
	}{
		{"light", true, 1},
		{"dark", false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			cfg, err := LoadPageConfig(filepath.Join("..", "..", VariantPath(tt.variant)))
			if err != nil {
				t.Fatalf("LoadPageConfig failed: %v", err)
			}
			if cfg.Name != tt.variant || cfg.Pinning != tt.pinning {
				t.Errorf("name=%q pinning=%v", cfg.Name, cfg.Pinning)
			}
			if len(cfg.Scrubs) != tt.scrubs {
				t.Errorf("scrubs = %d, want %d", len(cfg.Scrubs), tt.scrubs)
			}
			if len(cfg.Counters) != 4 {
				t.Errorf("counters = %d, want 4", len(cfg.Counters))
			}
			if cfg.Entrance == nil || cfg.Entrance.Delay != 0.3 || len(cfg.Entrance.Steps) != 6 {
				t.Error("hero 入场时间轴配置不完整")
			}
		})
	}
}
