package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 1 - 0.125 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	t.Run("开始快于线性", func(t *testing.T) {
		for p := 0.1; p < 0.5; p += 0.1 {
			if EaseOutCubic(p) <= EaseLinear(p) {
				t.Errorf("EaseOutCubic(%v) 应该大于线性值（开始快）", p)
			}
		}
	})
}

// TestEaseOutQuart 测试四次方缓出（入场动画默认曲线）
func TestEaseOutQuart(t *testing.T) {
	if got := EaseOutQuart(0.5); math.Abs(got-0.9375) > 1e-9 {
		t.Errorf("EaseOutQuart(0.5) = %v, 期望 0.9375", got)
	}
	if EaseOutQuart(0.3) <= EaseOutCubic(0.3) {
		t.Error("power3.out 前段应比 power2.out 更快")
	}
}

// TestEasingEndpoints 所有缓动函数必须满足 f(0)=0, f(1)=1
func TestEasingEndpoints(t *testing.T) {
	easings := map[string]Easing{
		"linear":        EaseLinear,
		"outCubic":      EaseOutCubic,
		"inCubic":       EaseInCubic,
		"inOutCubic":    EaseInOutCubic,
		"outQuad":       EaseOutQuad,
		"inQuad":        EaseInQuad,
		"outQuart":      EaseOutQuart,
		"inOutSine":     EaseInOutSine,
		"outExpo":       EaseOutExpo,
		"smoothScroll":  EaseSmoothScroll,
		"elastic(1,.4)": EaseOutElastic(1, 0.4),
		"elastic(2,.3)": EaseOutElastic(2, 0.3),
	}

	for name, fn := range easings {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); math.Abs(got) > 1e-9 {
				t.Errorf("f(0) = %v, 期望 0", got)
			}
			if got := fn(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("f(1) = %v, 期望 1", got)
			}
		})
	}
}

// TestEaseOutElasticOvershoots 弹性缓动应越过终点再回落
func TestEaseOutElasticOvershoots(t *testing.T) {
	fn := EaseOutElastic(1, 0.4)
	maxValue := 0.0
	for p := 0.0; p <= 1.0; p += 0.01 {
		if v := fn(p); v > maxValue {
			maxValue = v
		}
	}
	if maxValue <= 1.0 {
		t.Errorf("弹性缓动最大值 %v 应大于 1（过冲）", maxValue)
	}
}

// TestEasingByName 测试按名称查找缓动函数
func TestEasingByName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		at      float64
		want    float64
		wantErr bool
	}{
		{"默认为线性", "", 0.3, 0.3, false},
		{"none", "none", 0.3, 0.3, false},
		{"power2.out", "power2.out", 0.5, 0.875, false},
		{"power3.out", "power3.out", 0.5, 0.9375, false},
		{"弹性带参数", "elastic.out(1, 0.4)", 1, 1, false},
		{"弹性无参数", "elastic.out", 1, 1, false},
		{"未知名称", "bounce.sideways", 0, 0, true},
		{"参数个数错误", "elastic.out(1)", 0, 0, true},
		{"参数非数字", "elastic.out(a, b)", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := EasingByName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("EasingByName(%q) 应返回错误", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("EasingByName(%q) 意外错误: %v", tt.input, err)
			}
			if got := fn(tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s(%v) = %v, 期望 %v", tt.input, tt.at, got, tt.want)
			}
		})
	}
}

// TestLerp 测试线性插值
func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 100, 0, 0},
		{0, 100, 1, 100},
		{0, 100, 0.5, 50},
		{60, 0, 0.25, 45},
	}
	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp01(-0.5) != 0 || Clamp01(1.5) != 1 || Clamp01(0.4) != 0.4 {
		t.Error("Clamp01 结果不正确")
	}
	if Clamp(5, 10, 20) != 10 || Clamp(25, 10, 20) != 20 {
		t.Error("Clamp 结果不正确")
	}
}
