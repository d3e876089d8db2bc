package utils

import (
	"math"
	"testing"
)

// TestParseAnchor 测试锚点解析与换算
func TestParseAnchor(t *testing.T) {
	element := Rect{Y: 2000, H: 600}
	const vh = 800.0

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"元素顶到视口底", "top bottom", 1200, false},
		{"元素顶到视口顶", "top top", 2000, false},
		{"元素顶到视口30%", "top 30%", 1760, false},
		{"元素顶到视口88%", "top 88%", 1296, false},
		{"元素底到视口顶", "bottom top", 2600, false},
		{"元素中心到视口中心", "center center", 1900, false},
		{"负百分比", "top -100%", 2800, false},
		{"像素值", "top 100px", 1900, false},
		{"裸数字", "50% 0", 2300, false},
		{"单个词", "top", 0, true},
		{"非法词", "middle bottom", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseAnchor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAnchor(%q) 应返回错误", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnchor(%q) 意外错误: %v", tt.input, err)
			}
			if got := a.Resolve(element, vh); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%q 解析偏移 = %v, 期望 %v", tt.input, got, tt.want)
			}
		})
	}
}
