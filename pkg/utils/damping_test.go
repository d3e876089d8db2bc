package utils

import (
	"math"
	"testing"
)

// TestDecayRateMonotonic 平滑时长越大，单帧系数越小
func TestDecayRateMonotonic(t *testing.T) {
	const dt = 1.0 / 60.0
	prev := 1.0
	for _, duration := range []float64{0.1, 0.45, 1.2, 2.0} {
		k := DecayFactor(DecayRate(duration), dt)
		if k <= 0 || k >= 1 {
			t.Fatalf("duration=%v: k=%v 不在 (0,1)", duration, k)
		}
		if k >= prev {
			t.Errorf("duration=%v: k=%v 应小于上一个 %v", duration, k, prev)
		}
		prev = k
	}
}

// TestDecayConvergesAfterDuration 经过 duration 秒后剩余差值约为 1/1024
func TestDecayConvergesAfterDuration(t *testing.T) {
	const dt = 1.0 / 120.0
	rate := DecayRate(1.2)

	current := 0.0
	for i := 0; i < 144; i++ { // 1.2 秒
		current = Approach(current, 1000, rate, dt)
	}

	remaining := 1000 - current
	if math.Abs(remaining-1000.0/1024.0) > 0.01 {
		t.Errorf("剩余差值 %v, 期望约 %v", remaining, 1000.0/1024.0)
	}
}

func TestDecayEdgeCases(t *testing.T) {
	if got := Approach(10, 50, DecayRate(0), 0.016); got != 50 {
		t.Errorf("duration=0 应立即到达目标, got %v", got)
	}
	if got := DecayFactor(DecayRate(1), 0); got != 0 {
		t.Errorf("dt=0 时 k 应为 0, got %v", got)
	}
}
