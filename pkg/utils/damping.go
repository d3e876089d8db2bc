package utils

import "math"

// 指数衰减平滑
//
// 每帧执行 current += (target - current) * k，k = 1 - e^(-λ·dt)。
// λ 由"平滑时长"推导：经过 duration 秒后剩余差值约为初始差值的 1/1024，
// 与平滑滚动曲线 1 - 2^(-10t) 在 t=1 时的收敛程度一致。
// 时长越大，λ 越小，k 越小，跟随越滞后。结果永不过冲。

// DecayRate 根据平滑时长计算衰减率 λ（1/秒）
// duration <= 0 时返回 +Inf，表示立即到达目标
func DecayRate(duration float64) float64 {
	if duration <= 0 {
		return math.Inf(1)
	}
	return 10 * math.Ln2 / duration
}

// DecayFactor 计算单帧插值系数 k ∈ (0, 1]
func DecayFactor(rate, dt float64) float64 {
	if math.IsInf(rate, 1) {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// Approach 以指数衰减方式将 current 推向 target
func Approach(current, target, rate, dt float64) float64 {
	k := DecayFactor(rate, dt)
	if k >= 1 {
		return target
	}
	return current + (target-current)*k
}
