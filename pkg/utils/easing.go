package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，且满足 f(0)=0、f(1)=1。
// 中间值不要求单调，也可以超出 [0, 1]（弹性缓动会过冲）。
//
// 参考：https://easings.net/
type Easing func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出（GSAP 名称 power2.out）
// 特点：开始快，结束慢
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出（GSAP 名称 power1.out）
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuart 四次方缓出（GSAP 名称 power3.out）
// 特点：入场动画的默认曲线，前段非常快
// 公式：f(t) = 1 - (1-t)⁴
func EaseOutQuart(t float64) float64 {
	return 1 - math.Pow(1-t, 4)
}

// EaseInOutSine 正弦缓入缓出（GSAP 名称 power1.inOut 的近似）
// 用于往返弹跳的滚动提示
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutExpo 指数缓出
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseSmoothScroll 平滑滚动曲线
// 公式：f(t) = min(1, 1.001 - 2^(-10t))，t=0 时取 0
func EaseSmoothScroll(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Min(1, 1.001-math.Pow(2, -10*t))
}

// EaseOutElastic 返回弹性缓出函数
//
// 参数：
//   - amplitude: 振幅（<1 时按 1 处理）
//   - period: 周期，越小振荡越快
//
// 磁吸按钮离开时回弹使用 EaseOutElastic(1, 0.4)。
func EaseOutElastic(amplitude, period float64) Easing {
	if amplitude < 1 {
		amplitude = 1
	}
	if period <= 0 {
		period = 0.3
	}
	s := period / (2 * math.Pi) * math.Asin(1/amplitude)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return amplitude*math.Pow(2, -10*t)*math.Sin((t-s)*(2*math.Pi)/period) + 1
	}
}

// easingByName 名称到缓动函数的映射（配置文件中使用 GSAP 风格的名称）
var easingByName = map[string]Easing{
	"":             EaseLinear,
	"none":         EaseLinear,
	"linear":       EaseLinear,
	"power1.in":    EaseInQuad,
	"power1.out":   EaseOutQuad,
	"power1.inOut": EaseInOutSine,
	"power2.in":    EaseInCubic,
	"power2.out":   EaseOutCubic,
	"power2.inOut": EaseInOutCubic,
	"power3.out":   EaseOutQuart,
	"expo.out":     EaseOutExpo,
	"sine.inOut":   EaseInOutSine,
	"smoothScroll": EaseSmoothScroll,
}

// EasingByName 根据名称查找缓动函数
//
// 除了固定名称外，还支持参数化的弹性缓动："elastic.out(1, 0.4)"。
// 未知名称返回错误，由配置校验阶段报告。
func EasingByName(name string) (Easing, error) {
	name = strings.TrimSpace(name)
	if fn, ok := easingByName[name]; ok {
		return fn, nil
	}

	if strings.HasPrefix(name, "elastic.out") {
		amplitude, period := 1.0, 0.3
		args := strings.TrimPrefix(name, "elastic.out")
		if args != "" {
			if !strings.HasPrefix(args, "(") || !strings.HasSuffix(args, ")") {
				return nil, fmt.Errorf("malformed easing %q", name)
			}
			parts := strings.Split(strings.Trim(args, "()"), ",")
			if len(parts) != 2 {
				return nil, fmt.Errorf("elastic easing %q needs (amplitude, period)", name)
			}
			var err error
			if amplitude, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
				return nil, fmt.Errorf("elastic amplitude in %q: %w", name, err)
			}
			if period, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
				return nil, fmt.Errorf("elastic period in %q: %w", name, err)
			}
		}
		return EaseOutElastic(amplitude, period), nil
	}

	return nil, fmt.Errorf("unknown easing %q", name)
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将值限制在 [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Clamp 将值限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
