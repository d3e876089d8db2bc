package systems

import (
	"log"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/ecs"
)

// TimelineSystem 管理时间轴：有序的补间序列，共享一个播放原点
//
// 时间轴只播放一次：不可暂停、不可倒放、不可重播，只有整页重新加载才会重置。
// 每个属性最多由一条时间轴或一个滚动绑定驱动，由构建方保证。
type TimelineSystem struct {
	entityManager *ecs.EntityManager
	tweens        *TweenSystem
}

// NewTimelineSystem 创建时间轴系统
func NewTimelineSystem(em *ecs.EntityManager, tweens *TweenSystem) *TimelineSystem {
	return &TimelineSystem{
		entityManager: em,
		tweens:        tweens,
	}
}

// Create 构建时间轴实体
//
// 带显式起始值（HasFrom）的步骤会立即写入起始值，
// 保证元素在播放前就处于初始状态（例如入场前保持透明）。
func (s *TimelineSystem) Create(label string, delay float64, steps ...components.TimelineStep) ecs.EntityID {
	frozen := make([]components.TimelineStep, len(steps))
	copy(frozen, steps)

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimelineComponent{
		Label:      label,
		Steps:      frozen,
		StartTimes: StepStartTimes(frozen),
		Delay:      delay,
		State:      components.TimelineIdle,
		Launched:   make([]bool, len(frozen)),
	})

	for _, step := range frozen {
		if step.Tween.HasFrom {
			s.tweens.Set(step.Tween.Target, step.Tween.Property, step.Tween.From)
		}
	}
	return id
}

// Play 从当前帧开始播放时间轴
// 已播放过的时间轴不会重新开始，返回 false
func (s *TimelineSystem) Play(id ecs.EntityID) bool {
	tl, ok := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
	if !ok {
		log.Printf("[TimelineSystem] 时间轴不存在 (实体ID: %d)", id)
		return false
	}
	if tl.State != components.TimelineIdle {
		log.Printf("[TimelineSystem] 时间轴 %q 已播放过，忽略", tl.Label)
		return false
	}

	tl.State = components.TimelinePlaying
	tl.Clock = 0
	tl.Fresh = true
	log.Printf("[TimelineSystem] 开始播放 %q (%d 步, 延迟 %.2fs)", tl.Label, len(tl.Steps), tl.Delay)
	return true
}

// State 返回时间轴状态
func (s *TimelineSystem) State(id ecs.EntityID) components.TimelineState {
	tl, ok := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
	if !ok {
		return components.TimelineIdle
	}
	return tl.State
}

// Duration 返回时间轴总时长（不含延迟）
func (s *TimelineSystem) Duration(id ecs.EntityID) float64 {
	tl, ok := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	end := 0.0
	for i, step := range tl.Steps {
		if e := tl.StartTimes[i] + step.Tween.Duration; e > end {
			end = e
		}
	}
	return end
}

// Update 推进播放中的时间轴，到达起点的步骤启动补间
// 必须在 TweenSystem.Update 之前调用，新补间在同一帧写入首个值
func (s *TimelineSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TimelineComponent](s.entityManager)

	for _, id := range entities {
		tl, _ := ecs.GetComponent[*components.TimelineComponent](s.entityManager, id)
		if tl.State != components.TimelinePlaying {
			continue
		}

		if tl.Fresh {
			tl.Fresh = false
		} else {
			tl.Clock += deltaTime
		}

		local := tl.Clock - tl.Delay
		pending := 0
		for i, step := range tl.Steps {
			if tl.Launched[i] {
				continue
			}
			if local >= tl.StartTimes[i]-TimeEpsilon {
				s.tweens.StartAt(step.Tween, local-tl.StartTimes[i])
				tl.Launched[i] = true
				continue
			}
			pending++
		}

		if pending == 0 {
			tl.State = components.TimelineDone
			log.Printf("[TimelineSystem] %q 全部步骤已启动", tl.Label)
		}
	}
}

// StepStartTimes 计算每一步的绝对起点
//
// 起点 = 上一步结束（起点 + 时长）+ Offset；PositionWithPrevious 时为上一步起点 + Offset。
// 负偏移产生重叠。起点不早于 0。
func StepStartTimes(steps []components.TimelineStep) []float64 {
	starts := make([]float64, len(steps))
	prevStart, prevEnd := 0.0, 0.0

	for i, step := range steps {
		base := prevEnd
		if step.Position == components.PositionWithPrevious {
			base = prevStart
		}
		start := base + step.Offset
		if start < 0 {
			start = 0
		}
		starts[i] = start

		duration := step.Tween.Duration
		if duration < 0 {
			duration = 0
		}
		prevStart = start
		prevEnd = start + duration
	}
	return starts
}
