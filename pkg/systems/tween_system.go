package systems

import (
	"log"
	"math"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

type propertyKey struct {
	target   visual.Target
	property string
}

// TweenSystem 插值原语：管理所有补间并在每帧写入插值结果
//
// 同一 (Target, Property) 同一时刻最多一个存活的补间。
// 对正在动画的属性再次调用 Animate 会取消旧补间，
// 并以旧补间的当前插值作为新补间的起点（不会产生视觉跳变）。
type TweenSystem struct {
	entityManager *ecs.EntityManager
	sink          visual.Sink

	// live 每个属性当前存活的补间
	live map[propertyKey]ecs.EntityID
	// values 核心最近写入的数值（核心是这些属性的唯一写入者）
	values map[propertyKey]float64
}

// NewTweenSystem 创建插值系统
func NewTweenSystem(em *ecs.EntityManager, sink visual.Sink) *TweenSystem {
	return &TweenSystem{
		entityManager: em,
		sink:          sink,
		live:          make(map[propertyKey]ecs.EntityID),
		values:        make(map[propertyKey]float64),
	}
}

// Animate 从当前值补间到 to
// 立即返回补间实体ID，完成是异步的（由后续帧推进）
func (s *TweenSystem) Animate(target visual.Target, property string, to, duration float64, easing utils.Easing) ecs.EntityID {
	return s.StartAt(components.TweenSpec{
		Target:   target,
		Property: property,
		To:       to,
		Duration: duration,
		Easing:   easing,
	}, 0)
}

// FromTo 从显式起始值补间到 to
func (s *TweenSystem) FromTo(target visual.Target, property string, from, to, duration float64, easing utils.Easing) ecs.EntityID {
	return s.StartAt(components.TweenSpec{
		Target:   target,
		Property: property,
		HasFrom:  true,
		From:     from,
		To:       to,
		Duration: duration,
		Easing:   easing,
	}, 0)
}

// Start 按描述启动补间
func (s *TweenSystem) Start(spec components.TweenSpec) ecs.EntityID {
	return s.StartAt(spec, 0)
}

// StartAt 按描述启动补间，并预置已播放时间
// 时间轴在帧中途到达某一步的起点时，用 elapsed 补偿超出的部分
func (s *TweenSystem) StartAt(spec components.TweenSpec, elapsed float64) ecs.EntityID {
	key := propertyKey{spec.Target, spec.Property}

	from := s.currentValue(key)
	if prev, ok := s.live[key]; ok {
		if old, found := ecs.GetComponent[*components.TweenComponent](s.entityManager, prev); found && !old.IsCompleted {
			// 取消旧补间，沿用其当前插值
			from = old.Current
			old.IsCancelled = true
			s.entityManager.DestroyEntity(prev)
		}
		delete(s.live, key)
	}
	if spec.HasFrom {
		from = spec.From
	}

	duration := spec.Duration
	if duration < 0 {
		log.Printf("[TweenSystem] 负时长 %.3f 按 0 处理 (%s.%s)", duration, spec.Target, spec.Property)
		duration = 0
	}
	if elapsed < 0 {
		elapsed = 0
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TweenComponent{
		Target:       spec.Target,
		Property:     spec.Property,
		From:         from,
		To:           spec.To,
		Duration:     duration,
		Easing:       spec.Easing,
		Elapsed:      elapsed,
		Current:      from,
		Repeat:       spec.Repeat,
		Yoyo:         spec.Yoyo,
		TextProperty: spec.TextProperty,
		Format:       spec.Format,
		Fresh:        true,
	})
	s.live[key] = id
	return id
}

// Set 立即写入属性值并取消该属性上的补间
func (s *TweenSystem) Set(target visual.Target, property string, value float64) {
	key := propertyKey{target, property}
	if prev, ok := s.live[key]; ok {
		if old, found := ecs.GetComponent[*components.TweenComponent](s.entityManager, prev); found {
			old.IsCancelled = true
		}
		s.entityManager.DestroyEntity(prev)
		delete(s.live, key)
	}
	s.write(key, value)
}

// Value 返回属性的当前值（核心最近写入的值）
func (s *TweenSystem) Value(target visual.Target, property string) (float64, bool) {
	v, ok := s.values[propertyKey{target, property}]
	return v, ok
}

// IsAnimating 属性上是否有存活的补间
func (s *TweenSystem) IsAnimating(target visual.Target, property string) bool {
	_, ok := s.live[propertyKey{target, property}]
	return ok
}

// LiveCount 返回存活补间数量
func (s *TweenSystem) LiveCount() int {
	return len(s.live)
}

// Update 推进所有补间并写入插值结果
func (s *TweenSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager)

	for _, id := range entities {
		tween, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if tween.IsCompleted || tween.IsCancelled {
			continue
		}

		if tween.Fresh {
			tween.Fresh = false
		} else {
			tween.Elapsed += deltaTime
		}

		value, done := SampleTween(tween)
		key := propertyKey{tween.Target, tween.Property}
		tween.Current = value
		s.write(key, value)
		if tween.TextProperty != "" && tween.Format != nil {
			s.sink.SetText(tween.Target, tween.TextProperty, tween.Format(value))
		}

		if done {
			tween.IsCompleted = true
			if s.live[key] == id {
				delete(s.live, key)
			}
			s.entityManager.DestroyEntity(id)
		}
	}
}

// TimeEpsilon 帧时长累加的舍入容差（秒）
// 60 帧 × (1/60) 的浮点和可能略小于 1，补间和时间轴按容差判断到点
const TimeEpsilon = 1e-9

// SampleTween 计算补间在当前 Elapsed 下的值
// 返回值和是否已完成。到达终点时精确返回端点值，不受缓动函数影响。
func SampleTween(tween *components.TweenComponent) (float64, bool) {
	easing := tween.Easing
	if easing == nil {
		easing = utils.EaseLinear
	}

	if tween.Duration <= 0 {
		return tween.To, true
	}

	if tween.Repeat == 0 {
		if tween.Elapsed >= tween.Duration-TimeEpsilon {
			return tween.To, true
		}
		return utils.Lerp(tween.From, tween.To, easing(tween.Elapsed/tween.Duration)), false
	}

	// 重复播放
	if tween.Repeat > 0 && tween.Elapsed >= tween.Duration*float64(tween.Repeat+1)-TimeEpsilon {
		if tween.Yoyo && tween.Repeat%2 == 1 {
			return tween.From, true
		}
		return tween.To, true
	}

	iteration := math.Floor(tween.Elapsed / tween.Duration)
	local := tween.Elapsed - iteration*tween.Duration
	p := local / tween.Duration
	if tween.Yoyo && int64(iteration)%2 == 1 {
		p = 1 - p
	}
	return utils.Lerp(tween.From, tween.To, easing(p)), false
}

func (s *TweenSystem) write(key propertyKey, value float64) {
	s.values[key] = value
	s.sink.SetNumber(key.target, key.property, value)
}

// currentValue 返回属性当前值；从未写入过的属性使用 CSS 默认值
func (s *TweenSystem) currentValue(key propertyKey) float64 {
	if v, ok := s.values[key]; ok {
		return v
	}
	return DefaultValue(key.property)
}

// DefaultValue 返回样式属性未被写入时的默认值
func DefaultValue(property string) float64 {
	switch property {
	case visual.PropOpacity, visual.PropScale, visual.PropScaleX:
		return 1
	default:
		return 0
	}
}
