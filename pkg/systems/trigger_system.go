package systems

import (
	"log"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// RevealProperty 入场动画中的一个属性（fromTo）
type RevealProperty struct {
	Property string
	From     float64
	To       float64
}

// GroupReveal 分组入场配置
// 子元素按注册顺序依次入场，相邻子元素起点相差 Stagger 秒
type GroupReveal struct {
	Children   []visual.Target
	Properties []RevealProperty
	Duration   float64
	Easing     utils.Easing
	Stagger    float64
}

// DefaultStagger 分组入场的默认间隔（秒）
const DefaultStagger = 0.12

// TriggerSystem 触发器注册表
//
// 每帧根据当前虚拟滚动偏移求值所有绑定：
//   - ONESHOT：可见比例从阈值以下越过阈值（或越过锚点）时播放时间轴，只触发一次
//   - SCRUB：进度是滚动偏移的纯函数，直接写入属性，不经过补间
//
// 元素无法测量时跳过该绑定，下一帧重试。
type TriggerSystem struct {
	entityManager *ecs.EntityManager
	geometry      visual.Geometry
	scroll        *ScrollState
	timelines     *TimelineSystem
	sink          visual.Sink
}

// NewTriggerSystem 创建触发器系统
func NewTriggerSystem(em *ecs.EntityManager, geometry visual.Geometry, scroll *ScrollState, timelines *TimelineSystem, sink visual.Sink) *TriggerSystem {
	return &TriggerSystem{
		entityManager: em,
		geometry:      geometry,
		scroll:        scroll,
		timelines:     timelines,
		sink:          sink,
	}
}

// RegisterOneShot 注册可见比例触发器
// 元素可见比例达到 threshold 时播放 timeline
func (s *TriggerSystem) RegisterOneShot(target visual.Target, threshold float64, timeline ecs.EntityID) ecs.EntityID {
	threshold = utils.Clamp01(threshold)
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TriggerComponent{
		Target:    target,
		Mode:      components.ActivateOnVisibility,
		Threshold: threshold,
		Timeline:  timeline,
		State:     components.TriggerPending,
	})
	return id
}

// RegisterOneShotAnchor 注册锚点触发器（如 "top 88%"：元素顶部到达视口 88% 高度处）
func (s *TriggerSystem) RegisterOneShotAnchor(target visual.Target, anchor utils.Anchor, timeline ecs.EntityID) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TriggerComponent{
		Target:   target,
		Mode:     components.ActivateOnAnchor,
		Anchor:   anchor,
		Timeline: timeline,
		State:    components.TriggerPending,
	})
	return id
}

// RegisterGroup 注册分组入场
//
// 整组共用一个触发器（观察容器元素），子元素在同一条时间轴内错开启动，
// 顺序与 Children 的注册顺序一致。返回触发器实体ID。
func (s *TriggerSystem) RegisterGroup(container visual.Target, anchor utils.Anchor, group GroupReveal) ecs.EntityID {
	timeline := s.timelines.Create("group:"+string(container), 0, GroupSteps(group)...)
	return s.RegisterOneShotAnchor(container, anchor, timeline)
}

// GroupSteps 将分组入场展开为时间轴步骤
func GroupSteps(group GroupReveal) []components.TimelineStep {
	stagger := group.Stagger
	if stagger <= 0 {
		stagger = DefaultStagger
	}

	var steps []components.TimelineStep
	for i, child := range group.Children {
		for j, prop := range group.Properties {
			offset := 0.0
			if i > 0 && j == 0 {
				offset = stagger
			}
			steps = append(steps, components.TimelineStep{
				Tween: components.TweenSpec{
					Target:   child,
					Property: prop.Property,
					HasFrom:  true,
					From:     prop.From,
					To:       prop.To,
					Duration: group.Duration,
					Easing:   group.Easing,
				},
				Offset:   offset,
				Position: components.PositionWithPrevious,
			})
		}
	}
	return steps
}

// RegisterScrub 注册滚动驱动绑定
func (s *TriggerSystem) RegisterScrub(target visual.Target, scrollRange components.ScrollRange, properties []components.ScrubProperty, easing utils.Easing) ecs.EntityID {
	props := make([]components.ScrubProperty, len(properties))
	copy(props, properties)

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.ScrubComponent{
		Target:     target,
		Range:      scrollRange,
		Properties: props,
		Easing:     easing,
	})
	return id
}

// State 返回一次性触发器状态
func (s *TriggerSystem) State(id ecs.EntityID) components.TriggerState {
	trig, ok := ecs.GetComponent[*components.TriggerComponent](s.entityManager, id)
	if !ok {
		return components.TriggerPending
	}
	return trig.State
}

// Progress 返回滚动绑定最近一次计算的进度
func (s *TriggerSystem) Progress(id ecs.EntityID) float64 {
	scrub, ok := ecs.GetComponent[*components.ScrubComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return scrub.LastProgress
}

// Update 求值所有绑定
func (s *TriggerSystem) Update(deltaTime float64) {
	offset := s.scroll.Virtual()
	vw, vh := s.geometry.Viewport()
	viewport := utils.ViewportRect(offset, vw, vh)

	s.updateOneShots(offset, vh, viewport)
	s.updateScrubs(offset, vh)
}

func (s *TriggerSystem) updateOneShots(offset, vh float64, viewport utils.Rect) {
	for _, id := range ecs.GetEntitiesWith1[*components.TriggerComponent](s.entityManager) {
		trig, _ := ecs.GetComponent[*components.TriggerComponent](s.entityManager, id)
		if trig.State == components.TriggerFired {
			continue
		}

		rect, ok := s.geometry.Bounds(trig.Target)
		if !ok {
			continue
		}

		var active bool
		switch trig.Mode {
		case components.ActivateOnAnchor:
			active = offset >= trig.Anchor.Resolve(rect, vh)
		default:
			active = utils.VisibleFraction(rect, viewport) >= trig.Threshold
		}

		if active && !trig.WasActive {
			trig.State = components.TriggerFired
			log.Printf("[TriggerSystem] 触发 %s (偏移 %.1f)", trig.Target, offset)
			s.timelines.Play(trig.Timeline)
		}
		trig.WasActive = active
	}
}

func (s *TriggerSystem) updateScrubs(offset, vh float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ScrubComponent](s.entityManager) {
		scrub, _ := ecs.GetComponent[*components.ScrubComponent](s.entityManager, id)

		start, end, ok := s.resolveRange(scrub.Range, vh)
		if !ok {
			continue
		}

		p := ScrubProgress(offset, start, end)
		scrub.LastProgress = p
		if scrub.Easing != nil {
			p = scrub.Easing(p)
		}

		for _, prop := range scrub.Properties {
			from, to := prop.From, prop.To
			if prop.RelativeTo != "" {
				rel, ok := s.geometry.Bounds(prop.RelativeTo)
				if !ok {
					continue
				}
				from *= rel.H
				to *= rel.H
			}
			s.sink.SetNumber(scrub.Target, prop.Property, utils.Lerp(from, to, p))
		}
	}
}

func (s *TriggerSystem) resolveRange(r components.ScrollRange, vh float64) (start, end float64, ok bool) {
	if !r.Anchored {
		return r.Start, r.End, true
	}
	rect, found := s.geometry.Bounds(r.Trigger)
	if !found {
		return 0, 0, false
	}
	return r.StartAnchor.Resolve(rect, vh), r.EndAnchor.Resolve(rect, vh), true
}

// ScrubProgress 计算滚动进度 clamp((offset-start)/(end-start), 0, 1)
// 退化区间（end <= start）视为已完成，返回 1
func ScrubProgress(offset, start, end float64) float64 {
	if end <= start {
		return 1
	}
	return utils.Clamp01((offset - start) / (end - start))
}
