package systems

import (
	"log"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// 固定区块淡出参数：下一个区块进入时本区块淡出、缩小、模糊
const (
	PinFadeScale = 0.95
	PinFadeBlur  = 15.0
)

// PinSystem 区块固定控制器
//
// 初始化时把每个区块分为 PINNABLE（高度 <= 视口高度）和 NATURAL（更高）。
// 除最后一个区块外，每个 PINNABLE 区块：
//   - 在 [top, top+vh] 内保持屏幕位置不变（写入 pinY 抵消滚动）
//   - 在 [nextTop-vh, nextTop] 内随下一个区块进入而淡出
//
// NATURAL 区块从不固定，固定会截断超出视口的内容。
type PinSystem struct {
	entityManager *ecs.EntityManager
	geometry      visual.Geometry
	scroll        *ScrollState
	triggers      *TriggerSystem
	sink          visual.Sink
}

// NewPinSystem 创建区块固定系统
func NewPinSystem(em *ecs.EntityManager, geometry visual.Geometry, scroll *ScrollState, triggers *TriggerSystem, sink visual.Sink) *PinSystem {
	return &PinSystem{
		entityManager: em,
		geometry:      geometry,
		scroll:        scroll,
		triggers:      triggers,
		sink:          sink,
	}
}

// Classify 区块分类：高度等于视口高度的区块也是 PINNABLE
func Classify(height, viewportHeight float64) components.PinClass {
	if height <= viewportHeight {
		return components.PinPinnable
	}
	return components.PinNatural
}

// Setup 为区块列表创建固定片段，返回每个区块的分类
//
// 先测量全部区块：无法测量的区块不固定，也不参与前后衔接。
// 最后一个可测量的区块总是按 NATURAL 处理（后面没有区块来接替它），
// 每个固定区块的淡出由它之后第一个可测量的区块驱动。
func (s *PinSystem) Setup(sections []visual.Target) []components.PinClass {
	classes := make([]components.PinClass, len(sections))
	_, vh := s.geometry.Viewport()

	type measured struct {
		index int
		rect  utils.Rect
	}
	var found []measured
	for i, section := range sections {
		classes[i] = components.PinNatural
		rect, ok := s.geometry.Bounds(section)
		if !ok {
			log.Printf("[PinSystem] 区块 %s 无法测量，不固定", section)
			continue
		}
		found = append(found, measured{index: i, rect: rect})
	}

	for n, m := range found {
		section := sections[m.index]
		class := Classify(m.rect.H, vh)
		if n == len(found)-1 {
			log.Printf("[PinSystem] 区块 %s 是最后一个区块，不固定 (%s)", section, class)
			continue
		}
		classes[m.index] = class
		if class != components.PinPinnable {
			log.Printf("[PinSystem] 区块 %s 高 %.0f > 视口 %.0f，按正常文档流滚动", section, m.rect.H, vh)
			continue
		}

		next := sections[found[n+1].index]
		fade := s.triggers.RegisterScrub(section, components.ScrollRange{
			Anchored:    true,
			Trigger:     next,
			StartAnchor: utils.MustParseAnchor("top bottom"),
			EndAnchor:   utils.MustParseAnchor("top top"),
		}, []components.ScrubProperty{
			{Property: visual.PropOpacity, From: 1, To: 0},
			{Property: visual.PropScale, From: 1, To: PinFadeScale},
			{Property: visual.PropBlur, From: 0, To: PinFadeBlur},
		}, nil)

		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.PinComponent{
			Section:    section,
			Next:       next,
			RangeStart: m.rect.Y,
			RangeEnd:   m.rect.Y + vh,
			Fade:       fade,
		})
		log.Printf("[PinSystem] 固定区块 %s: [%.0f, %.0f]，由 %s 接替", section, m.rect.Y, m.rect.Y+vh, next)
	}
	return classes
}

// IsPinned 区块当前是否处于固定状态
func (s *PinSystem) IsPinned(section visual.Target) bool {
	for _, id := range ecs.GetEntitiesWith1[*components.PinComponent](s.entityManager) {
		pin, _ := ecs.GetComponent[*components.PinComponent](s.entityManager, id)
		if pin.Section == section {
			return pin.Active
		}
	}
	return false
}

// Segments 返回全部固定片段实体
func (s *PinSystem) Segments() []ecs.EntityID {
	return ecs.GetEntitiesWith1[*components.PinComponent](s.entityManager)
}

// Update 根据虚拟偏移写入固定平移
// 屏幕位置 = top + pinY - offset，在固定区间内恒等于 0
func (s *PinSystem) Update(deltaTime float64) {
	offset := s.scroll.Virtual()
	_, vh := s.geometry.Viewport()

	for _, id := range ecs.GetEntitiesWith1[*components.PinComponent](s.entityManager) {
		pin, _ := ecs.GetComponent[*components.PinComponent](s.entityManager, id)

		rect, ok := s.geometry.Bounds(pin.Section)
		if !ok {
			continue
		}
		pin.RangeStart = rect.Y
		pin.RangeEnd = rect.Y + vh

		pinY := utils.Clamp(offset-pin.RangeStart, 0, pin.RangeEnd-pin.RangeStart)
		pin.Active = offset >= pin.RangeStart && offset <= pin.RangeEnd
		s.sink.SetNumber(pin.Section, visual.PropPinY, pinY)
	}
}
