package systems

import (
	"log"

	"github.com/charmbracelet/harmonica"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// 圆环悬停缩放弹簧参数
const (
	ringSpringFrequency = 8.0
	ringSpringDamping   = 0.6
)

// PointerConfig 指针跟随效果配置
type PointerConfig struct {
	// Threshold 视口宽度低于该值时完全禁用（像素），原版为 1024
	Threshold float64

	// DotSmoothing / RingSmoothing 光标圆点与圆环的平滑时长（秒）
	DotSmoothing  float64
	RingSmoothing float64

	// HoverScale 悬停在可交互元素上时圆环的缩放
	HoverScale float64

	// MagnetDuration 磁吸跟随时长与缓动
	MagnetDuration float64
	MagnetEasing   utils.Easing

	// ReturnDuration 离开后回弹时长与缓动（弹性过冲）
	ReturnDuration float64
	ReturnEasing   utils.Easing
}

// DefaultPointerConfig 返回原版页面的参数
func DefaultPointerConfig() PointerConfig {
	return PointerConfig{
		Threshold:      1024,
		DotSmoothing:   0.1,
		RingSmoothing:  0.45,
		HoverScale:     1.5,
		MagnetDuration: 0.4,
		MagnetEasing:   utils.EaseOutQuart,
		ReturnDuration: 0.7,
		ReturnEasing:   utils.EaseOutElastic(1, 0.4),
	}
}

// PointerSystem 指针跟随效果：光标跟随、磁吸元素、聚光卡片
//
// 与滚动无关。能力开关只在创建时检查一次（视口宽度 >= Threshold），
// 窗口尺寸变化不会重新评估。禁用时不挂载任何元素、忽略所有指针事件。
type PointerSystem struct {
	entityManager *ecs.EntityManager
	geometry      visual.Geometry
	scroll        *ScrollState
	tweens        *TweenSystem
	sink          visual.Sink
	config        PointerConfig

	enabled  bool
	pointerX float64
	pointerY float64
	hasInput bool
	hovering bool
}

// NewPointerSystem 创建指针效果系统
func NewPointerSystem(em *ecs.EntityManager, geometry visual.Geometry, scroll *ScrollState, tweens *TweenSystem, sink visual.Sink, config PointerConfig) *PointerSystem {
	defaults := DefaultPointerConfig()
	if config.Threshold <= 0 {
		config.Threshold = defaults.Threshold
	}
	if config.DotSmoothing <= 0 {
		config.DotSmoothing = defaults.DotSmoothing
	}
	if config.RingSmoothing <= 0 {
		config.RingSmoothing = defaults.RingSmoothing
	}
	if config.HoverScale <= 0 {
		config.HoverScale = defaults.HoverScale
	}
	if config.MagnetDuration <= 0 {
		config.MagnetDuration = defaults.MagnetDuration
	}
	if config.MagnetEasing == nil {
		config.MagnetEasing = defaults.MagnetEasing
	}
	if config.ReturnDuration <= 0 {
		config.ReturnDuration = defaults.ReturnDuration
	}
	if config.ReturnEasing == nil {
		config.ReturnEasing = defaults.ReturnEasing
	}

	vw, _ := geometry.Viewport()
	enabled := vw >= config.Threshold
	if !enabled {
		log.Printf("[PointerSystem] 视口宽度 %.0f < %.0f，禁用指针效果", vw, config.Threshold)
	}

	return &PointerSystem{
		entityManager: em,
		geometry:      geometry,
		scroll:        scroll,
		tweens:        tweens,
		sink:          sink,
		config:        config,
		enabled:       enabled,
	}
}

// Enabled 指针效果是否启用
func (s *PointerSystem) Enabled() bool {
	return s.enabled
}

// MountFollowers 挂载光标圆点与圆环；禁用时不挂载，返回 false
func (s *PointerSystem) MountFollowers(dot, ring visual.Target) bool {
	if !s.enabled {
		return false
	}
	s.addFollower(dot, s.config.DotSmoothing, 0)
	s.addFollower(ring, s.config.RingSmoothing, s.config.HoverScale)
	return true
}

func (s *PointerSystem) addFollower(target visual.Target, smoothing, hoverScale float64) {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.FollowerComponent{
		Target:     target,
		Rate:       utils.DecayRate(smoothing),
		HoverScale: hoverScale,
		Scale:      1,
	})
}

// AddMagnetic 注册磁吸元素
func (s *PointerSystem) AddMagnetic(target visual.Target, strength float64) ecs.EntityID {
	if !s.enabled {
		return 0
	}
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.MagneticComponent{
		Target:   target,
		Strength: strength,
	})
	s.addInteractive(id, target)
	return id
}

// AddSpotlight 注册聚光卡片
func (s *PointerSystem) AddSpotlight(target visual.Target) ecs.EntityID {
	if !s.enabled {
		return 0
	}
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.SpotlightComponent{Target: target})
	s.addInteractive(id, target)
	return id
}

// AddInteractive 注册可交互元素（链接、按钮），悬停时光标进入 hovering 状态
func (s *PointerSystem) AddInteractive(target visual.Target) ecs.EntityID {
	if !s.enabled {
		return 0
	}
	id := s.entityManager.CreateEntity()
	s.addInteractive(id, target)
	return id
}

func (s *PointerSystem) addInteractive(id ecs.EntityID, target visual.Target) {
	ecs.AddComponent(s.entityManager, id, &components.InteractiveComponent{Target: target})
}

// OnPointerMove 处理指针移动（视口坐标）
func (s *PointerSystem) OnPointerMove(x, y float64) {
	if !s.enabled {
		return
	}
	s.pointerX, s.pointerY = x, y
	offset := s.scroll.Virtual()

	for _, id := range ecs.GetEntitiesWith1[*components.MagneticComponent](s.entityManager) {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](s.entityManager, id)
		rect, ok := s.screenRect(mag.Target, offset)
		if !ok {
			continue
		}
		if rect.Contains(x, y) {
			cx, cy := rect.Center()
			s.tweens.Animate(mag.Target, visual.PropMagnetX, (x-cx)*mag.Strength, s.config.MagnetDuration, s.config.MagnetEasing)
			s.tweens.Animate(mag.Target, visual.PropMagnetY, (y-cy)*mag.Strength, s.config.MagnetDuration, s.config.MagnetEasing)
			mag.Inside = true
		} else if mag.Inside {
			s.release(mag)
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.SpotlightComponent](s.entityManager) {
		spot, _ := ecs.GetComponent[*components.SpotlightComponent](s.entityManager, id)
		rect, ok := s.screenRect(spot.Target, offset)
		if !ok || !rect.Contains(x, y) {
			continue
		}
		s.sink.SetNumber(spot.Target, visual.PropSpotX, x-rect.X)
		s.sink.SetNumber(spot.Target, visual.PropSpotY, y-rect.Y)
	}

	hovering := false
	for _, id := range ecs.GetEntitiesWith1[*components.InteractiveComponent](s.entityManager) {
		inter, _ := ecs.GetComponent[*components.InteractiveComponent](s.entityManager, id)
		rect, ok := s.screenRect(inter.Target, offset)
		if ok && rect.Contains(x, y) {
			hovering = true
			break
		}
	}
	s.setHovering(hovering)

	if !s.hasInput {
		s.hasInput = true
		s.snapFollowers()
	}
}

// OnPointerLeave 指针离开窗口：所有磁吸元素回弹
func (s *PointerSystem) OnPointerLeave() {
	if !s.enabled {
		return
	}
	for _, id := range ecs.GetEntitiesWith1[*components.MagneticComponent](s.entityManager) {
		mag, _ := ecs.GetComponent[*components.MagneticComponent](s.entityManager, id)
		if mag.Inside {
			s.release(mag)
		}
	}
	s.setHovering(false)
}

// Hovering 光标当前是否悬停在可交互元素上
func (s *PointerSystem) Hovering() bool {
	return s.hovering
}

// Update 推进光标跟随
// 缩放弹簧按本帧实际时长求解，帧率不同结果一致
func (s *PointerSystem) Update(deltaTime float64) {
	if !s.enabled || !s.hasInput {
		return
	}
	var spring harmonica.Spring
	if deltaTime > 0 {
		spring = harmonica.NewSpring(deltaTime, ringSpringFrequency, ringSpringDamping)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.FollowerComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.FollowerComponent](s.entityManager, id)
		f.X = utils.Approach(f.X, s.pointerX, f.Rate, deltaTime)
		f.Y = utils.Approach(f.Y, s.pointerY, f.Rate, deltaTime)
		s.sink.SetNumber(f.Target, visual.PropX, f.X)
		s.sink.SetNumber(f.Target, visual.PropY, f.Y)

		if f.HoverScale > 0 {
			target := 1.0
			if s.hovering {
				target = f.HoverScale
			}
			if deltaTime > 0 {
				f.Scale, f.ScaleVelocity = spring.Update(f.Scale, f.ScaleVelocity, target)
			}
			s.sink.SetNumber(f.Target, visual.PropScale, f.Scale)
		}
	}
}

// Close 卸载指针效果，之后的指针事件全部忽略
func (s *PointerSystem) Close() {
	s.enabled = false
}

func (s *PointerSystem) release(mag *components.MagneticComponent) {
	s.tweens.Animate(mag.Target, visual.PropMagnetX, 0, s.config.ReturnDuration, s.config.ReturnEasing)
	s.tweens.Animate(mag.Target, visual.PropMagnetY, 0, s.config.ReturnDuration, s.config.ReturnEasing)
	mag.Inside = false
}

// snapFollowers 第一次收到指针事件时，跟随元素直接出现在指针处
func (s *PointerSystem) snapFollowers() {
	for _, id := range ecs.GetEntitiesWith1[*components.FollowerComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.FollowerComponent](s.entityManager, id)
		f.X, f.Y = s.pointerX, s.pointerY
	}
}

func (s *PointerSystem) setHovering(hovering bool) {
	if hovering == s.hovering {
		return
	}
	s.hovering = hovering
	flag := 0.0
	if hovering {
		flag = 1
	}
	for _, id := range ecs.GetEntitiesWith1[*components.FollowerComponent](s.entityManager) {
		f, _ := ecs.GetComponent[*components.FollowerComponent](s.entityManager, id)
		s.sink.SetNumber(f.Target, visual.PropHover, flag)
	}
}

// screenRect 元素在视口坐标中的矩形
func (s *PointerSystem) screenRect(target visual.Target, offset float64) (utils.Rect, bool) {
	rect, ok := s.geometry.Bounds(target)
	if !ok {
		return utils.Rect{}, false
	}
	return rect.Offset(0, -offset), true
}
