package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/ecs"
	"github.com/gonewx/scrollstage/pkg/stage"
	"github.com/gonewx/scrollstage/pkg/systems"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// Page 已注册到引擎上的页面动画
type Page struct {
	Config *config.PageConfig

	// Entrance 入场时间轴（没有配置时为 0）
	Entrance ecs.EntityID

	// Reveals 单元素入场触发器，顺序与配置一致
	Reveals []ecs.EntityID
	// Groups 分组入场触发器
	Groups []ecs.EntityID
	// Scrubs 滚动驱动绑定
	Scrubs []ecs.EntityID
	// Counters 计数器触发器
	Counters []ecs.EntityID
	// Loops 循环补间
	Loops []ecs.EntityID

	// PinClasses 各区块的固定分类（未启用固定时为空）
	PinClasses []components.PinClass

	stage *stage.Stage
	links map[visual.Target]visual.Target
}

// BuildPage 把页面配置中的所有动画注册到引擎
//
// 必须在 Stage.Start 之前调用：入场时间轴在这里开始播放，
// 带起始值的元素在第一帧渲染前就处于初始状态。
//
// 参数:
//   - st: 引擎实例（其 Geometry 已按 cfg 布局）
//   - cfg: 已校验的页面配置
//
// 返回:
//   - *Page: 注册结果
//   - error: 配置中的缓动或锚点无法解析时返回错误
func BuildPage(st *stage.Stage, cfg *config.PageConfig) (*Page, error) {
	if st == nil {
		return nil, fmt.Errorf("stage cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("page config cannot be nil")
	}

	// 固定定位元素的文档坐标随滚动偏移变化
	if layout, ok := st.Geometry().(*visual.StaticLayout); ok {
		layout.Follow(st.ScrollState().Virtual())
		st.Subscribe(layout.Follow)
	}

	page := &Page{
		Config: cfg,
		stage:  st,
		links:  make(map[visual.Target]visual.Target, len(cfg.Navigation)),
	}

	if cfg.Entrance != nil && len(cfg.Entrance.Steps) > 0 {
		id, err := NewEntranceTimeline(st.Timelines(), cfg.Entrance)
		if err != nil {
			return nil, err
		}
		page.Entrance = id
	}

	for i, reveal := range cfg.Reveals {
		anchor, err := utils.ParseAnchor(reveal.Start)
		if err != nil {
			return nil, fmt.Errorf("reveals[%d]: %w", i, err)
		}
		easing, err := utils.EasingByName(reveal.Ease)
		if err != nil {
			return nil, fmt.Errorf("reveals[%d]: %w", i, err)
		}
		for _, name := range reveal.Targets {
			target := visual.Target(name)
			timeline := NewRevealTimeline(st.Timelines(), target, reveal.From, reveal.To, reveal.Duration, easing)
			page.Reveals = append(page.Reveals, st.Triggers().RegisterOneShotAnchor(target, anchor, timeline))
		}
	}

	for i, group := range cfg.Groups {
		id, err := newGroup(st, group)
		if err != nil {
			return nil, fmt.Errorf("groups[%d]: %w", i, err)
		}
		page.Groups = append(page.Groups, id)
	}

	for i, scrub := range cfg.Scrubs {
		id, err := NewScrub(st.Triggers(), scrub)
		if err != nil {
			return nil, fmt.Errorf("scrubs[%d]: %w", i, err)
		}
		page.Scrubs = append(page.Scrubs, id)
	}

	for i, counter := range cfg.Counters {
		id, err := NewCounter(st, counter)
		if err != nil {
			return nil, fmt.Errorf("counters[%d]: %w", i, err)
		}
		page.Counters = append(page.Counters, id)
	}

	for i, loop := range cfg.Loops {
		easing, err := utils.EasingByName(loop.Ease)
		if err != nil {
			return nil, fmt.Errorf("loops[%d]: %w", i, err)
		}
		page.Loops = append(page.Loops, st.Tweens().Start(components.TweenSpec{
			Target:   visual.Target(loop.Target),
			Property: loop.Property,
			To:       loop.To,
			Duration: loop.Duration,
			Easing:   easing,
			Repeat:   loop.Repeat,
			Yoyo:     loop.Yoyo,
		}))
	}

	if cfg.Pinning {
		sections := make([]visual.Target, len(cfg.Sections))
		for i, s := range cfg.Sections {
			sections[i] = visual.Target(s)
		}
		page.PinClasses = st.Pins().Setup(sections)
	}

	mountPointer(st, cfg)

	for _, link := range cfg.Navigation {
		if link.Button != "" {
			page.links[visual.Target(link.Button)] = visual.Target(link.Href)
		}
	}

	log.Printf("[BuildPage] 页面 %q: %d 个入场, %d 个分组, %d 个滚动绑定, %d 个计数器",
		cfg.Name, len(page.Reveals), len(page.Groups), len(page.Scrubs), len(page.Counters))
	return page, nil
}

func newGroup(st *stage.Stage, cfg config.GroupConfig) (ecs.EntityID, error) {
	anchor, err := utils.ParseAnchor(cfg.Start)
	if err != nil {
		return 0, err
	}
	easing, err := utils.EasingByName(cfg.Ease)
	if err != nil {
		return 0, err
	}
	children := make([]visual.Target, len(cfg.Children))
	for i, c := range cfg.Children {
		children[i] = visual.Target(c)
	}
	return st.Triggers().RegisterGroup(visual.Target(cfg.Container), anchor, systems.GroupReveal{
		Children:   children,
		Properties: revealProperties(cfg.From, cfg.To),
		Duration:   cfg.Duration,
		Easing:     easing,
		Stagger:    cfg.Stagger,
	}), nil
}

// mountPointer 挂载指针效果；视口过窄时各调用都是空操作
func mountPointer(st *stage.Stage, cfg *config.PageConfig) {
	pointer := st.Pointer()
	if !pointer.Enabled() {
		return
	}
	if cfg.Chrome.CursorDot != "" && cfg.Chrome.CursorRing != "" {
		pointer.MountFollowers(visual.Target(cfg.Chrome.CursorDot), visual.Target(cfg.Chrome.CursorRing))
	}
	for _, m := range cfg.Magnetic {
		pointer.AddMagnetic(visual.Target(m.Target), m.Strength)
	}
	for _, t := range cfg.Spotlights {
		pointer.AddSpotlight(visual.Target(t))
	}
	for _, t := range cfg.Interactive {
		pointer.AddInteractive(visual.Target(t))
	}
}

// Navigate 处理导航按钮点击：平滑滚动到链接的区块
// 按钮没有配置链接时返回 false
func (p *Page) Navigate(button visual.Target) (bool, error) {
	href, ok := p.links[button]
	if !ok {
		return false, nil
	}
	if err := p.stage.ScrollToTarget(href); err != nil {
		return true, err
	}
	log.Printf("[Page] 导航 %s -> %s", button, href)
	return true, nil
}

// NavigateAt 处理视口坐标 (x, y) 处的点击
func (p *Page) NavigateAt(x, y float64) (bool, error) {
	button, ok := p.ButtonAt(x, y)
	if !ok {
		return false, nil
	}
	return p.Navigate(button)
}

// ButtonAt 返回视口坐标 (x, y) 处的导航按钮
func (p *Page) ButtonAt(x, y float64) (visual.Target, bool) {
	// 按配置顺序查找，重叠时先声明的优先
	offset := p.stage.ScrollState().Virtual()
	for _, link := range p.Config.Navigation {
		button := visual.Target(link.Button)
		if button == "" {
			continue
		}
		rect, ok := p.stage.Geometry().Bounds(button)
		if !ok {
			continue
		}
		if rect.Contains(x, y+offset) {
			return button, true
		}
	}
	return "", false
}
