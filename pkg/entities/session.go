package entities

import (
	"fmt"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/stage"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// Session 一个页面变体的完整运行实例
//
// 渲染宿主（ebiten 窗口、终端预览、离屏快照）只需持有 Session：
// 输入事件交给 Stage，按帧调用 Step，再用 Frame 取得绘制指令。
type Session struct {
	Config    *config.PageConfig
	Layout    *visual.StaticLayout
	Book      *visual.StyleBook
	Scheduler *stage.StepScheduler
	Stage     *stage.Stage
	Page      *Page
	Palette   visual.Palette

	composer *visual.Composer
}

// NewSession 按配置组装并启动页面
// viewportWidth / viewportHeight 为 0 时使用配置中的视口尺寸
func NewSession(cfg *config.PageConfig, viewportWidth, viewportHeight float64) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("page config cannot be nil")
	}
	settings, err := StageSettings(cfg)
	if err != nil {
		return nil, err
	}

	layout := BuildLayout(cfg)
	if viewportWidth > 0 && viewportHeight > 0 {
		layout.SetViewport(viewportWidth, viewportHeight)
	}

	s := &Session{
		Config:    cfg,
		Layout:    layout,
		Book:      visual.NewStyleBook(),
		Scheduler: stage.NewStepScheduler(),
		Palette:   visual.PaletteFor(cfg.Theme),
		composer:  visual.NewComposer(BuildElements(cfg)),
	}
	s.Stage = stage.New(s.Book, layout, s.Scheduler, settings)

	page, err := BuildPage(s.Stage, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build page %q: %w", cfg.Name, err)
	}
	s.Page = page
	s.Stage.Start()
	return s, nil
}

// Step 推进一帧
func (s *Session) Step(deltaTime float64) {
	s.Scheduler.Step(deltaTime)
}

// Frame 合成当前帧的绘制指令
func (s *Session) Frame() []visual.Item {
	vw, vh := s.Layout.Viewport()
	return s.composer.Compose(s.Book, s.Stage.ScrollState().Virtual(), vw, vh)
}

// Resize 视口尺寸变化
func (s *Session) Resize(width, height float64) {
	s.Layout.SetViewport(width, height)
	s.Stage.OnResize()
}

// Close 停止页面
func (s *Session) Close() {
	s.Stage.Close()
}
