package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/entities"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// 输入换算参数
const (
	// WheelStep 滚轮一格对应的像素
	WheelStep = 100.0
	// ArrowStep 方向键一次滚动的像素
	ArrowStep = 80.0
	// PageFraction 翻页键滚动视口高度的比例
	PageFraction = 0.9
	// SpotlightRadius 聚光卡片高光半径
	SpotlightRadius = 120.0
)

// LandingScene 在窗口中运行一个页面变体
//
// 把 ebiten 的输入转换为引擎事件，每帧推进引擎并按合成结果绘制页面示意图。
type LandingScene struct {
	session *entities.Session
	fonts   *Fonts

	pointerX, pointerY int
	pointerInside      bool
	touches            map[ebiten.TouchID]int
}

// NewLandingScene 创建页面场景
func NewLandingScene(cfg *config.PageConfig, fonts *Fonts) (*LandingScene, error) {
	session, err := entities.NewSession(cfg, 0, 0)
	if err != nil {
		return nil, err
	}
	log.Printf("[LandingScene] 页面 %q 已启动", cfg.Name)
	return &LandingScene{
		session:  session,
		fonts:    fonts,
		pointerX: -1,
		pointerY: -1,
		touches:  make(map[ebiten.TouchID]int),
	}, nil
}

// Session 返回运行中的页面
func (s *LandingScene) Session() *entities.Session {
	return s.session
}

// Update 处理输入并推进一帧
func (s *LandingScene) Update(deltaTime float64) {
	s.handleWheel()
	s.handleKeys()
	s.handleTouches()
	s.handlePointer()
	s.session.Step(deltaTime)
}

func (s *LandingScene) handleWheel() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.session.Stage.OnWheel(WheelDelta(wy))
	}
}

// WheelDelta 把 ebiten 滚轮值（向上为正）换算为像素增量（向下为正）
func WheelDelta(wheelY float64) float64 {
	return -wheelY * WheelStep
}

// handleKeys 键盘滚动走宿主原生滚动路径
func (s *LandingScene) handleKeys() {
	stage := s.session.Stage
	state := stage.ScrollState()
	_, vh := s.session.Layout.Viewport()

	for _, key := range []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowUp, ebiten.KeyPageDown, ebiten.KeyPageUp, ebiten.KeySpace, ebiten.KeyHome, ebiten.KeyEnd} {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if target, ok := KeyScrollTarget(key, state.Raw(), vh, state.Limit()); ok {
			stage.SyncNative(target)
		}
	}
}

// KeyScrollTarget 计算按键后的原生滚动位置
func KeyScrollTarget(key ebiten.Key, raw, viewportHeight, limit float64) (float64, bool) {
	switch key {
	case ebiten.KeyArrowDown:
		return raw + ArrowStep, true
	case ebiten.KeyArrowUp:
		return raw - ArrowStep, true
	case ebiten.KeyPageDown, ebiten.KeySpace:
		return raw + viewportHeight*PageFraction, true
	case ebiten.KeyPageUp:
		return raw - viewportHeight*PageFraction, true
	case ebiten.KeyHome:
		return 0, true
	case ebiten.KeyEnd:
		return limit, true
	}
	return raw, false
}

// handleTouches 单指拖动滚动页面（手指上移，页面向下）
func (s *LandingScene) handleTouches() {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		_, y := ebiten.TouchPosition(id)
		s.touches[id] = y
	}
	for id, lastY := range s.touches {
		if inpututil.IsTouchJustReleased(id) {
			delete(s.touches, id)
			continue
		}
		_, y := ebiten.TouchPosition(id)
		if y != lastY {
			s.session.Stage.OnTouchDelta(float64(lastY - y))
			s.touches[id] = y
		}
	}
}

func (s *LandingScene) handlePointer() {
	stage := s.session.Stage
	x, y := ebiten.CursorPosition()
	vw, vh := s.session.Layout.Viewport()
	inside := x >= 0 && y >= 0 && float64(x) < vw && float64(y) < vh

	if !inside {
		if s.pointerInside {
			stage.OnPointerLeave()
			s.pointerInside = false
		}
		return
	}
	s.pointerInside = true
	if x != s.pointerX || y != s.pointerY {
		s.pointerX, s.pointerY = x, y
		stage.OnPointerMove(float64(x), float64(y))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if _, err := s.session.Page.NavigateAt(float64(x), float64(y)); err != nil {
			log.Printf("[LandingScene] 导航失败: %v", err)
		}
	}
}

// Draw 按合成结果绘制页面
func (s *LandingScene) Draw(screen *ebiten.Image) {
	palette := s.session.Palette
	screen.Fill(palette.Background)

	for _, item := range s.session.Frame() {
		s.drawItem(screen, palette, item)
	}
}

func (s *LandingScene) drawItem(screen *ebiten.Image, palette visual.Palette, item visual.Item) {
	r := item.Screen
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

	if item.Kind == visual.KindCursor {
		s.drawCursor(screen, palette, item)
		return
	}

	// 导航栏只在滚动后显示背景
	if fill, ok := palette.Fill(item.Kind); ok && (item.Kind != "bar" || item.Scrolled) {
		vector.DrawFilledRect(screen, x, y, w, h, visual.Fade(fill, item.Opacity, item.Blur), true)
	}
	if item.Kind == "card" {
		vector.StrokeRect(screen, x, y, w, h, 1, visual.Fade(palette.Muted, item.Opacity*0.4, item.Blur), true)
	}
	if item.HasSpot && item.SpotX >= 0 && item.SpotY >= 0 && item.SpotX <= r.W && item.SpotY <= r.H {
		vector.DrawFilledCircle(screen, x+float32(item.SpotX), y+float32(item.SpotY), SpotlightRadius,
			visual.Fade(palette.Accent, item.Opacity*0.12, item.Blur), true)
	}

	face := s.fonts.FaceFor(item.Kind)
	if face == nil || item.Text == "" {
		return
	}
	tw, th := text.Measure(item.Text, face, face.Size*1.2)
	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2)
	op.ColorScale.ScaleWithColor(visual.Fade(palette.Ink(item.Kind), item.Opacity, item.Blur))
	text.Draw(screen, item.Text, face, op)
}

func (s *LandingScene) drawCursor(screen *ebiten.Image, palette visual.Palette, item visual.Item) {
	cx, cy := item.Screen.Center()
	radius := float32(item.Screen.W / 2)
	if item.Hovering {
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), radius, visual.Fade(palette.Accent, 0.15, 0), true)
	}
	if string(item.Target) == s.session.Config.Chrome.CursorDot {
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), radius, palette.Accent, true)
		return
	}
	vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 1.5, palette.Accent, true)
}

// Close 停止页面引擎
func (s *LandingScene) Close() {
	s.session.Close()
	log.Printf("[LandingScene] 页面 %q 已关闭", s.session.Config.Name)
}
