package main

import (
	"image/color"
	"log"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/entities"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// 单元格对应的像素尺寸
const (
	CellWidth  = 10.0
	CellHeight = 20.0
)

// 滚动步长（像素）
const (
	WheelStep = 60.0
	LineStep  = CellHeight * 2
)

// Preview 终端渲染宿主
type Preview struct {
	screen  tcell.Screen
	session *entities.Session
	cursor  string
}

// NewPreview 按终端尺寸创建页面
// 终端视口通常窄于指针效果阈值，此时指针效果在整个会话中禁用
func NewPreview(screen tcell.Screen, cfg *config.PageConfig) (*Preview, error) {
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	cols, rows := screen.Size()
	session, err := entities.NewSession(cfg, float64(cols)*CellWidth, float64(rows)*CellHeight)
	if err != nil {
		return nil, err
	}
	log.Printf("[termpreview] %dx%d 单元格，指针效果 %v", cols, rows, session.Stage.Pointer().Enabled())
	return &Preview{screen: screen, session: session, cursor: cfg.Chrome.CursorDot}, nil
}

// Session 返回页面会话
func (p *Preview) Session() *entities.Session {
	return p.session
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	stage := p.session.Stage
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		state := stage.ScrollState()
		_, vh := p.session.Layout.Viewport()
		if target, ok := KeyScrollTarget(ev.Key(), state.Raw(), vh, state.Limit()); ok {
			stage.SyncNative(target)
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := CellCenter(col, row)
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.WheelDown != 0:
			stage.OnWheel(WheelStep)
		case buttons&tcell.WheelUp != 0:
			stage.OnWheel(-WheelStep)
		case buttons&tcell.Button1 != 0:
			if _, err := p.session.Page.NavigateAt(x, y); err != nil {
				log.Printf("[termpreview] 导航失败: %v", err)
			}
		}
		stage.OnPointerMove(x, y)

	case *tcell.EventFocus:
		if !ev.Focused {
			stage.OnPointerLeave()
		}

	case *tcell.EventResize:
		cols, rows := ev.Size()
		p.session.Resize(float64(cols)*CellWidth, float64(rows)*CellHeight)
		p.screen.Sync()
	}
	return true
}

// KeyScrollTarget 计算按键后的原生滚动位置
func KeyScrollTarget(key tcell.Key, raw, viewportHeight, limit float64) (float64, bool) {
	switch key {
	case tcell.KeyDown:
		return raw + LineStep, true
	case tcell.KeyUp:
		return raw - LineStep, true
	case tcell.KeyPgDn:
		return raw + viewportHeight*0.9, true
	case tcell.KeyPgUp:
		return raw - viewportHeight*0.9, true
	case tcell.KeyHome:
		return 0, true
	case tcell.KeyEnd:
		return limit, true
	}
	return raw, false
}

// CellCenter 单元格中心的视口坐标
func CellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

// CellSpan 视口区间 [start, start+size) 覆盖的单元格范围 [first, last)
func CellSpan(start, size, cell float64) (int, int) {
	first := int(math.Round(start / cell))
	last := int(math.Round((start + size) / cell))
	if last == first && size > 0 {
		last = first + 1
	}
	return first, last
}

// Draw 绘制当前帧
func (p *Preview) Draw() {
	palette := p.session.Palette
	bg := palette.Background
	p.screen.SetStyle(tcell.StyleDefault.Background(TermColor(bg)))
	p.screen.Clear()
	cols, rows := p.screen.Size()

	// 每个单元格记录已绘制的背景，文字与半透明填充据此混合
	under := make([]color.RGBA, cols*rows)
	for i := range under {
		under[i] = bg
	}
	cellBG := func(x, y int) color.RGBA { return under[y*cols+x] }

	for _, item := range p.session.Frame() {
		r := item.Screen
		x0, x1 := CellSpan(r.X, r.W, CellWidth)
		y0, y1 := CellSpan(r.Y, r.H, CellHeight)
		x0, y0 = max(x0, 0), max(y0, 0)
		x1, y1 = min(x1, cols), min(y1, rows)

		if item.Kind == visual.KindCursor {
			// 终端只显示圆点
			if string(item.Target) == p.cursor && x0 < cols && y0 < rows {
				p.screen.SetContent(x0, y0, '●', nil,
					tcell.StyleDefault.Foreground(TermColor(palette.Accent)).Background(TermColor(cellBG(x0, y0))))
			}
			continue
		}

		if fill, ok := palette.Fill(item.Kind); ok && (item.Kind != "bar" || item.Scrolled) {
			faded := visual.Fade(fill, item.Opacity, item.Blur)
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					c := Over(faded, cellBG(x, y))
					under[y*cols+x] = c
					p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(TermColor(c)))
				}
			}
		}

		if item.Text == "" || y0 >= y1 {
			continue
		}
		runes := []rune(item.Text)
		row := (y0 + y1 - 1) / 2
		start := (x0+x1)/2 - len(runes)/2
		ink := visual.Fade(palette.Ink(item.Kind), item.Opacity, item.Blur)
		for i, ch := range runes {
			x := start + i
			if x < 0 || x >= cols || row >= rows {
				continue
			}
			back := cellBG(x, row)
			p.screen.SetContent(x, row, ch, nil,
				tcell.StyleDefault.Foreground(TermColor(Over(ink, back))).Background(TermColor(back)))
		}
	}

	p.screen.Show()
}

// Over 把预乘颜色叠加到不透明背景上
func Over(fg, bg color.RGBA) color.RGBA {
	k := 1 - float64(fg.A)/255
	mix := func(f, b uint8) uint8 {
		return uint8(math.Min(255, float64(f)+float64(b)*k))
	}
	return color.RGBA{R: mix(fg.R, bg.R), G: mix(fg.G, bg.G), B: mix(fg.B, bg.B), A: 0xff}
}

// TermColor 转换为终端真彩色
func TermColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Cleanup 停止页面并恢复终端
func (p *Preview) Cleanup() {
	p.session.Close()
	p.screen.Fini()
}
