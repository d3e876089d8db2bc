// cmd/framesnap/main.go
// 离屏快照工具 - 在指定滚动偏移处把页面渲染为 PNG
//
// 页面先播放完入场动画，然后依次平滑滚动到每个偏移，稳定后截图。
// 用于在没有窗口的环境下检查两个页面变体的滚动效果。
//
// 用法：
//
//	go run ./cmd/framesnap -variant dark -offsets 0,280,1200,4400 -out build/snap
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/entities"
	"github.com/gonewx/scrollstage/pkg/visual"
)

const (
	frameStep       = 1.0 / 60
	entranceSeconds = 4.0
	settleLimit     = 10.0
	spotlightRadius = 120
)

func main() {
	variant := flag.String("variant", "light", "页面变体: light 或 dark")
	configPath := flag.String("config", "", "页面配置文件路径（覆盖 -variant）")
	offsets := flag.String("offsets", "0", "滚动偏移列表，逗号分隔")
	outDir := flag.String("out", "build/snap", "输出目录")
	width := flag.Int("width", 0, "视口宽度（0 使用配置值）")
	height := flag.Int("height", 0, "视口高度（0 使用配置值）")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	path := *configPath
	if path == "" {
		path = config.VariantPath(*variant)
	}
	targets, err := ParseOffsets(*offsets)
	if err != nil {
		fail(err)
	}
	files, err := run(path, targets, *outDir, float64(*width), float64(*height))
	if err != nil {
		fail(err)
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "framesnap: %v\n", err)
	os.Exit(1)
}

func run(path string, offsets []float64, outDir string, width, height float64) ([]string, error) {
	cfg, err := config.LoadPageConfig(path)
	if err != nil {
		return nil, err
	}
	session, err := entities.NewSession(cfg, width, height)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	defer func() { _ = source.Close() }()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	advance(session, entranceSeconds)

	var files []string
	for _, offset := range offsets {
		session.Stage.ScrollTo(offset)
		settle(session)

		dc := Render(session, source)
		name := filepath.Join(outDir, fmt.Sprintf("%s_%05.0f.png", cfg.Name, offset))
		err := dc.SavePNG(name)
		_ = dc.Close()
		if err != nil {
			return files, fmt.Errorf("保存 %s 失败: %w", name, err)
		}
		log.Printf("[framesnap] %s (virtual %.1f)", name, session.Stage.ScrollState().Virtual())
		files = append(files, name)
	}
	return files, nil
}

// ParseOffsets 解析逗号分隔的偏移列表
func ParseOffsets(s string) ([]float64, error) {
	var offsets []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("invalid offset %q", part)
		}
		offsets = append(offsets, v)
	}
	if len(offsets) == 0 {
		return nil, fmt.Errorf("no offsets given")
	}
	return offsets, nil
}

func advance(session *entities.Session, seconds float64) {
	for t := 0.0; t < seconds; t += frameStep {
		session.Step(frameStep)
	}
}

// settle 推进到平滑滚动稳定，再多留一秒给滚动触发的动画
func settle(session *entities.Session) {
	for t := 0.0; t < settleLimit && !session.Stage.Settled(); t += frameStep {
		session.Step(frameStep)
	}
	advance(session, 1)
}

// Render 把当前帧绘制到新的画布
func Render(session *entities.Session, source *text.FontSource) *gg.Context {
	vw, vh := session.Layout.Viewport()
	dc := gg.NewContext(int(vw), int(vh))
	palette := session.Palette
	dc.ClearWithColor(Straight(palette.Background))
	paint := func(c color.RGBA) {
		s := Straight(c)
		dc.SetRGBA(s.R, s.G, s.B, s.A)
	}

	faces := make(map[float64]text.Face)
	for _, item := range session.Frame() {
		r := item.Screen

		if item.Kind == visual.KindCursor {
			cx, cy := r.Center()
			dc.DrawCircle(cx, cy, r.W/2)
			paint(palette.Accent)
			if string(item.Target) == session.Config.Chrome.CursorDot {
				_ = dc.Fill()
			} else {
				dc.SetLineWidth(1.5)
				_ = dc.Stroke()
			}
			continue
		}

		if fill, ok := palette.Fill(item.Kind); ok && (item.Kind != "bar" || item.Scrolled) {
			dc.DrawRectangle(r.X, r.Y, r.W, r.H)
			paint(visual.Fade(fill, item.Opacity, item.Blur))
			_ = dc.Fill()
		}
		if item.Kind == "card" {
			dc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, 12)
			paint(visual.Fade(palette.Muted, item.Opacity*0.4, item.Blur))
			dc.SetLineWidth(1)
			_ = dc.Stroke()
		}
		if item.HasSpot && item.SpotX >= 0 && item.SpotY >= 0 && item.SpotX <= r.W && item.SpotY <= r.H {
			dc.DrawCircle(r.X+item.SpotX, r.Y+item.SpotY, spotlightRadius)
			paint(visual.Fade(palette.Accent, item.Opacity*0.12, item.Blur))
			_ = dc.Fill()
		}

		if item.Text == "" {
			continue
		}
		size, ok := visual.FontSize(item.Kind)
		if !ok {
			continue
		}
		face, ok := faces[size]
		if !ok {
			face = source.Face(size)
			faces[size] = face
		}
		dc.SetFont(face)
		paint(visual.Fade(palette.Ink(item.Kind), item.Opacity, item.Blur))
		cx, cy := r.Center()
		dc.DrawStringAnchored(item.Text, cx, cy, 0.5, 0.5)
	}
	return dc
}

// Straight 把预乘颜色转换为 gg 使用的直通 alpha 颜色
func Straight(c color.RGBA) gg.RGBA {
	if c.A == 0 {
		return gg.RGBA{}
	}
	a := float64(c.A)
	return gg.RGBA2(
		math.Min(1, float64(c.R)/a),
		math.Min(1, float64(c.G)/a),
		math.Min(1, float64(c.B)/a),
		a/255,
	)
}
