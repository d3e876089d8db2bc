// cmd/termpreview/main.go
// 终端预览 - 在终端里以字符单元格运行页面
//
// 每个单元格对应 CellWidth x CellHeight 像素的视口区域。
// 鼠标滚轮滚动，方向键/翻页键按原生滚动处理，点击导航按钮平滑跳转。
// Esc、q 或 Ctrl+C 退出。
//
// 用法：
//
//	go run ./cmd/termpreview -variant dark
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/scrollstage/pkg/config"
)

func main() {
	variant := flag.String("variant", "light", "页面变体: light 或 dark")
	configPath := flag.String("config", "", "页面配置文件路径（覆盖 -variant）")
	logPath := flag.String("log", "", "日志文件（终端被占用，默认丢弃日志）")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termpreview: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	path := *configPath
	if path == "" {
		path = config.VariantPath(*variant)
	}
	cfg, err := config.LoadPageConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termpreview: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	preview, err := NewPreview(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "termpreview: %v\n", err)
		os.Exit(1)
	}
	defer preview.Cleanup()

	preview.Run()
}

// Run 事件协程只负责读取事件，页面状态全部由主循环持有
func (p *Preview) Run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !p.HandleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			p.session.Step(now.Sub(last).Seconds())
			last = now
			p.Draw()
		}
	}
}
