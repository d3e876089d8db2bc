package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/scrollstage/pkg/app"
	"github.com/gonewx/scrollstage/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	variant := flag.String("variant", "", "页面变体: light 或 dark（默认使用上次的变体）")
	configPath := flag.String("config", "", "页面配置文件路径（覆盖内置配置）")
	flag.Parse()

	embedded.Init(dataFS)

	pageApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Variant:    *variant,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("页面初始化失败: %v", err)
	}
	defer pageApp.Close()

	width, height := pageApp.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("OKNBS - Scroll Stage")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(pageApp.StartFullscreen())

	if err := ebiten.RunGame(pageApp); err != nil {
		log.Fatal(err)
	}
}
