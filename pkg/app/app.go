// Package app 提供页面应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/scrollstage/pkg/config"
	"github.com/gonewx/scrollstage/pkg/game"
	"github.com/gonewx/scrollstage/pkg/scenes"
	"github.com/gonewx/scrollstage/pkg/utils"
)

// AppName 存储目录使用的应用名
const AppName = "scrollstage"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 启动时的页面变体（"light" / "dark"），为空则使用上次保存的变体
	Variant string
	// ConfigPath 显式指定页面配置文件，覆盖 Variant 对应的内置配置
	ConfigPath string
}

// App 是页面应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager  *game.SceneManager
	settings      *game.SettingsManager
	verbose       bool
	width, height int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化页面应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fonts, err := scenes.LoadFonts()
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	settings := game.NewSettingsManager(game.OpenStorage(AppName))

	variant := cfg.Variant
	if variant == "" {
		variant = settings.GetSettings().Variant
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		verbose:      cfg.Verbose,
	}

	// 显式配置文件只用于启动变体，切换变体时使用内置配置
	a.sceneManager.SetSceneFactory(func(v string) (game.Scene, error) {
		path := config.VariantPath(v)
		if cfg.ConfigPath != "" && v == variant {
			path = cfg.ConfigPath
		}
		pageConfig, err := config.LoadPageConfig(path)
		if err != nil {
			return nil, err
		}
		log.Printf("[Config] 加载页面配置: %s", path)
		if a.width == 0 {
			a.width, a.height = int(pageConfig.Viewport.Width), int(pageConfig.Viewport.Height)
		}
		return scenes.NewLandingScene(pageConfig, fonts)
	})

	if err := a.sceneManager.LoadVariant(variant); err != nil {
		return nil, fmt.Errorf("页面初始化失败: %w", err)
	}
	log.Printf("[App] Starting variant: %s", variant)
	return a, nil
}

// Update 更新页面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.width, a.height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.width, a.height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏（移动端始终全屏）
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		if !fullscreen {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(fullscreen)
		a.saveSettings()
	}

	// T 切换页面变体
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if err := a.sceneManager.LoadVariant(OtherVariant(a.sceneManager.Variant())); err != nil {
			log.Printf("[App] 切换页面变体失败: %v", err)
		} else if a.settings.SetVariant(a.sceneManager.Variant()) {
			a.saveSettings()
		}
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
	}
}

// OtherVariant 返回另一个页面变体
func OtherVariant(variant string) string {
	if variant == "dark" {
		return "light"
	}
	return "dark"
}

// Draw 绘制页面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸（页面配置的视口尺寸）
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// WindowSize 返回初始窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.width, a.height
}

// StartFullscreen 上次退出时是否处于全屏
func (a *App) StartFullscreen() bool {
	return a.settings.GetSettings().Fullscreen && !utils.IsMobile()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 关闭当前页面
func (a *App) Close() {
	a.sceneManager.Close()
}
