//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把 data/*.yaml
// 复制到本目录：
//
//	mkdir -p mobile/data && cp data/*.yaml mobile/data/
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.scrollstage -o build/android/scrollstage.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/ScrollStage.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/scrollstage/pkg/app"
	"github.com/gonewx/scrollstage/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端视口窄于指针效果阈值，指针效果自动禁用
	// 变体为空时使用上次保存的变体
	pageApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("页面初始化失败: %v", err)
	}

	mobile.SetGame(pageApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
