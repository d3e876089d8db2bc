package game

import "github.com/hajimehoshi/ebiten/v2"

// Scene 窗口中运行的一个页面
type Scene interface {
	// Update 推进 deltaTime 秒
	Update(deltaTime float64)
	// Draw 绘制到屏幕
	Draw(screen *ebiten.Image)
}

// Closable 场景被替换或窗口关闭时释放资源（可选接口）
//
// 页面场景在 Close 中停止动画引擎：取消滚动订阅、移除指针监听。
type Closable interface {
	Close()
}
