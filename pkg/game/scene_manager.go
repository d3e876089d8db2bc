package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定页面变体的场景，避免循环依赖
type SceneFactory func(variant string) (Scene, error)

// SceneManager manages which page scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	variant      string
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// 被替换的场景如果实现了 Closable 会被关闭
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		if c, ok := sm.currentScene.(Closable); ok {
			c.Close()
		}
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Variant 返回当前页面变体名称
func (sm *SceneManager) Variant() string {
	return sm.variant
}

// LoadVariant 加载指定页面变体的场景
// variant: 变体名称，如 "light", "dark"
// 创建失败时保留当前场景
func (sm *SceneManager) LoadVariant(variant string) error {
	log.Printf("[SceneManager] 加载页面变体: %s", variant)

	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	newScene, err := sm.sceneFactory(variant)
	if err != nil {
		return fmt.Errorf("failed to create scene for variant %q: %w", variant, err)
	}
	sm.SwitchTo(newScene)
	sm.variant = variant
	log.Printf("[SceneManager] 成功切换到页面变体: %s", variant)
	return nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	if c, ok := sm.currentScene.(Closable); ok {
		c.Close()
	}
	sm.currentScene = nil
}
