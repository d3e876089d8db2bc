package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PageSettings 跨会话保留的用户偏好
type PageSettings struct {
	// Variant 上次浏览的页面变体
	Variant    string `yaml:"variant"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *PageSettings {
	return &PageSettings{Variant: "light"}
}

// 可选的页面变体
var knownVariants = map[string]bool{"light": true, "dark": true}

// SettingsManager 用户偏好的加载与保存
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，只保存在内存）
	settings     *PageSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "page"
)

// OpenStorage 打开跨平台存储；失败时返回 nil，调用方进入降级模式
func OpenStorage(appName string) *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: 存储不可用，偏好不会保存: %v", err)
		return nil
	}
	return m
}

// NewSettingsManager 创建设置管理器并加载已保存的设置
// 加载失败不影响创建，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从存储加载设置；未保存过时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded PageSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if !knownVariants[loaded.Variant] {
		loaded.Variant = DefaultSettings().Variant
	}
	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded (variant=%s)", loaded.Variant)
	return nil
}

// Save 保存设置；降级模式下直接返回
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *PageSettings {
	return sm.settings
}

// SetVariant 记录页面变体；未知变体被忽略
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetVariant(variant string) bool {
	if !knownVariants[variant] {
		return false
	}
	sm.settings.Variant = variant
	return true
}

// SetFullscreen 记录全屏状态
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
