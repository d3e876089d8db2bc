package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开存储
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Variant != "light" {
		t.Errorf("Variant: got %q, want light", s.Variant)
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestSettingsNilStorage 降级模式只保存在内存
func TestSettingsNilStorage(t *testing.T) {
	sm := NewSettingsManager(nil)
	if !sm.SetVariant("dark") {
		t.Fatal("SetVariant(dark) 应成功")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("降级模式 Save 不应报错: %v", err)
	}
	if sm.GetSettings().Variant != "dark" {
		t.Errorf("Variant: got %q, want dark", sm.GetSettings().Variant)
	}
}

func TestSettingsLoadSave(t *testing.T) {
	storage := openTestStorage(t, "test_scrollstage_settings")

	sm1 := NewSettingsManager(storage)
	sm1.SetVariant("dark")
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(storage)
	s := sm2.GetSettings()
	if s.Variant != "dark" {
		t.Errorf("Loaded Variant: got %q, want dark", s.Variant)
	}
	if !s.Fullscreen {
		t.Error("Loaded Fullscreen: got false, want true")
	}
}

func TestSetVariantUnknown(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.SetVariant("sepia") {
		t.Error("未知变体应被忽略")
	}
	if sm.GetSettings().Variant != "light" {
		t.Errorf("Variant: got %q, want light", sm.GetSettings().Variant)
	}
}

// TestLoadUnknownVariant 存储中的未知变体回退为默认值
func TestLoadUnknownVariant(t *testing.T) {
	storage := openTestStorage(t, "test_scrollstage_unknown")
	if err := storage.SaveObjectProp(settingsObject, settingsProperty, []byte("variant: sepia\nfullscreen: true\n")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	s := NewSettingsManager(storage).GetSettings()
	if s.Variant != "light" {
		t.Errorf("Variant: got %q, want light", s.Variant)
	}
	if !s.Fullscreen {
		t.Error("其余字段应保留")
	}
}
