package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/page_light.yaml": {Data: []byte("name: light\n")},
		"data/page_dark.yaml":  {Data: []byte("name: dark\n")},
	}
}

// TestNotInitialized 未初始化时所有访问都返回错误
func TestNotInitialized(t *testing.T) {
	initialized = false
	dataFS = nil

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	_, err := ReadFile("data/page_light.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
	if Exists("data/page_light.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

// TestReadFile 读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/page_light.yaml", "name: light\n", false},
		{"带 ./ 前缀", "./data/page_dark.yaml", "name: dark\n", false},
		{"不存在", "data/page_sepia.yaml", "", true},
		{"未知前缀", "assets/logo.png", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if string(data) != tt.want {
				t.Errorf("data = %q, want %q", data, tt.want)
			}
		})
	}
}

// TestGlob 匹配全部页面变体
func TestGlob(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	files, err := Glob("data/page_*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files, got %v", files)
	}
	if !Exists("data/page_dark.yaml") {
		t.Error("data/page_dark.yaml should exist")
	}
}
