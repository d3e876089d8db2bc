package main

import (
	"image/color"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gonewx/scrollstage/pkg/config"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestParseOffsets(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{"单个", "0", []float64{0}, false},
		{"多个带空格", "0, 280 ,1200", []float64{0, 280, 1200}, false},
		{"忽略空项", "400,,", []float64{400}, false},
		{"负数", "-10", nil, true},
		{"非数字", "top", nil, true},
		{"空", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOffsets(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestStraight(t *testing.T) {
	c := Straight(color.RGBA{R: 100, G: 50, B: 0, A: 200})
	if math.Abs(c.R-0.5) > 1e-9 || math.Abs(c.G-0.25) > 1e-9 || c.B != 0 {
		t.Errorf("颜色应去除预乘，实际 %+v", c)
	}
	if math.Abs(c.A-200.0/255) > 1e-9 {
		t.Errorf("alpha = %v", c.A)
	}
	if z := Straight(color.RGBA{}); z.A != 0 {
		t.Errorf("全透明应保持透明，实际 %+v", z)
	}
}

// TestRunWritesSnapshots 每个偏移输出一张 PNG
func TestRunWritesSnapshots(t *testing.T) {
	out := t.TempDir()
	path := filepath.Join("..", "..", config.VariantPath("dark"))
	files, err := run(path, []float64{0, 280}, out, 0, 0)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("应输出 2 张快照，实际 %d", len(files))
	}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			t.Fatalf("快照不存在: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("%s 为空文件", f)
		}
	}
	if filepath.Base(files[1]) != "dark_00280.png" {
		t.Errorf("文件名 = %s", filepath.Base(files[1]))
	}
}
