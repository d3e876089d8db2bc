package systems

import "testing"

func TestReadingProgress(t *testing.T) {
	tests := []struct {
		name          string
		offset, limit float64
		want          float64
	}{
		{"顶部", 0, 3200, 0},
		{"中间", 1600, 3200, 0.5},
		{"底部", 3200, 3200, 1},
		{"不可滚动", 0, 0, 0},
		{"越界", 4000, 3200, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingProgress(tt.offset, tt.limit); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressSystemWrites(t *testing.T) {
	f := newFixture(t, 4000)
	f.scroll.Resize()
	progress := NewProgressSystem(f.scroll.State(), f.book, "document", "progress-bar", "nav")

	f.scroll.Jump(60)
	progress.Update(0)
	if v := f.number(t, "nav", "scrolled"); v != 0 {
		t.Errorf("偏移 60 时 scrolled = %v, want 0", v)
	}

	f.scroll.Jump(1600)
	progress.Update(0)
	if v := f.number(t, "nav", "scrolled"); v != 1 {
		t.Errorf("偏移 1600 时 scrolled = %v, want 1", v)
	}
	if v := f.number(t, "progress-bar", "scaleX"); v != 0.5 {
		t.Errorf("scaleX = %v, want 0.5", v)
	}
	if v := f.number(t, "document", "scrollTop"); v != 1600 {
		t.Errorf("scrollTop = %v, want 1600", v)
	}
	if progress.Progress() != 0.5 {
		t.Errorf("Progress() = %v, want 0.5", progress.Progress())
	}
}
