package systems

import (
	"testing"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// TestOneShotFiresOnce 越过阈值时触发一次，之后反复进出不再触发
func TestOneShotFiresOnce(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("card", 1000, 200)
	tl := f.timelines.Create("card", 0, step("card", visual.PropOpacity, 0, 1, 0.5, 0))
	id := f.triggers.RegisterOneShot("card", 0.5, tl)

	f.jump(0)
	if f.triggers.State(id) != components.TriggerPending {
		t.Fatal("元素不可见时不应触发")
	}

	// 视口 [250, 1050]：可见 50/200 = 0.25
	f.jump(250)
	if f.triggers.State(id) != components.TriggerPending {
		t.Fatal("可见比例 0.25 不应触发")
	}

	// 视口 [300, 1100]：可见 100/200 = 0.5，恰好达到阈值
	f.jump(300)
	if f.triggers.State(id) != components.TriggerFired {
		t.Fatal("可见比例达到阈值应触发")
	}
	f.run(5, 0.125)
	if v := f.number(t, "card", visual.PropOpacity); v != 1 {
		t.Fatalf("入场完成后 opacity 应为 1，实际 %v", v)
	}

	for i := 0; i < 3; i++ {
		f.jump(0)
		f.jump(1000)
	}
	if f.triggers.State(id) != components.TriggerFired {
		t.Error("触发器状态永不回退")
	}
	if f.tweens.IsAnimating("card", visual.PropOpacity) {
		t.Error("再次越过阈值不应重新播放")
	}
	if v := f.number(t, "card", visual.PropOpacity); v != 1 {
		t.Errorf("opacity 应保持 1，实际 %v", v)
	}
}

// TestOneShotVisibleOnLoad 加载时已可见的元素在第一帧触发
func TestOneShotVisibleOnLoad(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("hero-stat", 100, 100)
	tl := f.timelines.Create("stat", 0, step("hero-stat", "value", 0, 8, 2, 0))
	id := f.triggers.RegisterOneShot("hero-stat", 0.5, tl)

	f.tick(1.0 / 60)
	if f.triggers.State(id) != components.TriggerFired {
		t.Error("首帧即满足条件时应触发")
	}
}

// TestOneShotAnchor 锚点 "top 88%"：元素顶部到达视口 88% 处时触发
func TestOneShotAnchor(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("section-title", 1000, 100)
	tl := f.timelines.Create("up", 0, step("section-title", visual.PropY, 40, 0, 1, 0))
	id := f.triggers.RegisterOneShotAnchor("section-title", utils.MustParseAnchor("top 88%"), tl)

	// 1000 - 0.88*800 = 296
	f.jump(290)
	if f.triggers.State(id) != components.TriggerPending {
		t.Fatal("未到锚点不应触发")
	}
	f.jump(300)
	if f.triggers.State(id) != components.TriggerFired {
		t.Fatal("越过锚点应触发")
	}
}

// TestOneShotUnmeasurableRetry 无法测量的元素跳过，下一帧重试
func TestOneShotUnmeasurableRetry(t *testing.T) {
	f := newFixture(t, 4000)
	tl := f.timelines.Create("late", 0, step("late", visual.PropOpacity, 0, 1, 0.5, 0))
	id := f.triggers.RegisterOneShot("late", 0.5, tl)

	f.run(3, 1.0/60)
	if f.triggers.State(id) != components.TriggerPending {
		t.Fatal("无法测量时不应触发")
	}

	f.place("late", 100, 100)
	f.tick(1.0 / 60)
	if f.triggers.State(id) != components.TriggerFired {
		t.Error("可测量后应在下一帧触发")
	}
}

// TestScrubPureFunction 滚动驱动属性只取决于当前偏移，可逆
func TestScrubPureFunction(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("bg", 0, 800)
	id := f.triggers.RegisterScrub("bg", components.ScrollRange{Start: 100, End: 500},
		[]components.ScrubProperty{{Property: visual.PropY, From: 0, To: 100}}, nil)

	tests := []struct {
		offset float64
		want   float64
	}{
		{0, 0},
		{100, 0},
		{300, 50},
		{500, 100},
		{900, 100},
		{300, 50},
		{200, 25},
	}
	for _, tt := range tests {
		f.jump(tt.offset)
		if v := f.number(t, "bg", visual.PropY); !almostEqual(v, tt.want, 1e-9) {
			t.Errorf("偏移 %v: y = %v, want %v", tt.offset, v, tt.want)
		}
	}
	if p := f.triggers.Progress(id); !almostEqual(p, 0.25, 1e-9) {
		t.Errorf("progress = %v, want 0.25", p)
	}
}

// TestScrubDegenerateRange 退化区间视为已完成
func TestScrubDegenerateRange(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("x", 0, 100)
	f.triggers.RegisterScrub("x", components.ScrollRange{Start: 500, End: 500},
		[]components.ScrubProperty{{Property: visual.PropOpacity, From: 1, To: 0}}, nil)

	f.jump(0)
	if v := f.number(t, "x", visual.PropOpacity); v != 0 {
		t.Errorf("退化区间应写入终点值 0，实际 %v", v)
	}
}

// TestScrubProgress 进度计算
func TestScrubProgress(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		start  float64
		end    float64
		want   float64
	}{
		{"区间前", 0, 100, 200, 0},
		{"区间中", 150, 100, 200, 0.5},
		{"区间后", 300, 100, 200, 1},
		{"退化区间", 0, 100, 100, 1},
		{"反向区间", 150, 200, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrubProgress(tt.offset, tt.start, tt.end); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestScrubAnchoredRange 锚定区间每帧根据触发元素换算
func TestScrubAnchoredRange(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("hero", 0, 800)
	f.triggers.RegisterScrub("hero", components.ScrollRange{
		Anchored:    true,
		Trigger:     "stats",
		StartAnchor: utils.MustParseAnchor("top bottom"),
		EndAnchor:   utils.MustParseAnchor("top top"),
	}, []components.ScrubProperty{{Property: visual.PropOpacity, From: 1, To: 0}}, nil)

	f.jump(400)
	if _, ok := f.book.Number("hero", visual.PropOpacity); ok {
		t.Fatal("触发元素无法测量时不应写入")
	}

	// stats 顶部 1000：区间 [200, 1000]
	f.place("stats", 1000, 400)
	f.jump(600)
	if v := f.number(t, "hero", visual.PropOpacity); !almostEqual(v, 0.5, 1e-9) {
		t.Errorf("opacity = %v, want 0.5", v)
	}
}

// TestScrubRelativeTo 视差：数值为参照元素高度的比例
func TestScrubRelativeTo(t *testing.T) {
	f := newFixture(t, 4000)
	f.place("hero", 0, 800)
	f.place("hero-bg", 0, 800)
	f.triggers.RegisterScrub("hero-bg", components.ScrollRange{Start: 0, End: 800},
		[]components.ScrubProperty{{Property: visual.PropY, From: 0, To: 0.2, RelativeTo: "hero"}}, nil)

	f.jump(400)
	if v := f.number(t, "hero-bg", visual.PropY); !almostEqual(v, 80, 1e-9) {
		t.Errorf("y = %v, want 80", v)
	}
}

// TestGroupStagger 分组子元素按注册顺序错开 0.12s 入场
func TestGroupStagger(t *testing.T) {
	group := GroupReveal{
		Children: []visual.Target{"card-1", "card-2", "card-3"},
		Properties: []RevealProperty{
			{Property: visual.PropOpacity, From: 0, To: 1},
			{Property: visual.PropY, From: 40, To: 0},
		},
		Duration: 0.6,
	}

	starts := StepStartTimes(GroupSteps(group))
	want := []float64{0, 0, 0.12, 0.12, 0.24, 0.24}
	if len(starts) != len(want) {
		t.Fatalf("步骤数 = %d, want %d", len(starts), len(want))
	}
	for i := range want {
		if !almostEqual(starts[i], want[i], 1e-9) {
			t.Errorf("step %d start = %v, want %v", i, starts[i], want[i])
		}
	}

	f := newFixture(t, 4000)
	f.place("grid", 1000, 400)
	id := f.triggers.RegisterGroup("grid", utils.MustParseAnchor("top 85%"), group)

	for _, child := range group.Children {
		if v := f.number(t, child, visual.PropOpacity); v != 0 {
			t.Errorf("%s 入场前应隐藏，实际 opacity %v", child, v)
		}
	}

	f.jump(400)
	if f.triggers.State(id) != components.TriggerFired {
		t.Fatal("分组应已触发")
	}
	if !f.tweens.IsAnimating("card-1", visual.PropOpacity) {
		t.Error("第一个子元素应立即入场")
	}
	if f.tweens.IsAnimating("card-2", visual.PropOpacity) {
		t.Error("第二个子元素不应与第一个同时入场")
	}

	f.tick(0.0625)
	if f.tweens.IsAnimating("card-2", visual.PropOpacity) {
		t.Error("0.0625s 时第二个子元素尚未入场")
	}
	f.tick(0.0625)
	if !f.tweens.IsAnimating("card-2", visual.PropOpacity) {
		t.Error("0.125s 时第二个子元素应已入场")
	}
	if f.tweens.IsAnimating("card-3", visual.PropOpacity) {
		t.Error("0.125s 时第三个子元素尚未入场")
	}

	f.run(20, 0.0625)
	for _, child := range group.Children {
		if v := f.number(t, child, visual.PropOpacity); v != 1 {
			t.Errorf("%s opacity = %v, want 1", child, v)
		}
		if v := f.number(t, child, visual.PropY); v != 0 {
			t.Errorf("%s y = %v, want 0", child, v)
		}
	}
}
