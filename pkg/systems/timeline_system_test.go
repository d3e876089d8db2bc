package systems

import (
	"testing"

	"github.com/gonewx/scrollstage/pkg/components"
	"github.com/gonewx/scrollstage/pkg/visual"
)

func step(target visual.Target, property string, from, to, duration, offset float64) components.TimelineStep {
	return components.TimelineStep{
		Tween: components.TweenSpec{
			Target:   target,
			Property: property,
			HasFrom:  true,
			From:     from,
			To:       to,
			Duration: duration,
		},
		Offset: offset,
	}
}

// TestStepStartTimes 起点 = 上一步结束 + 偏移
func TestStepStartTimes(t *testing.T) {
	with := func(s components.TimelineStep) components.TimelineStep {
		s.Position = components.PositionWithPrevious
		return s
	}

	tests := []struct {
		name  string
		steps []components.TimelineStep
		want  []float64
	}{
		{
			name: "顺序播放",
			steps: []components.TimelineStep{
				step("a", "opacity", 0, 1, 1, 0),
				step("b", "opacity", 0, 1, 1, 0),
			},
			want: []float64{0, 1},
		},
		{
			name: "负偏移重叠",
			steps: []components.TimelineStep{
				step("badge", "y", 20, 0, 0.8, 0),
				step("title", "y", 60, 0, 1, -0.5),
				step("sub", "y", 30, 0, 1, -0.6),
			},
			want: []float64{0, 0.3, 0.7},
		},
		{
			name: "正偏移留空",
			steps: []components.TimelineStep{
				step("a", "x", 0, 1, 1, 0),
				step("b", "x", 0, 1, 1, 0.25),
			},
			want: []float64{0, 1.25},
		},
		{
			name: "与上一步同时开始",
			steps: []components.TimelineStep{
				step("a", "value", 0, 8, 2, 0),
				with(step("b", "value", 0, 100, 2, 0)),
				with(step("c", "value", 0, 7, 2, 0)),
			},
			want: []float64{0, 0, 0},
		},
		{
			name: "起点不早于 0",
			steps: []components.TimelineStep{
				step("a", "x", 0, 1, 1, -2),
			},
			want: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepStartTimes(tt.steps)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i], 1e-9) {
					t.Errorf("step %d start = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestTimelineCreateAppliesFrom 构建时立即写入显式起始值
func TestTimelineCreateAppliesFrom(t *testing.T) {
	f := newFixture(t, 800)
	f.timelines.Create("hero", 0, step("title", visual.PropOpacity, 0, 1, 1, 0), step("title", visual.PropY, 60, 0, 1, -1))

	if v := f.number(t, "title", visual.PropOpacity); v != 0 {
		t.Errorf("播放前 opacity 应为 0，实际 %v", v)
	}
	if v := f.number(t, "title", visual.PropY); v != 60 {
		t.Errorf("播放前 y 应为 60，实际 %v", v)
	}
}

// TestTimelinePlaysOnce 时间轴只播放一次
func TestTimelinePlaysOnce(t *testing.T) {
	f := newFixture(t, 800)
	id := f.timelines.Create("once", 0, step("a", visual.PropOpacity, 0, 1, 0.5, 0))

	if f.timelines.State(id) != components.TimelineIdle {
		t.Fatal("新建时间轴应为 Idle")
	}
	if !f.timelines.Play(id) {
		t.Fatal("第一次 Play 应成功")
	}
	if f.timelines.Play(id) {
		t.Error("第二次 Play 应被忽略")
	}

	f.run(10, 0.125)
	if f.timelines.State(id) != components.TimelineDone {
		t.Errorf("状态应为 Done，实际 %v", f.timelines.State(id))
	}
	if f.timelines.Play(id) {
		t.Error("完成后 Play 应被忽略")
	}
	if v := f.number(t, "a", visual.PropOpacity); v != 1 {
		t.Errorf("opacity 应为 1，实际 %v", v)
	}
}

// TestTimelinePlayMissing 不存在的时间轴
func TestTimelinePlayMissing(t *testing.T) {
	f := newFixture(t, 800)
	if f.timelines.Play(999) {
		t.Error("不存在的时间轴 Play 应返回 false")
	}
}

// TestTimelineDelay 延迟结束前不启动任何补间
func TestTimelineDelay(t *testing.T) {
	f := newFixture(t, 800)
	id := f.timelines.Create("delayed", 0.5, step("a", visual.PropOpacity, 0, 1, 1, 0))
	f.timelines.Play(id)

	// 时钟: 0, 0.25
	f.run(2, 0.25)
	if f.tweens.IsAnimating("a", visual.PropOpacity) {
		t.Fatal("延迟期间不应启动补间")
	}

	// 时钟: 0.5
	f.tick(0.25)
	if !f.tweens.IsAnimating("a", visual.PropOpacity) {
		t.Fatal("延迟结束应启动补间")
	}
	if v := f.number(t, "a", visual.PropOpacity); v != 0 {
		t.Errorf("启动帧应写入起始值 0，实际 %v", v)
	}
	if f.timelines.State(id) != components.TimelineDone {
		t.Error("全部步骤已启动，时间轴应为 Done")
	}

	f.run(4, 0.25)
	if v := f.number(t, "a", visual.PropOpacity); v != 1 {
		t.Errorf("opacity 应为 1，实际 %v", v)
	}
}

// TestTimelineSequencing 第二步在第一步结束后启动
func TestTimelineSequencing(t *testing.T) {
	f := newFixture(t, 800)
	id := f.timelines.Create("seq", 0,
		step("a", visual.PropY, 40, 0, 0.5, 0),
		step("b", visual.PropY, 40, 0, 0.5, 0),
	)
	if d := f.timelines.Duration(id); d != 1 {
		t.Errorf("总时长应为 1，实际 %v", d)
	}
	f.timelines.Play(id)

	f.run(4, 0.125) // 时钟 0.375
	if f.tweens.IsAnimating("b", visual.PropY) {
		t.Error("第一步结束前不应启动第二步")
	}
	if v := f.number(t, "b", visual.PropY); v != 40 {
		t.Errorf("第二步启动前 y 应保持 40，实际 %v", v)
	}

	f.run(1, 0.125) // 时钟 0.5
	if v := f.number(t, "a", visual.PropY); v != 0 {
		t.Errorf("第一步应已完成，实际 %v", v)
	}
	if !f.tweens.IsAnimating("b", visual.PropY) {
		t.Error("第二步应已启动")
	}
}
