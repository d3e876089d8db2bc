package visual

import "sort"

// Write 一次样式写入记录
type Write struct {
	Target   Target
	Property string
	Number   float64
	Text     string
	IsText   bool
}

// StyleBook 内存中的样式表，实现 Sink
//
// 保存每个 (Target, 属性) 的最新值，渲染宿主每帧读取它来绘制；
// 开启 Record 后还会保留完整写入历史，供测试断言"没有跳变"等性质。
type StyleBook struct {
	numbers map[Target]map[string]float64
	texts   map[Target]map[string]string

	// Record 为 true 时记录写入历史
	Record  bool
	history []Write
}

// NewStyleBook 创建空样式表
func NewStyleBook() *StyleBook {
	return &StyleBook{
		numbers: make(map[Target]map[string]float64),
		texts:   make(map[Target]map[string]string),
	}
}

// SetNumber 实现 Sink
func (b *StyleBook) SetNumber(target Target, property string, value float64) {
	m, ok := b.numbers[target]
	if !ok {
		m = make(map[string]float64)
		b.numbers[target] = m
	}
	m[property] = value
	if b.Record {
		b.history = append(b.history, Write{Target: target, Property: property, Number: value})
	}
}

// SetText 实现 Sink
func (b *StyleBook) SetText(target Target, property string, value string) {
	m, ok := b.texts[target]
	if !ok {
		m = make(map[string]string)
		b.texts[target] = m
	}
	m[property] = value
	if b.Record {
		b.history = append(b.history, Write{Target: target, Property: property, Text: value, IsText: true})
	}
}

// Number 读取数值属性
func (b *StyleBook) Number(target Target, property string) (float64, bool) {
	v, ok := b.numbers[target][property]
	return v, ok
}

// NumberOr 读取数值属性，不存在时返回默认值
func (b *StyleBook) NumberOr(target Target, property string, fallback float64) float64 {
	if v, ok := b.Number(target, property); ok {
		return v
	}
	return fallback
}

// Text 读取文本属性
func (b *StyleBook) Text(target Target, property string) (string, bool) {
	v, ok := b.texts[target][property]
	return v, ok
}

// History 返回写入历史（Record 关闭时为空）
func (b *StyleBook) History() []Write {
	return b.history
}

// NumberHistory 返回某个属性的数值写入序列
func (b *StyleBook) NumberHistory(target Target, property string) []float64 {
	var out []float64
	for _, w := range b.history {
		if !w.IsText && w.Target == target && w.Property == property {
			out = append(out, w.Number)
		}
	}
	return out
}

// ResetHistory 清空写入历史
func (b *StyleBook) ResetHistory() {
	b.history = b.history[:0]
}

// Targets 返回写入过的全部 Target（排序后）
func (b *StyleBook) Targets() []Target {
	seen := make(map[Target]struct{})
	for t := range b.numbers {
		seen[t] = struct{}{}
	}
	for t := range b.texts {
		seen[t] = struct{}{}
	}
	out := make([]Target, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
