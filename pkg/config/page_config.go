package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/scrollstage/pkg/embedded"
	"github.com/gonewx/scrollstage/pkg/utils"
)

// PageConfig 页面动画配置
//
// 同一个引擎的两个页面变体（浅色带区块固定、深色不固定）只是两份配置。
//
// 配置文件位置: data/page_light.yaml, data/page_dark.yaml
type PageConfig struct {
	// Name 变体名称（"light" / "dark"）
	Name string `yaml:"name"`

	// Theme 渲染主题
	Theme string `yaml:"theme"`

	// Pinning 是否启用区块固定
	Pinning bool `yaml:"pinning"`

	Viewport ViewportConfig `yaml:"viewport"`
	Scroll   ScrollConfig   `yaml:"scroll"`
	Pointer  PointerConfig  `yaml:"pointer"`
	Chrome   ChromeConfig   `yaml:"chrome"`

	// Layout 静态布局（文档坐标）
	Layout []ElementConfig `yaml:"layout"`

	// Sections 顶层区块，按文档顺序
	Sections []string `yaml:"sections"`

	// Navigation 导航链接
	Navigation []NavLinkConfig `yaml:"navigation"`

	Entrance    *TimelineConfig  `yaml:"entrance"`
	Reveals     []RevealConfig   `yaml:"reveals"`
	Groups      []GroupConfig    `yaml:"groups"`
	Scrubs      []ScrubConfig    `yaml:"scrubs"`
	Counters    []CounterConfig  `yaml:"counters"`
	Loops       []LoopConfig     `yaml:"loops"`
	Magnetic    []MagneticConfig `yaml:"magnetic"`
	Spotlights  []string         `yaml:"spotlights"`
	Interactive []string         `yaml:"interactive"`
}

// ViewportConfig 初始视口尺寸（像素）
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScrollConfig 平滑滚动参数
type ScrollConfig struct {
	Smoothing       float64 `yaml:"smoothing"`
	WheelMultiplier float64 `yaml:"wheelMultiplier"`
	TouchMultiplier float64 `yaml:"touchMultiplier"`
}

// PointerConfig 指针效果参数
type PointerConfig struct {
	Threshold      float64 `yaml:"threshold"`
	DotSmoothing   float64 `yaml:"dotSmoothing"`
	RingSmoothing  float64 `yaml:"ringSmoothing"`
	HoverScale     float64 `yaml:"hoverScale"`
	MagnetDuration float64 `yaml:"magnetDuration"`
	MagnetEase     string  `yaml:"magnetEase"`
	ReturnDuration float64 `yaml:"returnDuration"`
	ReturnEase     string  `yaml:"returnEase"`
}

// ChromeConfig 页面级元素
type ChromeConfig struct {
	Document    string `yaml:"document"`
	ProgressBar string `yaml:"progressBar"`
	Nav         string `yaml:"nav"`
	CursorDot   string `yaml:"cursorDot"`
	CursorRing  string `yaml:"cursorRing"`
}

// ElementConfig 一个元素的布局
type ElementConfig struct {
	Target string  `yaml:"target"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	// Label 渲染宿主显示的文本（可选）
	Label string `yaml:"label"`
	// Kind 渲染宿主的绘制样式（section / card / button / text / title / counter ...）
	Kind string `yaml:"kind"`
	// Fixed 固定在视口中（导航栏、进度条、光标），坐标为视口坐标
	Fixed bool `yaml:"fixed"`
}

// NavLinkConfig 导航链接：点击后平滑滚动到目标区块
type NavLinkConfig struct {
	Label  string `yaml:"label"`
	Button string `yaml:"button"`
	Href   string `yaml:"href"`
}

// TimelineConfig 入场时间轴
type TimelineConfig struct {
	Delay float64      `yaml:"delay"`
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig 时间轴中的一步（对一个元素的一组属性做 fromTo）
type StepConfig struct {
	Target   string  `yaml:"target"`
	From     Props   `yaml:"from"`
	To       Props   `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
	// Offset 相对上一步结束的偏移（秒），负值表示重叠
	Offset float64 `yaml:"offset"`
}

// RevealConfig 进入视口时的一次性入场（原版 .animate-up）
type RevealConfig struct {
	Targets  []string `yaml:"targets"`
	Start    string   `yaml:"start"`
	From     Props    `yaml:"from"`
	To       Props    `yaml:"to"`
	Duration float64  `yaml:"duration"`
	Ease     string   `yaml:"ease"`
}

// GroupConfig 分组错开入场（原版 .stagger-group）
type GroupConfig struct {
	Container string   `yaml:"container"`
	Children  []string `yaml:"children"`
	Start     string   `yaml:"start"`
	From      Props    `yaml:"from"`
	To        Props    `yaml:"to"`
	Duration  float64  `yaml:"duration"`
	Stagger   float64  `yaml:"stagger"`
	Ease      string   `yaml:"ease"`
}

// ScrubConfig 滚动驱动绑定
//
// From 省略的属性使用样式默认值；百分比数值相对 Trigger 元素的高度。
type ScrubConfig struct {
	Target  string `yaml:"target"`
	Trigger string `yaml:"trigger"`
	Start   string `yaml:"start"`
	End     string `yaml:"end"`
	From    Props  `yaml:"from"`
	To      Props  `yaml:"to"`
	Ease    string `yaml:"ease"`
}

// CounterConfig 数字计数器
type CounterConfig struct {
	Target    string  `yaml:"target"`
	End       float64 `yaml:"end"`
	Prefix    string  `yaml:"prefix"`
	Suffix    string  `yaml:"suffix"`
	Duration  float64 `yaml:"duration"`
	Threshold float64 `yaml:"threshold"`
	Ease      string  `yaml:"ease"`
}

// LoopConfig 循环往返动画（滚动提示弹跳）
type LoopConfig struct {
	Target   string  `yaml:"target"`
	Property string  `yaml:"property"`
	To       float64 `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
	Repeat   int     `yaml:"repeat"`
	Yoyo     bool    `yaml:"yoyo"`
}

// MagneticConfig 磁吸按钮
type MagneticConfig struct {
	Target   string  `yaml:"target"`
	Strength float64 `yaml:"strength"`
}

// Value 属性数值，支持像素数字和百分比（"20%"）
type Value struct {
	Number  float64
	Percent bool
}

// UnmarshalYAML 解析 12 / -0.5 / "20%"
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: value must be a scalar", node.Line)
	}
	s := strings.TrimSpace(node.Value)
	if strings.HasSuffix(s, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid percentage %q: %w", node.Line, s, err)
		}
		v.Number = n / 100
		v.Percent = true
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid number %q: %w", node.Line, s, err)
	}
	v.Number = n
	v.Percent = false
	return nil
}

// Prop 一个属性及其数值
type Prop struct {
	Name  string
	Value Value
}

// Props 有序属性表
// 保持 YAML 中的书写顺序（分组入场时第一个属性决定错开起点）
type Props []Prop

// UnmarshalYAML 从映射节点按顺序解析
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	out := make(Props, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var v Value
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("property %q: %w", node.Content[i].Value, err)
		}
		out = append(out, Prop{Name: node.Content[i].Value, Value: v})
	}
	*p = out
	return nil
}

// Get 按名称查找属性
func (p Props) Get(name string) (Value, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return Value{}, false
}

// Names 按顺序返回属性名
func (p Props) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// LoadPageConfig 加载页面配置
//
// 嵌入资源已初始化且包含该路径时从嵌入资源读取，否则从文件系统读取。
func LoadPageConfig(path string) (*PageConfig, error) {
	var data []byte
	var err error
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read page config %s: %w", path, err)
	}

	cfg, err := ParsePageConfig(data)
	if err != nil {
		return nil, fmt.Errorf("page config %s: %w", path, err)
	}
	return cfg, nil
}

// ParsePageConfig 解析并校验页面配置
func ParsePageConfig(data []byte) (*PageConfig, error) {
	var cfg PageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 填充省略的默认值
func (c *PageConfig) applyDefaults() {
	if c.Viewport.Width == 0 {
		c.Viewport.Width = 1280
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = 800
	}
	if c.Chrome.Document == "" {
		c.Chrome.Document = "document"
	}
	for i := range c.Groups {
		if c.Groups[i].Stagger == 0 {
			c.Groups[i].Stagger = 0.12
		}
	}
	for i := range c.Counters {
		if c.Counters[i].Threshold == 0 {
			c.Counters[i].Threshold = 0.5
		}
		if c.Counters[i].Duration == 0 {
			c.Counters[i].Duration = 2
		}
	}
}

// Validate 验证配置有效性
//
// 检查：
//   - 视口尺寸为正
//   - 布局元素名唯一、尺寸非负
//   - 所有引用的元素都在布局中
//   - 缓动名称和锚点描述可以解析
//   - 时长非负，阈值在 [0, 1]
func (c *PageConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %.0fx%.0f", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Scroll.Smoothing < 0 {
		return fmt.Errorf("scroll smoothing must be >= 0, got %.2f", c.Scroll.Smoothing)
	}

	known := make(map[string]bool, len(c.Layout))
	for i, el := range c.Layout {
		if el.Target == "" {
			return fmt.Errorf("layout[%d]: target is required", i)
		}
		if known[el.Target] {
			return fmt.Errorf("layout[%d]: duplicate target %q", i, el.Target)
		}
		if el.W < 0 || el.H < 0 {
			return fmt.Errorf("layout %q: size must be >= 0", el.Target)
		}
		known[el.Target] = true
	}
	ref := func(where, target string) error {
		if !known[target] {
			return fmt.Errorf("%s: unknown target %q", where, target)
		}
		return nil
	}

	for _, s := range c.Sections {
		if err := ref("sections", s); err != nil {
			return err
		}
	}
	for _, link := range c.Navigation {
		if err := ref("navigation "+link.Label, link.Href); err != nil {
			return err
		}
		if link.Button != "" {
			if err := ref("navigation "+link.Label, link.Button); err != nil {
				return err
			}
		}
	}
	for _, name := range []string{c.Chrome.ProgressBar, c.Chrome.Nav, c.Chrome.CursorDot, c.Chrome.CursorRing} {
		if name != "" {
			if err := ref("chrome", name); err != nil {
				return err
			}
		}
	}
	for _, ease := range []string{c.Pointer.MagnetEase, c.Pointer.ReturnEase} {
		if err := checkEase("pointer", ease); err != nil {
			return err
		}
	}

	if c.Entrance != nil {
		if c.Entrance.Delay < 0 {
			return fmt.Errorf("entrance: delay must be >= 0")
		}
		for i, step := range c.Entrance.Steps {
			where := fmt.Sprintf("entrance step %d", i)
			if err := ref(where, step.Target); err != nil {
				return err
			}
			if err := checkTween(where, step.To, step.Duration, step.Ease); err != nil {
				return err
			}
		}
	}

	for i, r := range c.Reveals {
		where := fmt.Sprintf("reveals[%d]", i)
		for _, t := range r.Targets {
			if err := ref(where, t); err != nil {
				return err
			}
		}
		if err := checkAnchor(where, r.Start); err != nil {
			return err
		}
		if err := checkTween(where, r.To, r.Duration, r.Ease); err != nil {
			return err
		}
	}

	for i, g := range c.Groups {
		where := fmt.Sprintf("groups[%d]", i)
		if err := ref(where, g.Container); err != nil {
			return err
		}
		for _, child := range g.Children {
			if err := ref(where, child); err != nil {
				return err
			}
		}
		if err := checkAnchor(where, g.Start); err != nil {
			return err
		}
		if err := checkTween(where, g.To, g.Duration, g.Ease); err != nil {
			return err
		}
		if g.Stagger < 0 {
			return fmt.Errorf("%s: stagger must be >= 0", where)
		}
	}

	for i, s := range c.Scrubs {
		where := fmt.Sprintf("scrubs[%d]", i)
		if err := ref(where, s.Target); err != nil {
			return err
		}
		if err := ref(where, s.Trigger); err != nil {
			return err
		}
		if err := checkAnchor(where, s.Start); err != nil {
			return err
		}
		if err := checkAnchor(where, s.End); err != nil {
			return err
		}
		if len(s.To) == 0 {
			return fmt.Errorf("%s: at least one property is required", where)
		}
		if err := checkEase(where, s.Ease); err != nil {
			return err
		}
	}

	for i, ctr := range c.Counters {
		where := fmt.Sprintf("counters[%d]", i)
		if err := ref(where, ctr.Target); err != nil {
			return err
		}
		if ctr.Duration < 0 {
			return fmt.Errorf("%s: duration must be >= 0", where)
		}
		if ctr.Threshold < 0 || ctr.Threshold > 1 {
			return fmt.Errorf("%s: threshold must be in [0, 1], got %.2f", where, ctr.Threshold)
		}
		if err := checkEase(where, ctr.Ease); err != nil {
			return err
		}
	}

	for i, l := range c.Loops {
		where := fmt.Sprintf("loops[%d]", i)
		if err := ref(where, l.Target); err != nil {
			return err
		}
		if l.Property == "" {
			return fmt.Errorf("%s: property is required", where)
		}
		if l.Duration <= 0 {
			return fmt.Errorf("%s: duration must be > 0", where)
		}
		if l.Repeat < -1 {
			return fmt.Errorf("%s: repeat must be >= -1", where)
		}
		if err := checkEase(where, l.Ease); err != nil {
			return err
		}
	}

	for i, m := range c.Magnetic {
		if err := ref(fmt.Sprintf("magnetic[%d]", i), m.Target); err != nil {
			return err
		}
	}
	for _, t := range c.Spotlights {
		if err := ref("spotlights", t); err != nil {
			return err
		}
	}
	for _, t := range c.Interactive {
		if err := ref("interactive", t); err != nil {
			return err
		}
	}
	return nil
}

func checkEase(where, name string) error {
	if _, err := utils.EasingByName(name); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	return nil
}

func checkAnchor(where, anchor string) error {
	if _, err := utils.ParseAnchor(anchor); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	return nil
}

func checkTween(where string, to Props, duration float64, ease string) error {
	if len(to) == 0 {
		return fmt.Errorf("%s: at least one target property is required", where)
	}
	if duration < 0 {
		return fmt.Errorf("%s: duration must be >= 0, got %.2f", where, duration)
	}
	return checkEase(where, ease)
}

// Element 按名称查找布局元素
func (c *PageConfig) Element(target string) (ElementConfig, bool) {
	for _, el := range c.Layout {
		if el.Target == target {
			return el, true
		}
	}
	return ElementConfig{}, false
}

// VariantPath 返回页面变体的配置文件路径
func VariantPath(variant string) string {
	return fmt.Sprintf("data/page_%s.yaml", variant)
}
