package systems

import (
	"github.com/gonewx/scrollstage/pkg/visual"
)

// NavScrolledThreshold 导航栏进入"已滚动"状态的偏移（像素）
const NavScrolledThreshold = 60.0

// ProgressSystem 阅读进度与页面级滚动样式
//
// 每帧写入：
//   - 进度条 scaleX = virtual / limit（页面不可滚动时为 0）
//   - 导航栏 scrolled = virtual > 60 ? 1 : 0
//   - 文档 scrollTop = virtual（渲染宿主据此平移整个页面）
type ProgressSystem struct {
	scroll *ScrollState
	sink   visual.Sink

	// Bar 进度条元素，可为空
	Bar visual.Target
	// Nav 导航栏元素，可为空
	Nav visual.Target
	// Document 文档根元素
	Document visual.Target

	progress float64
}

// NewProgressSystem 创建阅读进度系统
func NewProgressSystem(scroll *ScrollState, sink visual.Sink, document, bar, nav visual.Target) *ProgressSystem {
	return &ProgressSystem{
		scroll:   scroll,
		sink:     sink,
		Document: document,
		Bar:      bar,
		Nav:      nav,
	}
}

// Progress 最近一帧的阅读进度 [0, 1]
func (s *ProgressSystem) Progress() float64 {
	return s.progress
}

// Update 写入本帧的页面级样式
func (s *ProgressSystem) Update(deltaTime float64) {
	offset := s.scroll.Virtual()
	s.progress = ReadingProgress(offset, s.scroll.Limit())

	if s.Document != "" {
		s.sink.SetNumber(s.Document, visual.PropScroll, offset)
	}
	if s.Bar != "" {
		s.sink.SetNumber(s.Bar, visual.PropScaleX, s.progress)
	}
	if s.Nav != "" {
		flag := 0.0
		if offset > NavScrolledThreshold {
			flag = 1
		}
		s.sink.SetNumber(s.Nav, visual.PropFlag, flag)
	}
}

// ReadingProgress 计算阅读进度 offset / limit，限制在 [0, 1]
func ReadingProgress(offset, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	p := offset / limit
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
