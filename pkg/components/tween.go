package components

import (
	"github.com/gonewx/scrollstage/pkg/utils"
	"github.com/gonewx/scrollstage/pkg/visual"
)

// TweenComponent 补间组件
// 描述单个样式属性随时间的插值：value = From + (To-From) * Easing(Elapsed/Duration)
// 注意：遵循 ECS 原则，组件仅存储数据，插值逻辑在 TweenSystem 中
//
// 约束：同一 (Target, Property) 同一时刻最多一个存活的补间。
// 新补间会取消旧补间，并以旧补间的当前值（Current）作为 From。
type TweenComponent struct {
	// Target 被修改的元素
	Target visual.Target

	// Property 样式属性名（如 "opacity"、"y"）
	Property string

	// From 起始值
	From float64

	// To 目标值
	To float64

	// Duration 时长（秒），>= 0
	Duration float64

	// Easing 缓动函数，nil 视为线性
	Easing utils.Easing

	// Elapsed 已播放时间（秒）
	Elapsed float64

	// Current 最近一次写入的插值结果
	// 被重新定向时作为新补间的 From，避免视觉跳变
	Current float64

	// Repeat 额外重复次数，-1 表示无限循环
	Repeat int

	// Yoyo 为 true 时每次重复反向播放（往返）
	Yoyo bool

	// TextProperty 非空时，每次写入还会把 Format(value) 作为文本写入该属性
	// 用于数字计数器
	TextProperty string

	// Format 数值到文本的格式化函数
	Format func(value float64) string

	// Fresh 本帧刚创建：首次更新只写入当前值，不推进时间
	Fresh bool

	// IsCompleted 是否已完成（完成后实体在帧末被清理）
	IsCompleted bool

	// IsCancelled 是否被同属性的新补间取代
	IsCancelled bool
}
