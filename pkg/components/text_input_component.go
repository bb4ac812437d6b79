package components

import (
	"github.com/decker502/textkit/internal/textedit"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween"
)

// TextInputComponent 文本输入框组件
//
// 文本内容和光标都由 Editor 持有，组件只保存显示和交互状态。
// Editor 与组件同生共死：创建组件时创建，销毁实体时一起丢弃。
type TextInputComponent struct {
	Editor *textedit.Editor

	// 输入框样式
	BorderImage *ebiten.Image // 边框图片（三段式水平拉伸）
	Width       float64       // 输入框宽度（像素）
	Height      float64       // 输入框高度（像素）
	LineHeight  float64       // 行高（像素），0 表示按字号推算
	Face        text.Face     // 字体，nil 时使用渲染系统的默认字体

	// 内边距
	PaddingLeft   float64
	PaddingRight  float64
	PaddingTop    float64
	PaddingBottom float64

	Placeholder string // 内容为空时显示
	Multiline   bool   // 回车插入换行，否则触发 OnSubmit

	// 焦点状态
	IsFocused bool

	// 光标闪烁
	CursorVisible bool
	CursorAlpha   float64      // 当前透明度 0~1，由 BlinkTween 驱动
	BlinkTween    *gween.Tween // 为 nil 时表示需要重新开始一轮

	// 长文本滚动
	TextOffsetX float64 // 单行：文本水平偏移（像素）
	ScrollY     float64 // 多行：首个可见行之前的像素高度

	// OnSubmit 单行输入框按下回车时调用
	OnSubmit func(text string)

	// ConfigID 创建该输入框所用的预设 ID（见 config.TextInputConfig）
	ConfigID string
}

// ContentRect 返回去掉内边距后的文本区域（相对于组件左上角）
func (c *TextInputComponent) ContentRect() (x, y, w, h float64) {
	x = c.PaddingLeft
	y = c.PaddingTop
	w = c.Width - c.PaddingLeft - c.PaddingRight
	h = c.Height - c.PaddingTop - c.PaddingBottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return x, y, w, h
}

// RestartBlink 让光标立即可见并从头开始闪烁（编辑或移动光标后调用）
func (c *TextInputComponent) RestartBlink() {
	c.CursorVisible = true
	c.CursorAlpha = 1
	c.BlinkTween = nil
}
