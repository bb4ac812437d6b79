package systems

import (
	"image"
	"image/color"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/decker502/textkit/pkg/components"
	"github.com/decker502/textkit/pkg/ecs"
	"github.com/decker502/textkit/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	borderEdgeWidth = 10.0 // 边框图片左右不拉伸的宽度
	cursorWidth     = 2.0
)

// TextInputRenderSystem 文本输入框渲染系统
// 负责绘制输入框边框、文本、占位符和光标，并让光标所在位置保持可见
type TextInputRenderSystem struct {
	entityManager *ecs.EntityManager
	face          text.Face
	oracles       map[ecs.EntityID]*utils.FaceOracle
	pixel         *ebiten.Image

	TextColor        color.Color
	PlaceholderColor color.Color
	CursorColor      color.Color
}

// NewTextInputRenderSystem 创建文本输入框渲染系统
func NewTextInputRenderSystem(em *ecs.EntityManager, face text.Face) *TextInputRenderSystem {
	return &TextInputRenderSystem{
		entityManager:    em,
		face:             face,
		oracles:          make(map[ecs.EntityID]*utils.FaceOracle),
		TextColor:        color.RGBA{0, 200, 0, 255},
		PlaceholderColor: color.RGBA{150, 150, 150, 255},
		CursorColor:      color.White,
	}
}

// FaceFor 返回输入框使用的字体：组件自带字体优先，否则为系统默认字体
func (s *TextInputRenderSystem) FaceFor(input *components.TextInputComponent) text.Face {
	if input.Face != nil {
		return input.Face
	}
	return s.face
}

// OracleFor 返回绑定到该输入框 Editor 和字体的字形位置查询器
func (s *TextInputRenderSystem) OracleFor(input *components.TextInputComponent) textedit.GlyphOracle {
	return &utils.FaceOracle{Face: s.FaceFor(input), Buffer: input.Editor.Buffer()}
}

// BindOracles 为尚未绑定的输入框设置字形位置查询器
// 绑定之前光标上下移动不生效（文本还没有排版）
func (s *TextInputRenderSystem) BindOracles() {
	entities := ecs.GetEntitiesWith1[*components.TextInputComponent](s.entityManager)
	alive := make(map[ecs.EntityID]bool, len(entities))
	for _, id := range entities {
		alive[id] = true
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		if input.Editor == nil {
			continue
		}
		if o, ok := s.oracles[id]; ok && o.Buffer == input.Editor.Buffer() && o.Face == s.FaceFor(input) {
			continue
		}
		o := s.OracleFor(input).(*utils.FaceOracle)
		s.oracles[id] = o
		input.Editor.SetOracle(o)
	}
	for id := range s.oracles {
		if !alive[id] {
			delete(s.oracles, id)
		}
	}
}

// Draw 绘制所有文本输入框
func (s *TextInputRenderSystem) Draw(screen *ebiten.Image) {
	s.BindOracles()

	entities := ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager)
	for _, id := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		s.DrawInputBox(screen, input, pos)
	}
}

// DrawInputBox 绘制单个输入框
func (s *TextInputRenderSystem) DrawInputBox(screen *ebiten.Image, input *components.TextInputComponent, pos *components.PositionComponent) {
	if input.BorderImage != nil {
		utils.DrawThreeSlice(screen, input.BorderImage, pos.X, pos.Y, input.Width, input.Height, borderEdgeWidth)
	}
	face := s.FaceFor(input)
	if face == nil || input.Editor == nil {
		return
	}

	rx, ry, rw, rh := input.ContentRect()
	x, y := pos.X+rx, pos.Y+ry
	clip := image.Rect(int(x), int(y), int(x+rw), int(y+rh))
	if clip.Empty() {
		return
	}
	dst := screen.SubImage(clip).(*ebiten.Image)

	lh := s.lineHeight(input)
	editor := input.Editor
	line, _ := editor.CaretLineColumn()
	caretX, err := s.OracleFor(input).XPositionOf(editor.CaretIndex())
	if err != nil {
		caretX = 0
	}

	// 第一行的顶部
	top := y
	if input.Multiline {
		input.ScrollY = scrollToCaret(float64(line)*lh, lh, rh, input.ScrollY)
		top -= input.ScrollY
	} else {
		input.TextOffsetX = offsetToCaret(caretX, rw, input.TextOffsetX)
		top += (rh - lh) / 2
	}
	left := x + input.TextOffsetX

	if editor.Len() == 0 {
		if input.Placeholder != "" && !input.IsFocused {
			s.drawText(dst, face, input.Placeholder, x, top, s.PlaceholderColor)
		}
	} else {
		for i, l := range editor.Lines() {
			ly := top + float64(i)*lh
			if ly+lh < y || ly > y+rh {
				continue
			}
			s.drawText(dst, face, l, left, ly, s.TextColor)
		}
	}

	if input.IsFocused && input.CursorVisible {
		s.drawCursor(dst, left+caretX, top+float64(line)*lh, lh, input.CursorAlpha)
	}
}

// lineHeight 返回行高：优先使用组件设置，否则取字体度量
func (s *TextInputRenderSystem) lineHeight(input *components.TextInputComponent) float64 {
	if input.LineHeight > 0 {
		return input.LineHeight
	}
	m := s.FaceFor(input).Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

func (s *TextInputRenderSystem) drawText(dst *ebiten.Image, face text.Face, str string, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignStart
	op.SecondaryAlign = text.AlignStart
	text.Draw(dst, str, face, op)
}

func (s *TextInputRenderSystem) drawCursor(dst *ebiten.Image, x, y, h, alpha float64) {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cursorWidth, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(s.CursorColor)
	op.ColorScale.ScaleAlpha(float32(alpha))
	dst.DrawImage(s.pixel, op)
}

// scrollToCaret 调整垂直滚动量，使从 caretTop 开始、高 lineHeight 的光标行完整可见
func scrollToCaret(caretTop, lineHeight, viewHeight, scroll float64) float64 {
	if caretTop < scroll {
		return caretTop
	}
	if caretTop+lineHeight > scroll+viewHeight {
		s := caretTop + lineHeight - viewHeight
		if s < 0 {
			return 0
		}
		return s
	}
	return scroll
}

// offsetToCaret 调整单行文本的水平偏移（<= 0），使光标落在 [0, viewWidth-cursorWidth] 内
func offsetToCaret(caretX, viewWidth, offset float64) float64 {
	if caretX+offset < 0 {
		return -caretX
	}
	if limit := viewWidth - cursorWidth; caretX+offset > limit {
		if limit-caretX > 0 {
			return 0
		}
		return limit - caretX
	}
	return offset
}
