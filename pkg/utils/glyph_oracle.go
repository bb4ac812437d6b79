package utils

import (
	"fmt"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rivo/uniseg"
)

// ErrNoFace 表示输入框还没有绑定字体，无法给出字形位置
var ErrNoFace = fmt.Errorf("no font face bound: %w", textedit.ErrNotLaidOut)

// 编译期检查
var (
	_ textedit.GlyphOracle = (*FaceOracle)(nil)
	_ textedit.GlyphOracle = (*MonospaceOracle)(nil)
	_ textedit.GlyphOracle = (*BitmapFontOracle)(nil)
)

// linePrefix 返回 index 所在行从行首到 index 的文本
func linePrefix(buf *textedit.Buffer, index int) (string, error) {
	if index < 0 || index > buf.Len() {
		return "", fmt.Errorf("index %d out of range [0, %d]", index, buf.Len())
	}
	return buf.Slice(buf.LineStart(index), index), nil
}

// FaceOracle 用 text/v2 字体测量字形位置
//
// X 坐标是行首文本的前进宽度，与 text.Draw 绘制同一行时的光标位置一致。
type FaceOracle struct {
	Face   text.Face
	Buffer *textedit.Buffer
}

// XPositionOf 实现 textedit.GlyphOracle
func (o *FaceOracle) XPositionOf(index int) (float64, error) {
	if o == nil || o.Face == nil || o.Buffer == nil {
		return 0, ErrNoFace
	}
	prefix, err := linePrefix(o.Buffer, index)
	if err != nil {
		return 0, err
	}
	if prefix == "" {
		return 0, nil
	}
	return text.Advance(prefix, o.Face), nil
}

// MonospaceOracle 按字符单元格计算位置，东亚宽字符占两格，组合字符不占格
// 用于终端之类的等宽环境
type MonospaceOracle struct {
	Buffer    *textedit.Buffer
	CellWidth float64 // 单元格宽度，<= 0 时按 1 计算（即以格为单位）
}

// XPositionOf 实现 textedit.GlyphOracle
func (o *MonospaceOracle) XPositionOf(index int) (float64, error) {
	if o == nil || o.Buffer == nil {
		return 0, textedit.ErrNotLaidOut
	}
	prefix, err := linePrefix(o.Buffer, index)
	if err != nil {
		return 0, err
	}
	cell := o.CellWidth
	if cell <= 0 {
		cell = 1
	}
	return float64(uniseg.StringWidth(prefix)) * cell, nil
}

// BitmapFontOracle 用位图字体的字符宽度计算位置
type BitmapFontOracle struct {
	Font   *BitmapFont
	Buffer *textedit.Buffer
}

// XPositionOf 实现 textedit.GlyphOracle
func (o *BitmapFontOracle) XPositionOf(index int) (float64, error) {
	if o == nil || o.Font == nil || o.Buffer == nil {
		return 0, ErrNoFace
	}
	prefix, err := linePrefix(o.Buffer, index)
	if err != nil {
		return 0, err
	}
	return float64(o.Font.MeasureText(prefix)), nil
}
