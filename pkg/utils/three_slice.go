package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ThreeSlice 描述一次水平三段式拉伸：左右两端保持原宽，中间段拉伸填满
type ThreeSlice struct {
	Edge         float64 // 左右两端各自的原始宽度（像素）
	MiddleScaleX float64 // 中间段的水平缩放
	ScaleY       float64 // 三段共同的垂直缩放
	Uniform      bool    // 目标比图片窄时不分段，整体缩放
	UniformX     float64 // Uniform 时的水平缩放
}

// LayoutThreeSlice 计算把 imgW×imgH 的图片拉伸到 targetW×targetH 所需的缩放参数
func LayoutThreeSlice(imgW, imgH, targetW, targetH, edge float64) ThreeSlice {
	l := ThreeSlice{Edge: edge}
	if imgH > 0 {
		l.ScaleY = targetH / imgH
	}
	if imgW <= 0 {
		return l
	}
	if targetW < imgW || imgW <= edge*2 {
		l.Uniform = true
		l.UniformX = targetW / imgW
		return l
	}
	l.MiddleScaleX = (targetW - edge*2) / (imgW - edge*2)
	return l
}

// DrawThreeSlice 把边框图片水平拉伸绘制到 (x, y, w, h)
// edge 为左右两端不拉伸的宽度
func DrawThreeSlice(screen, img *ebiten.Image, x, y, w, h, edge float64) {
	if img == nil {
		return
	}
	b := img.Bounds()
	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	l := LayoutThreeSlice(imgW, imgH, w, h, edge)

	if l.Uniform {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(l.UniformX, l.ScaleY)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
		return
	}

	e := int(edge)
	parts := []struct {
		rect   image.Rectangle
		scaleX float64
		dx     float64
	}{
		{image.Rect(b.Min.X, b.Min.Y, b.Min.X+e, b.Max.Y), 1, 0},
		{image.Rect(b.Min.X+e, b.Min.Y, b.Max.X-e, b.Max.Y), l.MiddleScaleX, edge},
		{image.Rect(b.Max.X-e, b.Min.Y, b.Max.X, b.Max.Y), 1, w - edge},
	}
	for _, p := range parts {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(p.scaleX, l.ScaleY)
		op.GeoM.Translate(x+p.dx, y)
		screen.DrawImage(img.SubImage(p.rect).(*ebiten.Image), op)
	}
}
