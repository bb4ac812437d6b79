// Package utils 提供渲染、测量和指针输入相关的工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查本帧是否刚刚发生点击或触摸
// 返回是否点击以及点击位置，触摸优先于鼠标
func IsJustTouchedOrClicked() (bool, int, int) {
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerPosition 获取当前指针位置（有触摸时返回触摸位置，否则返回鼠标位置）
func GetPointerPosition() (int, int) {
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// PointInRect 判断点 (px, py) 是否落在矩形 [x, x+w) × [y, y+h) 内
func PointInRect(px, py, x, y, w, h float64) bool {
	return px >= x && px < x+w && py >= y && py < y+h
}
