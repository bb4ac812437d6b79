package utils

import (
	"bytes"
	"errors"
	"testing"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func multilineFilters() textedit.Filters {
	f := textedit.DefaultFilters()
	f.Newline = true
	return f
}

func newGoRegularFace(t *testing.T) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("NewGoTextFaceSource() error = %v", err)
	}
	return &text.GoTextFace{Source: src, Size: 16}
}

func TestFaceOracle_NoFace(t *testing.T) {
	buf := textedit.NewBuffer(textedit.DefaultFilters(), 0)
	buf.SetText("abc")

	var nilOracle *FaceOracle
	for _, o := range []*FaceOracle{nilOracle, {Buffer: buf}} {
		_, err := o.XPositionOf(1)
		if !errors.Is(err, ErrNoFace) {
			t.Errorf("XPositionOf() error = %v, want ErrNoFace", err)
		}
		if !errors.Is(err, textedit.ErrNotLaidOut) {
			t.Errorf("ErrNoFace does not wrap ErrNotLaidOut")
		}
	}
}

func TestFaceOracle_Positions(t *testing.T) {
	buf := textedit.NewBuffer(multilineFilters(), 0)
	buf.SetText("Hello\r\nWorld")
	o := &FaceOracle{Face: newGoRegularFace(t), Buffer: buf}

	// 每行行首为 0，行内单调递增
	for _, start := range []int{0, 7} {
		x, err := o.XPositionOf(start)
		if err != nil || x != 0 {
			t.Errorf("XPositionOf(%d) = %v, %v, want 0", start, x, err)
		}
	}
	prev := 0.0
	for i := 1; i <= 5; i++ {
		x, err := o.XPositionOf(i)
		if err != nil {
			t.Fatalf("XPositionOf(%d) error = %v", i, err)
		}
		if x <= prev {
			t.Errorf("XPositionOf(%d) = %v, not greater than %v", i, x, prev)
		}
		prev = x
	}

	if _, err := o.XPositionOf(99); err == nil {
		t.Error("XPositionOf(99) error = nil, want out of range")
	}
}

func TestFaceOracle_DrivesVerticalNavigation(t *testing.T) {
	e := textedit.NewEditor(textedit.EditorOptions{
		Filters: multilineFilters(),
		Text:    "WWWWWW\r\niiiiiiii",
	})
	o := &FaceOracle{Face: newGoRegularFace(t), Buffer: e.Buffer()}
	e.SetOracle(o)

	target, _ := o.XPositionOf(e.CaretIndex())
	if !e.Apply(textedit.Key(textedit.IntentUp)) {
		t.Fatal("Up did not move the caret")
	}

	idx := e.CaretIndex()
	if line, _ := e.CaretLineColumn(); line != 0 {
		t.Fatalf("caret on line %d after Up, want 0", line)
	}
	x, _ := o.XPositionOf(idx)
	if x < target && idx != 6 {
		t.Errorf("caret x %v < target %v before line end", x, target)
	}
	if idx > 0 {
		if px, _ := o.XPositionOf(idx - 1); px >= target {
			t.Errorf("index %d is not the first with x >= %v", idx, target)
		}
	}
}

func TestMonospaceOracle(t *testing.T) {
	buf := textedit.NewBuffer(multilineFilters(), 0)
	buf.SetText("a中b\r\ne\u0301x")

	tests := []struct {
		cell  float64
		index int
		want  float64
	}{
		{0, 0, 0},
		{0, 1, 1},
		{0, 2, 3},
		{0, 3, 4},
		{8, 3, 32},
		{0, 5, 0},
		{0, 7, 1}, // 组合字符不占格
		{0, 8, 2},
	}

	for _, tt := range tests {
		o := &MonospaceOracle{Buffer: buf, CellWidth: tt.cell}
		got, err := o.XPositionOf(tt.index)
		if err != nil {
			t.Fatalf("XPositionOf(%d) error = %v", tt.index, err)
		}
		if got != tt.want {
			t.Errorf("cell %v: XPositionOf(%d) = %v, want %v", tt.cell, tt.index, got, tt.want)
		}
	}

	if _, err := (&MonospaceOracle{}).XPositionOf(0); !errors.Is(err, textedit.ErrNotLaidOut) {
		t.Errorf("no buffer: error = %v, want ErrNotLaidOut", err)
	}
}

func TestBitmapFontOracle(t *testing.T) {
	bf, err := ParseBitmapFont(nil, []byte(testFontMeta))
	if err != nil {
		t.Fatalf("ParseBitmapFont() error = %v", err)
	}
	buf := textedit.NewBuffer(multilineFilters(), 0)
	buf.SetText("ab\r\nWa")
	o := &BitmapFontOracle{Font: bf, Buffer: buf}

	for index, want := range map[int]float64{0: 0, 1: 6, 2: 13, 4: 0, 5: 12, 6: 18} {
		got, err := o.XPositionOf(index)
		if err != nil || got != want {
			t.Errorf("XPositionOf(%d) = %v, %v, want %v", index, got, err, want)
		}
	}

	if _, err := (&BitmapFontOracle{Buffer: buf}).XPositionOf(0); !errors.Is(err, ErrNoFace) {
		t.Errorf("no font: error = %v, want ErrNoFace", err)
	}
}
