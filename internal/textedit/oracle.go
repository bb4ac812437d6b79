package textedit

import "errors"

// ErrNotLaidOut is returned by oracles that have no font or layout yet.
var ErrNotLaidOut = errors.New("textedit: text not laid out")

// GlyphOracle maps buffer indices to horizontal caret coordinates. It is
// supplied by the rendering layer and must reflect the current font, style
// and scale.
//
// XPositionOf returns the x coordinate of a caret placed before the rune at
// index, measured from the left edge of that rune's visual line. Index may be
// Len(), meaning the end of the last line. Caret navigation calls it once per
// candidate rune of a line, so it must be cheap and free of side effects.
type GlyphOracle interface {
	XPositionOf(index int) (float64, error)
}

// OracleFunc adapts a function to GlyphOracle.
type OracleFunc func(index int) (float64, error)

// XPositionOf calls f(index).
func (f OracleFunc) XPositionOf(index int) (float64, error) {
	return f(index)
}
