package textedit

// Caret is the insertion point of a Buffer. It translates edit and navigation
// intents into buffer mutations and keeps its position on a unit boundary:
// never inside a CR LF pair, always within [0, Len()].
//
// All operations report whether anything changed. Rejected input and
// navigation past the edges are silent no-ops.
type Caret struct {
	buf    *Buffer
	pos    int
	oracle GlyphOracle
}

// NewCaret creates a caret at index 0. The oracle may be nil, in which case
// Up and Down do nothing until SetOracle is called.
func NewCaret(buf *Buffer, oracle GlyphOracle) *Caret {
	return &Caret{buf: buf, oracle: oracle}
}

// Position returns the caret index.
func (c *Caret) Position() int {
	return c.pos
}

// SetPosition moves the caret, clamping to the content and snapping an index
// inside a pair to the index before its CR.
func (c *Caret) SetPosition(i int) {
	c.pos = c.snap(i)
}

// SetOracle replaces the glyph oracle used by vertical navigation.
func (c *Caret) SetOracle(o GlyphOracle) {
	c.oracle = o
}

// Resync re-validates the position after the buffer was changed directly.
func (c *Caret) Resync() {
	c.pos = c.snap(c.pos)
}

// InsertChar inserts r at the caret and advances past it.
func (c *Caret) InsertChar(r rune) bool {
	if !c.buf.InsertAt(c.pos, r) {
		return false
	}
	c.pos = c.snap(c.pos + 1)
	return true
}

// InsertNewline inserts a line break at the caret and advances past it.
func (c *Caret) InsertNewline() bool {
	if !c.buf.InsertNewlineAt(c.pos) {
		return false
	}
	c.pos = c.snap(c.pos + 2)
	return true
}

// Backspace deletes the unit before the caret.
func (c *Caret) Backspace() bool {
	if c.pos == 0 {
		return false
	}
	n := c.buf.DeleteBackward(c.pos)
	c.pos = c.snap(c.pos - n)
	return n > 0
}

// Delete deletes the unit after the caret. The caret does not move.
func (c *Caret) Delete() bool {
	if c.pos >= c.buf.Len() {
		return false
	}
	return c.buf.DeleteForward(c.pos) > 0
}

// Left moves one unit back, stepping over a line break in one move.
func (c *Caret) Left() bool {
	if c.pos == 0 {
		return false
	}
	c.pos--
	if c.buf.InsidePair(c.pos) {
		c.pos--
	}
	return true
}

// Right moves one unit forward, stepping over a line break in one move.
func (c *Caret) Right() bool {
	if c.pos >= c.buf.Len() {
		return false
	}
	c.pos++
	if c.buf.InsidePair(c.pos) {
		c.pos++
	}
	return true
}

// Home moves to the start of the current line.
func (c *Caret) Home() bool {
	return c.moveTo(c.buf.LineStart(c.pos))
}

// End moves to the end of the current line, just before its line break.
func (c *Caret) End() bool {
	return c.moveTo(c.buf.LineEnd(c.pos))
}

// Up moves to the previous line, to the first index whose x coordinate is at
// or past the caret's current x. When the previous line is too short the
// caret lands at its end.
//
// It does nothing on an empty buffer, on the first line, without an oracle,
// or when the oracle fails.
func (c *Caret) Up() bool {
	if c.oracle == nil || c.buf.Len() == 0 {
		return false
	}
	start := c.buf.LineStart(c.pos)
	if start == 0 {
		return false
	}
	target, err := c.oracle.XPositionOf(c.pos)
	if err != nil {
		return false
	}

	prevEnd := start - 1
	if c.buf.RuneAt(prevEnd-1) == cr {
		prevEnd--
	}
	prevStart := c.buf.LineStart(prevEnd)

	dest := prevEnd
	for i := prevStart; i <= prevEnd; i++ {
		x, err := c.oracle.XPositionOf(i)
		if err != nil {
			return false
		}
		if x >= target {
			dest = i
			break
		}
	}
	return c.moveTo(dest)
}

// Down moves to the next line, to the last index whose x coordinate does not
// pass the caret's current x. Runes sharing the same x resolve to the first
// of them. When the target x lies left of every candidate the caret lands at
// the line start.
//
// It does nothing on an empty buffer, on the last line, without an oracle, or
// when the oracle fails.
func (c *Caret) Down() bool {
	if c.oracle == nil || c.buf.Len() == 0 {
		return false
	}
	end := c.buf.LineEnd(c.pos)
	if end == c.buf.Len() {
		return false
	}
	target, err := c.oracle.XPositionOf(c.pos)
	if err != nil {
		return false
	}

	nextStart := end + 1
	if c.buf.IsPairAt(end) {
		nextStart = end + 2
	}
	nextEnd := c.buf.LineEnd(nextStart)

	dest := nextStart
	bestX := 0.0
	for i := nextStart; i <= nextEnd; i++ {
		x, err := c.oracle.XPositionOf(i)
		if err != nil {
			return false
		}
		if x > target {
			break
		}
		if i == nextStart || x > bestX {
			dest = i
			bestX = x
		}
	}
	return c.moveTo(dest)
}

func (c *Caret) moveTo(i int) bool {
	i = c.snap(i)
	if i == c.pos {
		return false
	}
	c.pos = i
	return true
}

func (c *Caret) snap(i int) int {
	i = clamp(i, 0, c.buf.Len())
	if c.buf.InsidePair(i) {
		i--
	}
	return i
}
