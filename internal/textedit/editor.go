package textedit

import "strings"

// EditorOptions configures a new Editor.
type EditorOptions struct {
	Filters   Filters
	MaxLength int
	Text      string
	Oracle    GlyphOracle
}

// Editor pairs a Buffer with its Caret. It is the surface a text-input widget
// talks to: one Editor per widget, created and dropped with it.
type Editor struct {
	buf   *Buffer
	caret *Caret

	// OnChange, if set, is called with the new content after every change to
	// the text (edits, SetText, filter or length changes that alter it).
	OnChange func(text string)
}

// NewEditor creates an editor. The initial text goes through SetText, so it
// is normalised and clamped, and the caret starts at its end.
func NewEditor(opts EditorOptions) *Editor {
	buf := NewBuffer(opts.Filters, opts.MaxLength)
	e := &Editor{
		buf:   buf,
		caret: NewCaret(buf, opts.Oracle),
	}
	if opts.Text != "" {
		buf.SetText(opts.Text)
		e.caret.SetPosition(buf.Len())
	}
	return e
}

// Buffer exposes the underlying buffer for read access by renderers and
// oracles. Mutating it directly requires a Caret().Resync() afterwards.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Caret exposes the caret.
func (e *Editor) Caret() *Caret { return e.caret }

// Text returns the content.
func (e *Editor) Text() string { return e.buf.Text() }

// Len returns the content length in runes.
func (e *Editor) Len() int { return e.buf.Len() }

// SetText replaces the content and moves the caret to its end.
func (e *Editor) SetText(s string) {
	old := e.buf.Text()
	e.buf.SetText(s)
	e.caret.SetPosition(e.buf.Len())
	e.notify(old)
}

// Reset clears the content and moves the caret to 0.
func (e *Editor) Reset() {
	old := e.buf.Text()
	e.buf.Clear()
	e.caret.SetPosition(0)
	e.notify(old)
}

// CaretIndex returns the caret position.
func (e *Editor) CaretIndex() int { return e.caret.Position() }

// SetCaretIndex moves the caret, clamped and snapped out of line breaks.
func (e *Editor) SetCaretIndex(i int) { e.caret.SetPosition(i) }

// Filters returns the active character filters.
func (e *Editor) Filters() Filters { return e.buf.Filters() }

// SetFilters replaces the filters. When newlines become disallowed each pair
// before the caret shrinks to one space, so the caret shifts back with it.
func (e *Editor) SetFilters(f Filters) {
	old := e.buf.Text()
	pos := e.caret.Position()
	if !f.Newline {
		pos -= strings.Count(e.buf.Slice(0, pos), "\r\n")
	}
	e.buf.SetFilters(f)
	e.caret.SetPosition(pos)
	e.notify(old)
}

// MaxLength returns the length limit, 0 meaning unbounded.
func (e *Editor) MaxLength() int { return e.buf.MaxLength() }

// SetMaxLength changes the length limit, truncating content if needed.
func (e *Editor) SetMaxLength(n int) {
	old := e.buf.Text()
	e.buf.SetMaxLength(n)
	e.caret.Resync()
	e.notify(old)
}

// SetOracle replaces the glyph oracle used for Up and Down.
func (e *Editor) SetOracle(o GlyphOracle) { e.caret.SetOracle(o) }

// Apply dispatches one intent to the caret.
func (e *Editor) Apply(in Intent) bool {
	changed := e.caret.Apply(in)
	if changed && e.OnChange != nil && editsContent(in.Kind) {
		e.OnChange(e.buf.Text())
	}
	return changed
}

// ApplyAll dispatches intents in order and reports whether any of them
// changed state.
func (e *Editor) ApplyAll(ins []Intent) bool {
	changed := false
	for _, in := range ins {
		if e.Apply(in) {
			changed = true
		}
	}
	return changed
}

// CaretLineColumn returns the zero-based visual line of the caret and its
// rune offset from the start of that line.
func (e *Editor) CaretLineColumn() (line, col int) {
	pos := e.caret.Position()
	line = strings.Count(e.buf.Slice(0, pos), "\n")
	col = pos - e.buf.LineStart(pos)
	return line, col
}

// Lines splits the content into visual lines without their line breaks.
func (e *Editor) Lines() []string {
	return strings.Split(e.buf.Text(), "\r\n")
}

func (e *Editor) notify(old string) {
	if e.OnChange == nil {
		return
	}
	if cur := e.buf.Text(); cur != old {
		e.OnChange(cur)
	}
}

func editsContent(k IntentKind) bool {
	switch k {
	case IntentInsert, IntentNewline, IntentBackspace, IntentDelete:
		return true
	}
	return false
}
