package textedit

import "fmt"

// Buffer holds filtered, length-bounded text. Line breaks are stored only as
// the two-rune pair CR LF; a bare CR or LF never appears in the content.
//
// Indices are rune offsets in [0, Len()]. An index that falls between the CR
// and LF of a pair is treated as the index before the CR.
type Buffer struct {
	content   []rune
	maxLength int
	filters   Filters
}

// NewBuffer creates an empty buffer.
//
// Parameters:
//   - filters: accepted character classes
//   - maxLength: maximum content length in runes, 0 for unbounded
func NewBuffer(filters Filters, maxLength int) *Buffer {
	if maxLength < 0 {
		maxLength = 0
	}
	return &Buffer{
		filters:   filters,
		maxLength: maxLength,
	}
}

// Len returns the content length in runes. A line break counts as 2.
func (b *Buffer) Len() int {
	return len(b.content)
}

// Text returns the content as a string.
func (b *Buffer) Text() string {
	return string(b.content)
}

// Slice returns the content between from and to as a string. Out of range
// bounds are clamped.
func (b *Buffer) Slice(from, to int) string {
	from = clamp(from, 0, len(b.content))
	to = clamp(to, from, len(b.content))
	return string(b.content[from:to])
}

// RuneAt returns the rune at i, or 0 when i is out of range.
func (b *Buffer) RuneAt(i int) rune {
	if i < 0 || i >= len(b.content) {
		return 0
	}
	return b.content[i]
}

// MaxLength returns the length limit, 0 meaning unbounded.
func (b *Buffer) MaxLength() int {
	return b.maxLength
}

// SetMaxLength changes the length limit. Existing content longer than the new
// limit is truncated without splitting a line break.
func (b *Buffer) SetMaxLength(n int) {
	if n < 0 {
		n = 0
	}
	b.maxLength = n
	b.content = b.truncate(b.content)
}

// Filters returns the active character filters.
func (b *Buffer) Filters() Filters {
	return b.filters
}

// SetFilters replaces the character filters. Disallowing newlines collapses
// every CR LF pair in the content to a single space. Other classes only
// affect future input; existing content is kept.
func (b *Buffer) SetFilters(f Filters) {
	b.filters = f
	if !f.Newline {
		b.content = collapsePairs(b.content)
	}
}

// SetText replaces the content. CR LF, bare CR and bare LF each count as one
// line break: with newlines allowed every break is stored as CR LF, otherwise
// it becomes one space. The result is truncated to MaxLength. Character class
// filters are not applied.
func (b *Buffer) SetText(s string) {
	src := []rune(s)
	out := make([]rune, 0, len(src))
	for i := 0; i < len(src); i++ {
		r := src[i]
		if r != cr && r != lf {
			out = append(out, r)
			continue
		}
		if r == cr && i+1 < len(src) && src[i+1] == lf {
			i++
		}
		if b.filters.Newline {
			out = append(out, cr, lf)
		} else {
			out = append(out, ' ')
		}
	}
	b.content = b.truncate(out)
}

// Clear removes all content.
func (b *Buffer) Clear() {
	b.content = b.content[:0]
}

// CanAccept reports whether r may be inserted: the length limit leaves room for
// one more rune and the active filters allow its class.
//
// Special cases:
//   - CR and LF are never accepted here; use InsertNewlineAt.
//   - A space is rejected while the buffer is empty (no leading space).
//   - With Numbers on and Punctuation off, a single '.' is accepted as a
//     decimal point as long as the content has none yet.
func (b *Buffer) CanAccept(r rune) bool {
	if b.maxLength > 0 && len(b.content)+1 > b.maxLength {
		return false
	}

	f := b.filters
	switch classify(r) {
	case classLetter:
		return f.Letters
	case classDigit:
		return f.Numbers
	case classSymbol:
		return f.Symbols
	case classPunct:
		if r == '.' && f.Numbers && !f.Punctuation {
			return !b.contains('.')
		}
		return f.Punctuation
	case classSpace:
		return f.Space && len(b.content) > 0
	default:
		return false
	}
}

// InsertAt inserts r at index i if CanAccept allows it.
//
// Returns:
//   - bool: true if the content changed
func (b *Buffer) InsertAt(i int, r rune) bool {
	if !b.CanAccept(r) {
		return false
	}
	i = b.index(i)
	b.content = append(b.content, 0)
	copy(b.content[i+1:], b.content[i:])
	b.content[i] = r
	return true
}

// InsertNewlineAt inserts a CR LF pair at i. It is a no-op returning false when
// newlines are disallowed or the pair would exceed MaxLength.
func (b *Buffer) InsertNewlineAt(i int) bool {
	if !b.filters.Newline {
		return false
	}
	if b.maxLength > 0 && len(b.content)+2 > b.maxLength {
		return false
	}
	i = b.index(i)
	b.content = append(b.content, 0, 0)
	copy(b.content[i+2:], b.content[i:])
	b.content[i] = cr
	b.content[i+1] = lf
	return true
}

// DeleteBackward removes the unit ending at i: both runes when they form a
// CR LF pair, one rune otherwise.
//
// Returns:
//   - int: number of runes removed (0, 1 or 2)
func (b *Buffer) DeleteBackward(i int) int {
	i = b.index(i)
	if i == 0 {
		return 0
	}
	n := 1
	if i >= 2 && b.content[i-2] == cr && b.content[i-1] == lf {
		n = 2
	}
	b.content = append(b.content[:i-n], b.content[i:]...)
	return n
}

// DeleteForward removes the unit starting at i: both runes when they form a
// CR LF pair, one rune otherwise.
func (b *Buffer) DeleteForward(i int) int {
	i = b.index(i)
	if i == len(b.content) {
		return 0
	}
	n := 1
	if b.IsPairAt(i) {
		n = 2
	}
	b.content = append(b.content[:i], b.content[i+n:]...)
	return n
}

// IsPairAt reports whether a CR LF pair starts at i.
func (b *Buffer) IsPairAt(i int) bool {
	return i >= 0 && i+1 < len(b.content) && b.content[i] == cr && b.content[i+1] == lf
}

// InsidePair reports whether i lies strictly between the CR and LF of a pair.
func (b *Buffer) InsidePair(i int) bool {
	return b.IsPairAt(i - 1)
}

// LineStart returns the index just after the line break preceding i, or 0.
func (b *Buffer) LineStart(i int) int {
	i = clamp(i, 0, len(b.content))
	for j := i; j > 0; j-- {
		if b.content[j-1] == lf {
			return j
		}
	}
	return 0
}

// LineEnd returns the index of the line break following i, or Len().
func (b *Buffer) LineEnd(i int) int {
	i = clamp(i, 0, len(b.content))
	for j := i; j < len(b.content); j++ {
		if b.content[j] == cr || b.content[j] == lf {
			return j
		}
	}
	return len(b.content)
}

// LineCount returns the number of visual lines, at least 1.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.content {
		if r == lf {
			n++
		}
	}
	return n
}

// index validates a caller-supplied index and snaps it out of a pair.
func (b *Buffer) index(i int) int {
	if i < 0 || i > len(b.content) {
		if strictIndices {
			panic(fmt.Sprintf("textedit: index %d out of range [0, %d]", i, len(b.content)))
		}
		i = clamp(i, 0, len(b.content))
	}
	if b.InsidePair(i) {
		i--
	}
	return i
}

func (b *Buffer) contains(r rune) bool {
	for _, c := range b.content {
		if c == r {
			return true
		}
	}
	return false
}

func (b *Buffer) truncate(rs []rune) []rune {
	if b.maxLength == 0 || len(rs) <= b.maxLength {
		return rs
	}
	rs = rs[:b.maxLength]
	if rs[len(rs)-1] == cr {
		rs = rs[:len(rs)-1]
	}
	return rs
}

func collapsePairs(rs []rune) []rune {
	out := rs[:0]
	for i := 0; i < len(rs); i++ {
		if rs[i] == cr && i+1 < len(rs) && rs[i+1] == lf {
			out = append(out, ' ')
			i++
			continue
		}
		out = append(out, rs[i])
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
