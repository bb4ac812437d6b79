package textedit

import "unicode"

const (
	cr = '\r'
	lf = '\n'
)

// Filters selects which character classes a Buffer accepts from user input.
type Filters struct {
	Letters     bool
	Numbers     bool
	Symbols     bool
	Punctuation bool
	Space       bool
	// Newline allows CR LF pairs in the content. When false the buffer is single-line.
	Newline bool
}

// DefaultFilters accepts every printable class on a single line.
func DefaultFilters() Filters {
	return Filters{
		Letters:     true,
		Numbers:     true,
		Symbols:     true,
		Punctuation: true,
		Space:       true,
	}
}

// FilterFlags is the packed form of Filters used by persistence and config.
type FilterFlags uint8

const (
	FilterLetters FilterFlags = 1 << iota
	FilterNumbers
	FilterSymbols
	FilterPunctuation
	FilterSpace
	FilterNewline
)

// FilterAll enables every class, including newlines.
const FilterAll = FilterLetters | FilterNumbers | FilterSymbols | FilterPunctuation | FilterSpace | FilterNewline

// Flags packs f into a bitmask.
func (f Filters) Flags() FilterFlags {
	var flags FilterFlags
	if f.Letters {
		flags |= FilterLetters
	}
	if f.Numbers {
		flags |= FilterNumbers
	}
	if f.Symbols {
		flags |= FilterSymbols
	}
	if f.Punctuation {
		flags |= FilterPunctuation
	}
	if f.Space {
		flags |= FilterSpace
	}
	if f.Newline {
		flags |= FilterNewline
	}
	return flags
}

// Filters unpacks the bitmask. Unknown bits are ignored.
func (flags FilterFlags) Filters() Filters {
	return Filters{
		Letters:     flags&FilterLetters != 0,
		Numbers:     flags&FilterNumbers != 0,
		Symbols:     flags&FilterSymbols != 0,
		Punctuation: flags&FilterPunctuation != 0,
		Space:       flags&FilterSpace != 0,
		Newline:     flags&FilterNewline != 0,
	}
}

type charClass uint8

const (
	classOther charClass = iota
	classLetter
	classDigit
	classSymbol
	classPunct
	classSpace
	classNewline
)

// classify maps a code point to the filter class that governs it.
// Combining marks ride along with letters; controls fall into classOther.
func classify(r rune) charClass {
	switch {
	case r == cr || r == lf:
		return classNewline
	case unicode.IsLetter(r), unicode.IsMark(r):
		return classLetter
	case unicode.IsDigit(r):
		return classDigit
	case unicode.IsSymbol(r):
		return classSymbol
	case unicode.IsPunct(r):
		return classPunct
	case unicode.Is(unicode.Zs, r):
		return classSpace
	default:
		return classOther
	}
}
