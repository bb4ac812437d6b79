package textedit

import (
	"math/rand"
	"strings"
	"testing"
)

// monoOracle places every rune in a fixed-width cell, measured from the start
// of the rune's line.
type monoOracle struct {
	buf   *Buffer
	width float64
	fail  bool
	calls int
}

func (o *monoOracle) XPositionOf(i int) (float64, error) {
	o.calls++
	if o.fail {
		return 0, ErrNotLaidOut
	}
	return float64(i-o.buf.LineStart(i)) * o.width, nil
}

// widthOracle gives each rune its own advance; unknown runes use def.
type widthOracle struct {
	buf    *Buffer
	widths map[rune]float64
	def    float64
}

func (o *widthOracle) XPositionOf(i int) (float64, error) {
	x := 0.0
	for j := o.buf.LineStart(i); j < i; j++ {
		w, ok := o.widths[o.buf.RuneAt(j)]
		if !ok {
			w = o.def
		}
		x += w
	}
	return x, nil
}

func newTestCaret(filters Filters, maxLength int, content string, pos int) (*Buffer, *Caret) {
	b := NewBuffer(filters, maxLength)
	b.SetText(content)
	c := NewCaret(b, &monoOracle{buf: b, width: 8})
	c.SetPosition(pos)
	return b, c
}

// TestCaret_ScenarioA tests that a digit is rejected by a letters-only field
func TestCaret_ScenarioA(t *testing.T) {
	b, c := newTestCaret(Filters{Letters: true}, 0, "", 0)

	if c.InsertChar('5') {
		t.Error("InsertChar('5') reported a change")
	}
	if b.Text() != "" || c.Position() != 0 {
		t.Errorf("state = (%q, %d), want (\"\", 0)", b.Text(), c.Position())
	}
}

// TestCaret_ScenarioB tests that a newline is inserted and removed as one unit
func TestCaret_ScenarioB(t *testing.T) {
	b, c := newTestCaret(multiline(), 0, "ab", 2)

	if !c.InsertNewline() {
		t.Fatal("InsertNewline() failed")
	}
	if b.Text() != "ab\r\n" || c.Position() != 4 {
		t.Fatalf("after newline = (%q, %d), want (\"ab\\r\\n\", 4)", b.Text(), c.Position())
	}

	if !c.Backspace() {
		t.Fatal("Backspace() failed")
	}
	if b.Text() != "ab" || c.Position() != 2 {
		t.Errorf("after backspace = (%q, %d), want (\"ab\", 2)", b.Text(), c.Position())
	}
}

// TestCaret_ScenarioC tests the single decimal point rule
func TestCaret_ScenarioC(t *testing.T) {
	b, c := newTestCaret(Filters{Numbers: true}, 0, "3.1", 3)

	if c.InsertChar('.') {
		t.Error("second '.' accepted")
	}
	if b.Text() != "3.1" || c.Position() != 3 {
		t.Errorf("state = (%q, %d), want (\"3.1\", 3)", b.Text(), c.Position())
	}
}

// TestCaret_ScenarioD tests moving down into the same column
func TestCaret_ScenarioD(t *testing.T) {
	_, c := newTestCaret(multiline(), 0, "line1\r\nline2", 2)

	if !c.Down() {
		t.Fatal("Down() reported no change")
	}
	if got := c.Position(); got != 9 {
		t.Errorf("Position() = %d, want 9", got)
	}
}

// TestCaret_ScenarioE tests the length limit
func TestCaret_ScenarioE(t *testing.T) {
	b, c := newTestCaret(DefaultFilters(), 3, "ab", 2)

	if !c.InsertChar('c') {
		t.Fatal("InsertChar('c') rejected")
	}
	if b.Text() != "abc" {
		t.Fatalf("Text() = %q, want %q", b.Text(), "abc")
	}
	if c.InsertChar('d') {
		t.Error("InsertChar('d') accepted past MaxLength")
	}
	if b.Text() != "abc" || c.Position() != 3 {
		t.Errorf("state = (%q, %d), want (\"abc\", 3)", b.Text(), c.Position())
	}
}

func TestCaret_Boundaries(t *testing.T) {
	t.Run("backspace at start", func(t *testing.T) {
		b, c := newTestCaret(DefaultFilters(), 0, "abc", 0)
		if c.Backspace() {
			t.Error("Backspace() at 0 reported a change")
		}
		if b.Text() != "abc" || c.Position() != 0 {
			t.Errorf("state = (%q, %d)", b.Text(), c.Position())
		}
	})

	t.Run("delete at end", func(t *testing.T) {
		b, c := newTestCaret(DefaultFilters(), 0, "abc", 3)
		if c.Delete() {
			t.Error("Delete() at end reported a change")
		}
		if b.Text() != "abc" || c.Position() != 3 {
			t.Errorf("state = (%q, %d)", b.Text(), c.Position())
		}
	})

	t.Run("delete keeps caret", func(t *testing.T) {
		b, c := newTestCaret(multiline(), 0, "ab\r\ncd", 2)
		if !c.Delete() {
			t.Fatal("Delete() failed")
		}
		if b.Text() != "abcd" || c.Position() != 2 {
			t.Errorf("state = (%q, %d), want (\"abcd\", 2)", b.Text(), c.Position())
		}
	})

	t.Run("left at start", func(t *testing.T) {
		_, c := newTestCaret(DefaultFilters(), 0, "abc", 0)
		if c.Left() {
			t.Error("Left() at 0 reported a change")
		}
	})

	t.Run("right at end", func(t *testing.T) {
		_, c := newTestCaret(DefaultFilters(), 0, "abc", 3)
		if c.Right() {
			t.Error("Right() at end reported a change")
		}
	})
}

func TestCaret_HorizontalSkipsPairs(t *testing.T) {
	// a0 b1 CR2 LF3 c4
	_, c := newTestCaret(multiline(), 0, "ab\r\nc", 2)

	c.Right()
	if got := c.Position(); got != 4 {
		t.Fatalf("Right() from 2 = %d, want 4", got)
	}
	c.Left()
	if got := c.Position(); got != 2 {
		t.Fatalf("Left() from 4 = %d, want 2", got)
	}
	c.Left()
	if got := c.Position(); got != 1 {
		t.Errorf("Left() from 2 = %d, want 1", got)
	}
}

func TestCaret_SetPositionSnaps(t *testing.T) {
	_, c := newTestCaret(multiline(), 0, "ab\r\nc", 0)

	tests := []struct {
		in, want int
	}{
		{3, 2},
		{-4, 0},
		{99, 5},
		{4, 4},
	}
	for _, tt := range tests {
		c.SetPosition(tt.in)
		if got := c.Position(); got != tt.want {
			t.Errorf("SetPosition(%d) -> %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCaret_HomeEnd(t *testing.T) {
	// first line "abc" 0..3, CR3 LF4, second line "defg" 5..9
	tests := []struct {
		name string
		pos  int
		home int
		end  int
	}{
		{"first line middle", 1, 0, 3},
		{"first line end", 3, 0, 3},
		{"second line start", 5, 5, 9},
		{"second line middle", 7, 5, 9},
		{"text end", 9, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestCaret(multiline(), 0, "abc\r\ndefg", tt.pos)

			c.Home()
			if got := c.Position(); got != tt.home {
				t.Errorf("Home() = %d, want %d", got, tt.home)
			}
			if c.Home() {
				t.Error("second Home() reported a change")
			}

			c.SetPosition(tt.pos)
			c.End()
			if got := c.Position(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
			if c.End() {
				t.Error("second End() reported a change")
			}
		})
	}
}

func TestCaret_Vertical(t *testing.T) {
	tests := []struct {
		name    string
		content string
		pos     int
		up      bool
		want    int
		changed bool
	}{
		{"up same column", "line1\r\nline2", 10, true, 3, true},
		{"up to shorter line snaps to end", "ab\r\nlonger", 9, true, 2, true},
		{"down to shorter line snaps to end", "longer\r\nab", 5, false, 10, true},
		{"up on first line", "ab\r\ncd", 1, true, 1, false},
		{"down on last line", "ab\r\ncd", 5, false, 5, false},
		{"down from line end", "abc\r\nde\r\nfgh", 3, false, 7, true},
		{"up across empty line", "abc\r\n\r\nxyz", 8, true, 5, true},
		{"down onto empty line", "abc\r\n\r\nxyz", 2, false, 5, true},
		{"single line", "abc", 1, true, 1, false},
		{"empty buffer", "", 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, c := newTestCaret(multiline(), 0, tt.content, tt.pos)

			var changed bool
			if tt.up {
				changed = c.Up()
			} else {
				changed = c.Down()
			}
			if changed != tt.changed {
				t.Errorf("changed = %v, want %v", changed, tt.changed)
			}
			if got := c.Position(); got != tt.want {
				t.Errorf("Position() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCaret_VerticalProportional(t *testing.T) {
	widths := map[rune]float64{'i': 2, 'm': 10, '\u0301': 0}

	tests := []struct {
		name    string
		content string
		pos     int
		up      bool
		want    int
	}{
		// caret after "iii" sits at x=6; "mm" offers x=0 and x=10
		{"up takes first at or past target", "mm\r\niiiii", 7, true, 1},
		{"down stops before overshoot", "iii\r\nmm", 3, false, 5},
		{"down lands on exact x", "mm\r\niiiii", 1, false, 9},
		// a, combining acute and b: the mark and b share x=6
		{"down ties resolve to earlier", "ab\r\na\u0301b", 1, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(multiline(), 0)
			b.SetText(tt.content)
			c := NewCaret(b, &widthOracle{buf: b, widths: widths, def: 6})
			c.SetPosition(tt.pos)

			if tt.up {
				c.Up()
			} else {
				c.Down()
			}
			if got := c.Position(); got != tt.want {
				t.Errorf("Position() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCaret_VerticalWithoutOracle(t *testing.T) {
	t.Run("oracle failure", func(t *testing.T) {
		b := NewBuffer(multiline(), 0)
		b.SetText("ab\r\ncd")
		o := &monoOracle{buf: b, width: 8, fail: true}
		c := NewCaret(b, o)
		c.SetPosition(1)

		if c.Down() {
			t.Error("Down() changed state with a failing oracle")
		}
		if c.Position() != 1 {
			t.Errorf("Position() = %d, want 1", c.Position())
		}
		if o.calls == 0 {
			t.Error("oracle was not consulted")
		}
	})

	t.Run("nil oracle", func(t *testing.T) {
		b := NewBuffer(multiline(), 0)
		b.SetText("ab\r\ncd")
		c := NewCaret(b, nil)
		c.SetPosition(5)

		if c.Up() {
			t.Error("Up() changed state without an oracle")
		}

		c.SetOracle(OracleFunc(func(i int) (float64, error) {
			return float64(i - b.LineStart(i)), nil
		}))
		if !c.Up() || c.Position() != 1 {
			t.Errorf("Up() after SetOracle -> %d, want 1", c.Position())
		}
	})
}

// TestCaret_Invariants drives random intents and checks the buffer and caret
// invariants after every step.
func TestCaret_Invariants(t *testing.T) {
	alphabet := []rune("ab1 .,+中")
	kinds := []IntentKind{
		IntentInsert, IntentInsert, IntentInsert, IntentNewline, IntentBackspace,
		IntentDelete, IntentLeft, IntentRight, IntentHome, IntentEnd, IntentUp, IntentDown,
	}

	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		maxLength := rng.Intn(3) * 8
		b, c := newTestCaret(multiline(), maxLength, "", 0)

		for step := 0; step < 300; step++ {
			in := Key(kinds[rng.Intn(len(kinds))])
			if in.Kind == IntentInsert {
				in.Rune = alphabet[rng.Intn(len(alphabet))]
			}
			c.Apply(in)

			text := b.Text()
			pos := c.Position()
			if strings.Count(text, "\r") != strings.Count(text, "\r\n") ||
				strings.Count(text, "\n") != strings.Count(text, "\r\n") {
				t.Fatalf("seed %d step %d: bare line break in %q", seed, step, text)
			}
			if pos < 0 || pos > b.Len() {
				t.Fatalf("seed %d step %d: position %d outside [0, %d]", seed, step, pos, b.Len())
			}
			if b.InsidePair(pos) {
				t.Fatalf("seed %d step %d: position %d splits a pair in %q", seed, step, pos, text)
			}
			if maxLength > 0 && b.Len() > maxLength {
				t.Fatalf("seed %d step %d: length %d exceeds %d", seed, step, b.Len(), maxLength)
			}
		}
	}
}

// TestCaret_Resync tests re-clamping after the buffer is edited behind the caret
func TestCaret_Resync(t *testing.T) {
	filters := DefaultFilters()
	filters.Newline = true

	b, c := newTestCaret(filters, 0, "ab\r\ncd", 6)
	b.DeleteBackward(6)
	c.Resync()
	if c.Position() != 5 {
		t.Errorf("after shrinking, Position() = %d, want 5", c.Position())
	}

	b, c = newTestCaret(filters, 0, "a\r\nb", 1)
	b.DeleteForward(0)
	c.Resync()
	if c.Position() != 0 {
		t.Errorf("inside pair after edit, Position() = %d, want 0", c.Position())
	}
}
