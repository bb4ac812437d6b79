package textedit

// IntentKind identifies one discrete edit or navigation event.
type IntentKind uint8

const (
	IntentInsert IntentKind = iota
	IntentNewline
	IntentBackspace
	IntentDelete
	IntentLeft
	IntentRight
	IntentHome
	IntentEnd
	IntentUp
	IntentDown
)

var intentNames = [...]string{
	IntentInsert:    "Insert",
	IntentNewline:   "Newline",
	IntentBackspace: "Backspace",
	IntentDelete:    "Delete",
	IntentLeft:      "Left",
	IntentRight:     "Right",
	IntentHome:      "Home",
	IntentEnd:       "End",
	IntentUp:        "Up",
	IntentDown:      "Down",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "Unknown"
}

// Intent is a single input event for a Caret. Rune is only meaningful for
// IntentInsert.
type Intent struct {
	Kind IntentKind
	Rune rune
}

// Insert returns an IntentInsert carrying r.
func Insert(r rune) Intent {
	return Intent{Kind: IntentInsert, Rune: r}
}

// Key returns a rune-less intent of the given kind.
func Key(kind IntentKind) Intent {
	return Intent{Kind: kind}
}

// IntentsFromText converts an inserted-text event into intents. CR LF, a lone
// CR and a lone LF each become one IntentNewline; every other rune becomes an
// IntentInsert.
func IntentsFromText(s string) []Intent {
	if s == "" {
		return nil
	}
	rs := []rune(s)
	out := make([]Intent, 0, len(rs))
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case cr:
			if i+1 < len(rs) && rs[i+1] == lf {
				i++
			}
			out = append(out, Key(IntentNewline))
		case lf:
			out = append(out, Key(IntentNewline))
		default:
			out = append(out, Insert(rs[i]))
		}
	}
	return out
}

// Apply dispatches one intent and reports whether the caret or the content
// changed. Unknown kinds are ignored.
func (c *Caret) Apply(in Intent) bool {
	switch in.Kind {
	case IntentInsert:
		return c.InsertChar(in.Rune)
	case IntentNewline:
		return c.InsertNewline()
	case IntentBackspace:
		return c.Backspace()
	case IntentDelete:
		return c.Delete()
	case IntentLeft:
		return c.Left()
	case IntentRight:
		return c.Right()
	case IntentHome:
		return c.Home()
	case IntentEnd:
		return c.End()
	case IntentUp:
		return c.Up()
	case IntentDown:
		return c.Down()
	default:
		return false
	}
}
