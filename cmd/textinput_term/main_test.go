package main

import (
	"testing"

	"github.com/decker502/textkit/internal/textedit"
	"github.com/gdamore/tcell/v2"
)

func TestIntentForKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want textedit.Intent
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), textedit.Insert('x'), true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), textedit.Key(textedit.IntentBackspace), true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), textedit.Key(textedit.IntentNewline), true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), textedit.Key(textedit.IntentUp), true},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), textedit.Intent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := intentForKey(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("intentForKey() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := loadOptions("", "", true, 12)
	if err != nil {
		t.Fatalf("loadOptions() error = %v", err)
	}
	if !opts.Filters.Newline || opts.MaxLength != 12 {
		t.Errorf("loadOptions() = %+v", opts)
	}
}

func TestDrawLine(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 2)

	if got := drawLine(screen, 0, 0, "a中e\u0301", tcell.StyleDefault); got != 4 {
		t.Errorf("drawLine() width = %d, want 4", got)
	}

	mainc, combc, _, _ := screen.GetContent(3, 0)
	if mainc != 'e' || len(combc) != 1 || combc[0] != '\u0301' {
		t.Errorf("cell 3 = %q %q", mainc, combc)
	}
}
