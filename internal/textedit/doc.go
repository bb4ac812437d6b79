// Package textedit implements the editing engine behind text-input widgets:
// a filtered, length-bounded rune buffer whose line breaks are atomic CR LF
// pairs, and a caret that turns discrete input intents into edits and
// movement.
//
// The engine has no rendering dependency. Vertical caret movement asks an
// injected GlyphOracle for horizontal glyph positions, so it can be driven by
// a TrueType face, a bitmap font or a fixed-width cell grid.
//
// Example:
//
//	ed := textedit.NewEditor(textedit.EditorOptions{
//	    Filters:   textedit.DefaultFilters(),
//	    MaxLength: 12,
//	})
//	ed.ApplyAll(textedit.IntentsFromText("Player 1"))
//	ed.Apply(textedit.Key(textedit.IntentBackspace))
//	fmt.Println(ed.Text()) // "Player "
package textedit
