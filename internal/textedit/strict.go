//go:build textedit_strict

package textedit

// strictIndices turns index contract violations into panics. Enable with
// -tags textedit_strict while developing widgets on top of the engine.
const strictIndices = true
