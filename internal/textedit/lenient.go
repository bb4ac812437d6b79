//go:build !textedit_strict

package textedit

const strictIndices = false
