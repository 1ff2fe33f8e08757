package ui

// Status symbols for progress lines.
const (
	SymbolSuccess  = "✓"
	SymbolFail     = "✗"
	SymbolProgress = "◐"
	SymbolComplete = "●"
	SymbolSkipped  = "⊘"
	SymbolWarning  = "⚠"
)
