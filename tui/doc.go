// Package tui implements the interactive search screen.
//
// The model wraps a SearchPort, renders ranked chunks one at a time
// with a proportional score bar, and highlights the sentence that
// overlaps the query most. Navigation is up/down between results;
// enter re-runs the query in the input box.
package tui
