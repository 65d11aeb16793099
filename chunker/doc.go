// Package chunker splits document text into bounded segments suitable
// for embedding, with controlled character overlap between consecutive
// segments and an optional "[<title>] " context prefix on each one.
//
// Sentence boundaries are detected by the literal delimiter ". ". This
// is a textual heuristic, not a language-aware detector: abbreviations
// and decimal points cause over-splitting ("Dr. Smith" becomes two
// sentences). Overlap and prefix arithmetic are defined relative to
// this heuristic, so it is kept as-is rather than replaced with a
// smarter tokenizer.
//
// The maximum length is a soft bound: a single sentence longer than
// the usable budget is emitted whole, and an overlap seed plus the
// following sentence may together exceed it. No sentence is ever
// truncated or split across a chunk boundary.
package chunker
