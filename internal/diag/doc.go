// Package diag defines the diagnostic model shared by the lexer, the grammar
// driver and the compilation driver.
//
// Producers emit through a Reporter; BagReporter collects into a bounded Bag
// that supports sorting and deduplication. Rendering lives in internal/diagfmt.
//
// The symbol table never reports: a failed lookup is an ordinary result and
// the caller decides whether it is an error.
package diag
