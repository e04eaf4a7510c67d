// Package token defines lexical token kinds for clukc source.
// Invariants:
//   - Token.Text is the exact source text of Token.Span.
//   - Type keywords (int, float, char, void) are keywords, not identifiers.
//   - Comments never appear in the token stream.
package token
