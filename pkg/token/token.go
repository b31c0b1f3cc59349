package token

import "sysmlkit/pkg/ids"

// Token is one lexical token: its kind, its byte range in the source, and
// its exact source text (trivia included — the lexer never discards bytes).
type Token struct {
	Kind  Kind
	Range ids.TextRange
	Text  string
}

// IsTrivia reports whether this token is whitespace or a comment.
func (t Token) IsTrivia() bool { return t.Kind.IsTrivia() }
