package syntax

import "sysmlkit/pkg/ids"

// ErrorCategory buckets a SyntaxError by the parsing phase that raised it,
// independent of its human-readable message.
type ErrorCategory uint8

const (
	CategoryLexical ErrorCategory = iota
	CategoryStructural
	CategoryDeclaration
	CategoryExpression
	CategoryImport
	CategoryGeneric
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategoryStructural:
		return "structural"
	case CategoryDeclaration:
		return "declaration"
	case CategoryExpression:
		return "expression"
	case CategoryImport:
		return "import"
	default:
		return "generic"
	}
}

// Related is a secondary range attached to a SyntaxError, e.g. pointing at
// an unmatched opening brace when reporting a missing closing one.
type Related struct {
	Range   ids.TextRange
	Message string
}

// SyntaxError is a single parse-time diagnostic: a short category, a
// human-readable message, the primary offending range, an optional
// actionable hint, and zero or more related ranges.
type SyntaxError struct {
	Category ErrorCategory
	Message  string
	Range    ids.TextRange
	Hint     string
	Related  []Related
}

func newError(category ErrorCategory, rng ids.TextRange, message string) SyntaxError {
	return SyntaxError{Category: category, Message: message, Range: rng}
}

func (e SyntaxError) withHint(hint string) SyntaxError {
	e.Hint = hint
	return e
}

func (e SyntaxError) withRelated(rng ids.TextRange, message string) SyntaxError {
	e.Related = append(e.Related, Related{Range: rng, Message: message})
	return e
}
