// Package diagnostics collects semantic findings raised by the resolver
// and the post-resolution checks that run over it: undefined references,
// duplicate definitions, circular specialization, and the advisory
// warnings (unused symbols, deprecated usage, naming convention). It
// mirrors the teacher's validator shape — one severity-tagged Violation
// list gathered from several independent passes — generalized from
// design-system rule violations to resolver/parser diagnostics.
package diagnostics

import (
	"sysmlkit/pkg/ids"
)

// Severity classifies how a Diagnostic should be surfaced.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Code identifies a diagnostic's kind, independent of its message text.
type Code string

const (
	CodeUndefinedReference  Code = "E0001"
	CodeAmbiguousReference  Code = "E0002"
	CodeTypeMismatch        Code = "E0003" // reserved, not raised by the current passes
	CodeDuplicateDefinition Code = "E0004"
	CodeMissingRequired     Code = "E0005" // reserved: a required-element redefinition check the corpus itself never implements
	CodeInvalidSpecialize   Code = "E0006"
	CodeCircularSpecialize  Code = "E0007"
	CodeUnusedSymbol        Code = "W0001"
	CodeDeprecatedUsage     Code = "W0002"
	CodeNamingConvention    Code = "W0003"
)

func (c Code) Severity() Severity {
	if len(c) > 0 && c[0] == 'W' {
		return SeverityWarning
	}
	return SeverityError
}

// Related points at a secondary location relevant to a Diagnostic, e.g.
// the other candidate in an E0002 or the other definition in an E0004.
type Related struct {
	File    ids.FileId
	Range   ids.TextRange
	Message string
}

// Diagnostic is one finding from the resolver or a diagnostics pass. It
// is plain data, never a Go error: a single malformed file must never
// abort analysis of the rest of the workspace.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	File     ids.FileId
	Range    ids.TextRange
	Related  []Related
}

func newDiagnostic(code Code, file ids.FileId, rng ids.TextRange, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: code.Severity(), Message: message, File: file, Range: rng}
}

func (d Diagnostic) withRelated(file ids.FileId, rng ids.TextRange, message string) Diagnostic {
	d.Related = append(d.Related, Related{File: file, Range: rng, Message: message})
	return d
}

// dedupKey identifies diagnostics that should collapse into one, matching
// on (file, range, code, message) the way the teacher's validator treats
// two passes raising the same violation at the same location as one
// finding rather than two.
type dedupKey struct {
	file    ids.FileId
	start   uint32
	end     uint32
	code    Code
	message string
}

// Dedup collapses diagnostics that share a file, range, code, and
// message, keeping the first occurrence (and its Related entries) and
// dropping the rest. Passes run independently — a name that is both
// undefined and part of a cycle can otherwise surface twice for the same
// span — so every collector funnels its output through Dedup before it
// reaches pkg/db.
func Dedup(diags []Diagnostic) []Diagnostic {
	seen := make(map[dedupKey]bool, len(diags))
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		key := dedupKey{file: d.File, start: d.Range.Start, end: d.Range.End, code: d.Code, message: d.Message}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
