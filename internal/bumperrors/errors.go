// Package bumperrors defines the error taxonomy shared across the bump
// pipeline: config loading, version parsing, file rewriting, VCS, and hooks.
// Each kind wraps an optional Span so the CLI layer can print the offending
// byte range from the source configuration file.
package bumperrors

import "fmt"

// Span identifies a range inside a named source: a config file path, or,
// for template diagnostics, the raw template text itself (whose Start/End
// are rune offsets). Zero value means "no span available".
type Span struct {
	Source string
	Start  int
	End    int
	Line   int
	Column int
}

// IsZero reports whether the span carries no location information.
func (s Span) IsZero() bool {
	return s.Source == "" && s.Start == 0 && s.End == 0
}

func (s Span) String() string {
	if s.IsZero() {
		return ""
	}
	if s.Line > 0 {
		return fmt.Sprintf("%s:%d:%d", s.Source, s.Line, s.Column)
	}
	return fmt.Sprintf("%s:%d-%d", s.Source, s.Start, s.End)
}

// Kind enumerates the error taxonomy from the design spec.
type Kind string

const (
	KindConfigParse       Kind = "ConfigParseError"
	KindConfigSchema      Kind = "ConfigSchemaError"
	KindUnparseableVer    Kind = "UnparseableVersion"
	KindBumpExhausted     Kind = "BumpExhausted"
	KindMissingKey        Kind = "MissingKey"
	KindNoMatchesInFile   Kind = "NoMatchesInFile"
	KindFileNotFound      Kind = "FileNotFound"
	KindDirtyWorkingTree  Kind = "DirtyWorkingTree"
	KindVcsError          Kind = "VcsError"
	KindHookFailed        Kind = "HookFailed"
	KindIoError           Kind = "IoError"
	KindInvalidValue      Kind = "InvalidComponentValue"
	KindConflictingRewrite Kind = "ConflictingRewrite"
)

// Error is the common shape for every error the bump pipeline returns.
type Error struct {
	Kind    Kind
	Message string
	Span    Span
	Err     error
}

func (e *Error) Error() string {
	if span := e.Span.String(); span != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, span)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error of the given kind with no span.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At constructs an Error of the given kind carrying a span.
func At(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// Wrap constructs an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// WrapAt constructs an Error wrapping a cause and carrying a span.
func WrapAt(kind Kind, span Span, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span, Err: err}
}

// ExitCode maps a Kind to the process exit code from spec §6.
func ExitCode(kind Kind) int {
	switch kind {
	case KindConfigParse, KindConfigSchema, KindConflictingRewrite:
		return 1
	case KindUnparseableVer, KindBumpExhausted, KindInvalidValue, KindMissingKey:
		return 2
	case KindNoMatchesInFile, KindFileNotFound:
		return 3
	case KindDirtyWorkingTree:
		return 4
	case KindVcsError:
		return 5
	case KindHookFailed, KindIoError:
		return 6
	default:
		return 6
	}
}
