// Package arkerrors defines Ark's error kinds (spec.md §7): CompilerError,
// RuntimeError, and HostConversionError. Control signals (Break, Continue,
// Return) are explicitly NOT part of this package — they are not errors
// and never satisfy the `error` interface; see internal/ark/eval's
// ControlFlow type.
//
// Grounded on the teacher's internal/errors.CompilerError (position +
// source-line + caret formatting, generalized here from a source-text
// line/column to an Ark debug-bag SourceLoc) and internal/interp/errors'
// message-catalog pattern (catalog.go in this package).
package arkerrors

import (
	"fmt"

	"github.com/ursalang/ark/internal/ark/value"
)

// CompilerError is raised by internal/ark/compiler: malformed JSON forms,
// bad parameter lists, or an undefined symbol at compile time.
type CompilerError struct {
	Message string
	Loc     *value.SourceLoc
	Path    string // gjson path of the offending form, when known
}

func (e *CompilerError) Error() string {
	var sb string
	if e.Loc != nil {
		sb = fmt.Sprintf("compile error at %d:%d: %s", e.Loc.Line, e.Loc.Column, e.Message)
	} else {
		sb = fmt.Sprintf("compile error: %s", e.Message)
	}
	if e.Path != "" {
		sb += fmt.Sprintf(" (at %s)", e.Path)
	}
	return sb
}

// NewCompilerError constructs a CompilerError with no location context.
func NewCompilerError(format string, args ...any) *CompilerError {
	return &CompilerError{Message: fmt.Sprintf(format, args...)}
}

// WithLoc attaches a source location, returning the same error for chaining.
func (e *CompilerError) WithLoc(loc *value.SourceLoc) *CompilerError {
	e.Loc = loc
	return e
}

// WithPath attaches a gjson-style path, returning the same error for chaining.
func (e *CompilerError) WithPath(path string) *CompilerError {
	e.Path = path
	return e
}

// RuntimeErrorKind discriminates the runtime error families named in
// spec.md §7.
type RuntimeErrorKind string

const (
	KindInvalidCall         RuntimeErrorKind = "InvalidCall"
	KindInvalidAssignment   RuntimeErrorKind = "InvalidAssignment"
	KindUninitializedSymbol RuntimeErrorKind = "UninitializedSymbol"
	KindUndefinedSymbols    RuntimeErrorKind = "UndefinedSymbols"
	KindHostConversion      RuntimeErrorKind = "HostConversionError"
	KindStackOverflow       RuntimeErrorKind = "StackOverflow"
	KindEscapedControlFlow  RuntimeErrorKind = "EscapedControlFlow"
)

// RuntimeError is raised by internal/ark/eval: invalid call, invalid
// assignment, uninitialized-symbol read, or a HostConversionError surfaced
// through NativeObject property access (spec.md §7).
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Loc     *value.SourceLoc
	Name    string // the offending symbol/property name, when applicable
}

func (e *RuntimeError) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Loc.Line, e.Loc.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewRuntimeError constructs a RuntimeError of the given kind.
func NewRuntimeError(kind RuntimeErrorKind, format string, args ...any) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithLoc attaches a source location, returning the same error for chaining.
func (e *RuntimeError) WithLoc(loc *value.SourceLoc) *RuntimeError {
	e.Loc = loc
	return e
}

// WithName attaches the offending symbol/property name, returning the same
// error for chaining.
func (e *RuntimeError) WithName(name string) *RuntimeError {
	e.Name = name
	return e
}

// AsHostConversionError wraps an arbitrary error raised by a host adapter
// (fromHost/toHost, or NativeObject property access) as a RuntimeError of
// kind HostConversionError, per spec.md §7: "HostConversionError —
// surfaced as RuntimeError when raised through NativeObject property
// access."
func AsHostConversionError(cause error) *RuntimeError {
	return &RuntimeError{Kind: KindHostConversion, Message: cause.Error()}
}
