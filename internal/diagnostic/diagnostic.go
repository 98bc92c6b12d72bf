package diagnostic

import (
	"fmt"
	"strings"
)

// Code identifies the category of a validation failure.
type Code int

const (
	// Lexical / syntactic
	InvalidLineFormat Code = iota
	InvalidComment
	OperatorNotAllowed
	ArrayNotAllowed
	NonVoidMethod

	// Scope errors
	DuplicateInScope
	GlobalConflict
	ReservedName
	NotDeclared
	DuplicateParameter
	UnclosedMethod
	NestedMethod
	MismatchedScopeEnd

	// Type errors
	LiteralTypeMismatch
	TypeIncompatible
	UninitializedUse
	ConditionTypeNotAllowed
	ReassignFinal
	FinalNotInitialized

	// Structural errors
	GlobalScopeViolation
	MissingReturn
	ReturnOutsideMethod
	BlockOutsideMethod
	CallOutsideMethod
	MethodNotFound
	ArityMismatch
	OverloadNotAllowed
	InvalidParameter
	InvalidCondition
)

// String returns the string representation of the code
func (c Code) String() string {
	switch c {
	case InvalidLineFormat:
		return "invalid-line-format"
	case InvalidComment:
		return "invalid-comment"
	case OperatorNotAllowed:
		return "operator-not-allowed"
	case ArrayNotAllowed:
		return "array-not-allowed"
	case NonVoidMethod:
		return "non-void-method"
	case DuplicateInScope:
		return "duplicate-in-scope"
	case GlobalConflict:
		return "global-conflict"
	case ReservedName:
		return "reserved-name"
	case NotDeclared:
		return "not-declared"
	case DuplicateParameter:
		return "duplicate-parameter"
	case UnclosedMethod:
		return "unclosed-method"
	case NestedMethod:
		return "nested-method"
	case MismatchedScopeEnd:
		return "mismatched-scope-end"
	case LiteralTypeMismatch:
		return "literal-type-mismatch"
	case TypeIncompatible:
		return "type-incompatible"
	case UninitializedUse:
		return "uninitialized-use"
	case ConditionTypeNotAllowed:
		return "condition-type-not-allowed"
	case ReassignFinal:
		return "reassign-final"
	case FinalNotInitialized:
		return "final-not-initialized"
	case GlobalScopeViolation:
		return "global-scope-violation"
	case MissingReturn:
		return "missing-return"
	case ReturnOutsideMethod:
		return "return-outside-method"
	case BlockOutsideMethod:
		return "block-outside-method"
	case CallOutsideMethod:
		return "call-outside-method"
	case MethodNotFound:
		return "method-not-found"
	case ArityMismatch:
		return "arity-mismatch"
	case OverloadNotAllowed:
		return "overload-not-allowed"
	case InvalidParameter:
		return "invalid-parameter"
	case InvalidCondition:
		return "invalid-condition"
	default:
		return "unknown"
	}
}

// Error is a single validation failure. Line is 1-based and zero until the
// orchestrator stamps it.
type Error struct {
	Code    Code
	Message string
	Line    int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Errorf creates a new Error with a formatted message
func Errorf(code Code, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// AtLine returns the error stamped with a 1-based line number.
// Already-stamped errors keep their original line.
func (e *Error) AtLine(line int) *Error {
	if e.Line > 0 {
		return e
	}
	return &Error{Code: e.Code, Message: e.Message, Line: line}
}

// Diagnostics manages the failures recorded during one validation run.
// Validation halts at the first error, so the collection holds at most one
// entry, but callers treat it as a list.
type Diagnostics struct {
	items []*Error
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]*Error, 0),
	}
}

// Add records a failure.
func (d *Diagnostics) Add(err *Error) {
	d.items = append(d.items, err)
}

// Errorf records a failure with a formatted message
func (d *Diagnostics) Errorf(code Code, line int, format string, args ...interface{}) {
	d.items = append(d.items, &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
	})
}

// HasErrors returns true if any failure has been recorded
func (d *Diagnostics) HasErrors() bool {
	return len(d.items) > 0
}

// First returns the first recorded failure, or nil
func (d *Diagnostics) First() *Error {
	if len(d.items) == 0 {
		return nil
	}
	return d.items[0]
}

// All returns all recorded failures
func (d *Diagnostics) All() []*Error {
	return d.items
}

// Count returns the number of recorded failures
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// Format returns human-readable error messages
// Output format:
//
//	error[filename:3]: variable not declared: x
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		builder.WriteString(fmt.Sprintf("error[%s:%d]: %s", filename, item.Line, item.Message))
		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear removes all recorded failures
func (d *Diagnostics) Clear() {
	d.items = make([]*Error, 0)
}
