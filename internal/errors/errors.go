// Package errors defines Corrosion's three diagnostic kinds and their
// canonical formatting (spec.md §6, §7).
package errors

import (
	"fmt"

	"github.com/corrosion-lang/corrosion/internal/token"
)

// Code is a short internal bookkeeping code, kept alongside the canonical
// message the same way the teacher's error registry pairs a code with a
// human description — even though spec.md's external format never prints
// the code itself.
type Code string

const (
	// Parser (PAR###)
	ParUnexpectedToken Code = "PAR001"
	ParMissingSemi     Code = "PAR002"
	ParInvalidPairArity Code = "PAR003"
	ParInvalidPrimitiveArity Code = "PAR004"

	// Type checker (TC###)
	TCMismatch    Code = "TC001"
	TCUndefined   Code = "TC002"
	TCRedefined   Code = "TC003"
	TCInvalidOp   Code = "TC004"
	TCOccursCheck Code = "TC005"

	// Evaluator (EVA###)
	EvaEmptyList   Code = "EVA001"
	EvaDivByZero   Code = "EVA002"
	EvaIndexRange  Code = "EVA003"
	EvaImportFailed Code = "EVA004"
)

// Registry documents each code's phase and category, mirroring the
// teacher's ErrorRegistry. It is purely for internal tooling (e.g. a
// future `corrosion check --explain PAR001`); no spec.md-mandated output
// depends on it.
var Registry = map[Code]struct {
	Phase       string
	Description string
}{
	ParUnexpectedToken:      {"parser", "Unexpected token"},
	ParMissingSemi:          {"parser", "Missing ';' terminator"},
	ParInvalidPairArity:     {"parser", "Pair literal must have exactly two elements"},
	ParInvalidPrimitiveArity: {"parser", "Wrong number of arguments to a primitive"},
	TCMismatch:      {"typecheck", "Type mismatch"},
	TCUndefined:     {"typecheck", "Undefined variable"},
	TCRedefined:     {"typecheck", "Variable redefined"},
	TCInvalidOp:     {"typecheck", "Invalid binary operation"},
	TCOccursCheck:   {"typecheck", "Occurs check failed"},
	EvaEmptyList:    {"eval", "Empty list operation"},
	EvaDivByZero:    {"eval", "Division by zero"},
	EvaIndexRange:   {"eval", "Index out of range"},
	EvaImportFailed: {"eval", "Import failed"},
}

// ParseError is produced by the parser; see spec.md §4.1.
type ParseError struct {
	Code    Code
	Message string
	Pos     token.Pos
	HasPos  bool
}

func (e *ParseError) Error() string { return format("Parse error", e.Message, e.Pos, e.HasPos) }

// TypeError is produced by the type checker; see spec.md §4.2.
type TypeError struct {
	Code    Code
	Message string
	Pos     token.Pos
	HasPos  bool
}

func (e *TypeError) Error() string { return format("Type error", e.Message, e.Pos, e.HasPos) }

// RuntimeError is produced by the evaluator; see spec.md §4.3.
type RuntimeError struct {
	Code    Code
	Message string
	Pos     token.Pos
	HasPos  bool
}

func (e *RuntimeError) Error() string { return format("Runtime error", e.Message, e.Pos, e.HasPos) }

// format renders the canonical "Error: <Kind>: <message> at line L, column C"
// line. The "at line L, column C" clause is omitted when no span is known,
// exactly as spec.md §6 requires.
func format(kind, message string, pos token.Pos, hasPos bool) string {
	if !hasPos {
		return fmt.Sprintf("Error: %s: %s", kind, message)
	}
	return fmt.Sprintf("Error: %s: %s at line %d, column %d", kind, message, pos.Line, pos.Column)
}

// NewParseError builds a ParseError with a known position.
func NewParseError(code Code, pos token.Pos, message string) *ParseError {
	return &ParseError{Code: code, Message: message, Pos: pos, HasPos: true}
}

// NewTypeError builds a TypeError with a known position.
func NewTypeError(code Code, pos token.Pos, message string) *TypeError {
	return &TypeError{Code: code, Message: message, Pos: pos, HasPos: true}
}

// NewTypeMismatchError builds the `Type mismatch at L:C: expected 'A',
// found 'B'` diagnostic spec.md §4.2 specifies for unification failure.
// Unlike NewTypeError's plain messages, the position here sits inside the
// message itself, ahead of the expected/found detail, so it is built with
// HasPos false to avoid appending a second position.
func NewTypeMismatchError(pos token.Pos, expected, found string) *TypeError {
	msg := fmt.Sprintf("Type mismatch at %s: expected '%s', found '%s'", pos, expected, found)
	return &TypeError{Code: TCMismatch, Message: msg, Pos: pos, HasPos: false}
}

// NewInvalidOpError builds the `Invalid binary operation at L:C: 'A' Op
// 'B'` diagnostic spec.md §4.2 specifies.
func NewInvalidOpError(pos token.Pos, left, op, right string) *TypeError {
	msg := fmt.Sprintf("Invalid binary operation at %s: '%s' %s '%s'", pos, left, op, right)
	return &TypeError{Code: TCInvalidOp, Message: msg, Pos: pos, HasPos: false}
}

// NewRuntimeError builds a RuntimeError with a known position.
func NewRuntimeError(code Code, pos token.Pos, message string) *RuntimeError {
	return &RuntimeError{Code: code, Message: message, Pos: pos, HasPos: true}
}

// NewRuntimeErrorNoPos builds a RuntimeError when no span is available
// (e.g. an error raised from a desugared node).
func NewRuntimeErrorNoPos(code Code, message string) *RuntimeError {
	return &RuntimeError{Code: code, Message: message, HasPos: false}
}
