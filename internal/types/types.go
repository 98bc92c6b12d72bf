package types

import (
	"regexp"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
)

// Type represents one of the five primitive S-Java types.
type Type int

const (
	Int Type = iota
	Double
	Boolean
	Char
	Text // declared with the String keyword
)

// String returns the S-Java keyword for the type
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Double:
		return "double"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case Text:
		return "String"
	default:
		return "unknown"
	}
}

// all types in declaration-keyword order
var all = []Type{Int, Double, Boolean, Char, Text}

// Parse maps a type keyword to its Type. The second result is false for
// anything that is not one of the five legal keywords.
func Parse(keyword string) (Type, bool) {
	for _, t := range all {
		if t.String() == keyword {
			return t, true
		}
	}
	return 0, false
}

// Keywords returns the five legal type keywords in declaration order.
func Keywords() []string {
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.String()
	}
	return names
}

// Literal shapes. Numeric shapes also serve as boolean literals.
var (
	intLit    = regexp.MustCompile(`^[+-]?\d+$`)
	doubleLit = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	charLit   = regexp.MustCompile(`^'[^']'$`)
)

// AcceptsValueOf reports whether a value of type v may be assigned to a
// target of type t. The relation is one-way widening: identity always holds,
// double accepts int, boolean accepts int and double. char and String accept
// only themselves.
func (t Type) AcceptsValueOf(v Type) bool {
	if t == v {
		return true
	}
	switch t {
	case Double:
		return v == Int
	case Boolean:
		return v == Int || v == Double
	default:
		return false
	}
}

// CheckAssignable fails with TypeIncompatible when a value of type v cannot
// be assigned to a target of type t.
func (t Type) CheckAssignable(v Type) *diagnostic.Error {
	if !t.AcceptsValueOf(v) {
		return diagnostic.Errorf(diagnostic.TypeIncompatible,
			"cannot convert %s to %s", v, t)
	}
	return nil
}

// MatchesLiteral reports whether the literal text has the shape required by
// the type. Booleans accept true, false, or any numeric literal. char is
// exactly one non-quote character between single quotes. String literals are
// only checked for enclosing double quotes; the interior is not validated.
func (t Type) MatchesLiteral(lit string) bool {
	switch t {
	case Int:
		return intLit.MatchString(lit)
	case Double:
		return doubleLit.MatchString(lit)
	case Boolean:
		return lit == "true" || lit == "false" || doubleLit.MatchString(lit)
	case Char:
		return charLit.MatchString(lit)
	case Text:
		return len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"'
	default:
		return false
	}
}

// CheckLiteral fails with LiteralTypeMismatch when the literal text does not
// have the shape required by the type.
func (t Type) CheckLiteral(lit string) *diagnostic.Error {
	if !t.MatchesLiteral(lit) {
		return diagnostic.Errorf(diagnostic.LiteralTypeMismatch,
			"invalid %s value: %s", t, lit)
	}
	return nil
}

// AllowedInCondition reports whether a value of this type may appear as an
// if/while condition operand.
func (t Type) AllowedInCondition() bool {
	return t == Boolean || t == Int || t == Double
}

// OfLiteral infers the type of a literal token: true/false are boolean,
// integer shapes are int, other numeric shapes are double, quoted shapes are
// char or String. The second result is false when the token has no literal
// shape at all.
func OfLiteral(lit string) (Type, bool) {
	switch {
	case lit == "true" || lit == "false":
		return Boolean, true
	case intLit.MatchString(lit):
		return Int, true
	case doubleLit.MatchString(lit):
		return Double, true
	case charLit.MatchString(lit):
		return Char, true
	case len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"':
		return Text, true
	default:
		return 0, false
	}
}
