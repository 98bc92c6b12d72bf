package lexer

import (
	"regexp"
	"strings"

	"github.com/sjava-lang/sjavac/internal/types"
)

// Kind is the classification of one raw source line. Every line maps to
// exactly one Kind.
type Kind int

const (
	Empty Kind = iota
	Comment
	MethodDeclaration
	VariableAssignment
	VariableDeclaration
	ReturnStatement
	BlockStart
	BlockEnd
	MethodCall
	Invalid
)

// String returns the string representation of the line kind
func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Comment:
		return "comment"
	case MethodDeclaration:
		return "method-declaration"
	case VariableAssignment:
		return "variable-assignment"
	case VariableDeclaration:
		return "variable-declaration"
	case ReturnStatement:
		return "return-statement"
	case BlockStart:
		return "block-start"
	case BlockEnd:
		return "block-end"
	case MethodCall:
		return "method-call"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

var typeAlternation = strings.Join(types.Keywords(), "|")

// rule pairs a full-line pattern with the kind it classifies.
type rule struct {
	pattern *regexp.Regexp
	kind    Kind
}

// Classification table. Order is priority: the first pattern that matches the
// whole line wins. Comments are only legal at column zero, so the comment
// pattern has no leading whitespace allowance.
var rules = []rule{
	{regexp.MustCompile(`^\s*$`), Empty},
	{regexp.MustCompile(`^//.*$`), Comment},
	{regexp.MustCompile(`^\s*void\s+` + Identifier + `\s*\([^)]*\)\s*\{\s*$`), MethodDeclaration},
	{regexp.MustCompile(`^\s*` + VariableName + `\s*=\s*.+;\s*$`), VariableAssignment},
	{regexp.MustCompile(`^\s*(final\s+)?(` + typeAlternation + `)\s+.+;\s*$`), VariableDeclaration},
	{regexp.MustCompile(`^\s*return\s*;\s*$`), ReturnStatement},
	{regexp.MustCompile(`^\s*(if|while)\s*\([^)]+\)\s*\{\s*$`), BlockStart},
	{regexp.MustCompile(`^\s*}\s*$`), BlockEnd},
	{regexp.MustCompile(`^\s*` + Identifier + `\s*\([^)]*\)\s*;\s*$`), MethodCall},
}

// Classify maps one raw line to its Kind. Pure classification, no side
// effects; lines matching no rule are Invalid.
func Classify(line string) Kind {
	for _, r := range rules {
		if r.pattern.MatchString(line) {
			return r.kind
		}
	}
	return Invalid
}
