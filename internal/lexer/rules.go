package lexer

import (
	"regexp"
	"strings"
)

// Shared lexical primitives. Method names must start with a letter; variable
// names may additionally start with a single underscore, but the double
// underscore prefix is reserved.
const (
	Identifier   = `[a-zA-Z][a-zA-Z0-9_]*`
	VariableName = `(?:[a-zA-Z]\w*|_[a-zA-Z0-9]\w*)`

	// FinalKeyword is the only legal variable modifier.
	FinalKeyword = "final"
	// VoidKeyword is the only legal method return type.
	VoidKeyword = "void"
)

var (
	identifierRe   = regexp.MustCompile(`^` + Identifier + `$`)
	variableNameRe = regexp.MustCompile(`^` + VariableName + `$`)
)

// IsIdentifier reports whether s is a legal method identifier.
func IsIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// IsVariableName reports whether s is a legal variable identifier.
func IsVariableName(s string) bool {
	return variableNameRe.MatchString(s)
}

// SplitTopLevel splits s on the separator, ignoring separators that appear
// inside single- or double-quoted literals. Used for declaration lists,
// assignment lists and call arguments, where a comma inside "a,b" must not
// split.
func SplitTopLevel(s string, sep byte) []string {
	var parts []string
	var start int
	inSingle, inDouble := false, false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case sep:
			if !inSingle && !inDouble {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// TrimStatement strips surrounding whitespace and the trailing semicolon from
// a statement line.
func TrimStatement(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSuffix(trimmed, ";")
	return strings.TrimSpace(trimmed)
}
