package checker

import (
	"regexp"
	"strings"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/lexer"
)

var (
	// A method-like header with a non-void leading word.
	headerRe = regexp.MustCompile(`^\s*(\w+)\s+` + lexer.Identifier + `\s*\([^)]*\)\s*\{\s*$`)

	// Spaced binary operators between word characters; signs attached to
	// numeric literals do not match.
	spacedOpRe = regexp.MustCompile(`\w\s+[-+*/%]\s+\w`)
)

// checkLineSyntax runs the shared per-line rules on every non-empty,
// non-comment line before kind dispatch: comment placement, no multi-line
// comment markers, no brackets, no arithmetic operators, and void-only method
// headers. Quoted literal content is exempt.
func checkLineSyntax(line string, kind lexer.Kind) *diagnostic.Error {
	masked := maskQuoted(line)

	if strings.Contains(masked, "/*") || strings.Contains(masked, "*/") {
		return diagnostic.Errorf(diagnostic.InvalidComment,
			"multi-line comments are not allowed")
	}

	// The classifier only accepts comments at column zero, so any surviving
	// marker is either indented or trails code.
	if strings.Contains(masked, "//") {
		return diagnostic.Errorf(diagnostic.InvalidComment,
			"comments must occupy their own line starting at column zero")
	}

	if strings.ContainsAny(masked, "[]") {
		return diagnostic.Errorf(diagnostic.ArrayNotAllowed,
			"arrays are not supported")
	}

	if strings.ContainsAny(masked, "*/%") || spacedOpRe.MatchString(masked) {
		return diagnostic.Errorf(diagnostic.OperatorNotAllowed,
			"operators are not allowed")
	}

	if kind == lexer.Invalid {
		if m := headerRe.FindStringSubmatch(line); m != nil &&
			m[1] != lexer.VoidKeyword && m[1] != "if" && m[1] != "while" {
			return diagnostic.Errorf(diagnostic.NonVoidMethod,
				"only void methods are allowed")
		}
	}

	return nil
}

// maskQuoted blanks out single- and double-quoted runs, quotes included, so
// the syntax rules never fire on literal content.
func maskQuoted(line string) string {
	b := []byte(line)
	inSingle, inDouble := false, false
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '\'' && !inDouble:
			inSingle = !inSingle
			b[i] = ' '
		case b[i] == '"' && !inSingle:
			inDouble = !inDouble
			b[i] = ' '
		case inSingle || inDouble:
			b[i] = ' '
		}
	}
	return string(b)
}
