package checker

import (
	"regexp"
	"strings"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/lexer"
	"github.com/sjava-lang/sjavac/internal/registry"
	"github.com/sjava-lang/sjavac/internal/scope"
	"github.com/sjava-lang/sjavac/internal/types"
)

var (
	methodDeclRe = regexp.MustCompile(`^\s*void\s+(` + lexer.Identifier + `)\s*\(\s*(.*?)\s*\)\s*\{\s*$`)
	methodCallRe = regexp.MustCompile(`^\s*(` + lexer.Identifier + `)\s*\(\s*(.*?)\s*\)\s*;\s*$`)
	assignPairRe = regexp.MustCompile(`^\s*(` + lexer.VariableName + `)\s*=\s*(.+?)\s*$`)

	// A declaration value: quoted runs may contain commas and semicolons,
	// anything else may not.
	declValue  = `(?:'[^']*'|"[^"]*"|[^,;])+`
	declPrefix = `^\s*(final\s+)?(` + strings.Join(types.Keywords(), "|") + `)\s+`
	declRe     = regexp.MustCompile(declPrefix +
		lexer.VariableName + `(\s*=\s*` + declValue + `)?` +
		`(\s*,\s*` + lexer.VariableName + `(\s*=\s*` + declValue + `)?)*\s*;\s*$`)
	declPrefixRe = regexp.MustCompile(declPrefix)
)

// Checker validates one S-Java file. All state is scoped to a single run; a
// fresh Checker is the reset state.
type Checker struct {
	lines   []string
	diag    *diagnostic.Diagnostics
	scopes  *scope.Table
	methods *registry.Registry

	// previous validated line was "return;" (comments and blanks do not
	// reset it)
	lastWasReturn bool
}

// Check validates S-Java source text and returns the verdict. The returned
// collection is empty on success and holds the first violation otherwise.
func Check(source string) *diagnostic.Diagnostics {
	return CheckLines(splitLines(source))
}

// CheckLines validates an ordered sequence of raw source lines.
func CheckLines(lines []string) *diagnostic.Diagnostics {
	c := &Checker{
		lines:   lines,
		diag:    diagnostic.New(),
		scopes:  scope.NewTable(),
		methods: registry.New(),
	}

	if err := c.collectDeclarations(); err != nil {
		c.diag.Add(err)
		return c.diag
	}
	if err := c.checkBodies(); err != nil {
		c.diag.Add(err)
		return c.diag
	}
	return c.diag
}

func splitLines(source string) []string {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(normalized, "\n")
}

// collectDeclarations is the first pass: register every method signature and
// declare every global variable, tracking only a brace-nesting counter. Only
// declarations and method bodies are legal at the top level.
func (c *Checker) collectDeclarations() *diagnostic.Error {
	depth := 0
	for i, line := range c.lines {
		n := i + 1
		kind := lexer.Classify(line)
		switch kind {
		case lexer.Empty, lexer.Comment:
			continue

		case lexer.MethodDeclaration:
			name, params, err := parseMethodDeclaration(line)
			if err != nil {
				return err.AtLine(n)
			}
			if err := c.methods.Register(name, params); err != nil {
				return err.AtLine(n)
			}
			depth++

		case lexer.BlockStart:
			if depth == 0 {
				return diagnostic.Errorf(diagnostic.GlobalScopeViolation,
					"block statement outside method").AtLine(n)
			}
			depth++

		case lexer.BlockEnd:
			if depth > 0 {
				depth--
			}

		case lexer.VariableDeclaration:
			if depth == 0 {
				if err := c.checkVariableDeclaration(line); err != nil {
					return err.AtLine(n)
				}
			}

		default:
			if depth == 0 {
				// Surface the specific syntax error when there is one,
				// e.g. a non-void method header or a misplaced comment.
				if err := checkLineSyntax(line, kind); err != nil {
					return err.AtLine(n)
				}
				return diagnostic.Errorf(diagnostic.GlobalScopeViolation,
					"only declarations and method bodies are allowed at top level").AtLine(n)
			}
		}
	}

	if depth != 0 {
		return diagnostic.Errorf(diagnostic.UnclosedMethod,
			"unclosed method block at end of file").AtLine(len(c.lines))
	}
	return nil
}

// checkBodies is the second pass: sequential body validation against the
// signature table and global bindings built by the first pass.
func (c *Checker) checkBodies() *diagnostic.Error {
	c.lastWasReturn = false

	for i, line := range c.lines {
		n := i + 1
		kind := lexer.Classify(line)
		if kind == lexer.Empty || kind == lexer.Comment {
			continue
		}

		if err := checkLineSyntax(line, kind); err != nil {
			return err.AtLine(n)
		}

		var err *diagnostic.Error
		switch kind {
		case lexer.MethodDeclaration:
			err = c.enterMethod(line)
		case lexer.VariableDeclaration:
			// Top-level declarations were fully processed in the first
			// pass; redoing them here would self-collide.
			if c.scopes.InMethod() {
				err = c.checkVariableDeclaration(line)
			}
		case lexer.VariableAssignment:
			err = c.checkAssignment(line)
		case lexer.BlockStart:
			err = c.checkBlockStart(line)
		case lexer.BlockEnd:
			err = c.checkBlockEnd()
		case lexer.ReturnStatement:
			err = c.checkReturn()
		case lexer.MethodCall:
			err = c.checkMethodCall(line)
		case lexer.Invalid:
			err = diagnostic.Errorf(diagnostic.InvalidLineFormat, "invalid line format")
		}
		if err != nil {
			return err.AtLine(n)
		}

		c.lastWasReturn = kind == lexer.ReturnStatement
	}

	if c.scopes.InMethod() {
		return diagnostic.Errorf(diagnostic.UnclosedMethod,
			"unclosed method block at end of file").AtLine(len(c.lines))
	}
	return nil
}

// parseMethodDeclaration extracts the method name and formal parameters from
// a declaration line.
func parseMethodDeclaration(line string) (string, []registry.Param, *diagnostic.Error) {
	m := methodDeclRe.FindStringSubmatch(line)
	if m == nil {
		return "", nil, diagnostic.Errorf(diagnostic.InvalidLineFormat,
			"invalid method declaration format")
	}
	params, err := registry.ParseParams(m[2])
	if err != nil {
		return "", nil, err
	}
	return m[1], params, nil
}

// enterMethod opens a method scope and binds its parameters, already
// validated and registered by the first pass.
func (c *Checker) enterMethod(line string) *diagnostic.Error {
	if c.scopes.InMethod() {
		return diagnostic.Errorf(diagnostic.NestedMethod,
			"nested method declarations are not allowed")
	}

	_, params, err := parseMethodDeclaration(line)
	if err != nil {
		return err
	}

	c.scopes.Enter(true)
	for _, p := range params {
		if err := c.scopes.DeclareParameter(p.Name, p.Type, p.Final); err != nil {
			return err
		}
	}
	return nil
}

// checkVariableDeclaration validates one declaration line and declares each
// entry in the current scope. A shared final modifier and type apply to every
// comma-separated entry.
func (c *Checker) checkVariableDeclaration(line string) *diagnostic.Error {
	if !declRe.MatchString(line) {
		return diagnostic.Errorf(diagnostic.InvalidLineFormat,
			"invalid variable declaration format")
	}

	// The shared final modifier and type keyword prefix every entry.
	m := declPrefixRe.FindStringSubmatch(line)
	loc := declPrefixRe.FindStringIndex(line)
	isFinal := m[1] != ""
	typ, ok := types.Parse(m[2])
	if !ok {
		return diagnostic.Errorf(diagnostic.InvalidLineFormat, "unknown type: %s", m[2])
	}

	entries := lexer.TrimStatement(line[loc[1]:])
	for _, entry := range lexer.SplitTopLevel(entries, ',') {
		name := strings.TrimSpace(entry)
		value := ""
		initialized := false
		if before, after, found := strings.Cut(entry, "="); found {
			name = strings.TrimSpace(before)
			value = strings.TrimSpace(after)
			initialized = true
		}

		if !lexer.IsVariableName(name) {
			return diagnostic.Errorf(diagnostic.InvalidLineFormat,
				"invalid identifier: %s", name)
		}
		if isFinal && !initialized {
			return diagnostic.Errorf(diagnostic.FinalNotInitialized,
				"final variable must be initialized: %s", name)
		}
		if initialized {
			if err := c.checkValue(typ, value); err != nil {
				return err
			}
		}
		if err := c.scopes.Declare(name, typ, isFinal, initialized); err != nil {
			return err
		}
	}
	return nil
}

// checkAssignment validates one assignment line, split on top-level commas
// into name = value pairs.
func (c *Checker) checkAssignment(line string) *diagnostic.Error {
	stmt := lexer.TrimStatement(line)
	for _, pair := range lexer.SplitTopLevel(stmt, ',') {
		m := assignPairRe.FindStringSubmatch(pair)
		if m == nil {
			return diagnostic.Errorf(diagnostic.InvalidLineFormat,
				"invalid assignment format")
		}
		name, value := m[1], m[2]

		target, err := c.scopes.Lookup(name)
		if err != nil {
			return err
		}
		if err := c.checkValue(target.Type, value); err != nil {
			return err
		}
		if err := c.scopes.Assign(name); err != nil {
			return err
		}
	}
	return nil
}

// checkValue validates a value against a target type: either an identifier
// resolving to an initialized variable of a compatible type, or a literal
// whose shape matches the target.
func (c *Checker) checkValue(target types.Type, value string) *diagnostic.Error {
	if lexer.IsVariableName(value) && value != "true" && value != "false" {
		v, err := c.scopes.Lookup(value)
		if err != nil {
			return err
		}
		if !v.Initialized {
			return diagnostic.Errorf(diagnostic.UninitializedUse,
				"variable used before initialization: %s", value)
		}
		return target.CheckAssignable(v.Type)
	}
	return target.CheckLiteral(value)
}

// checkBlockStart validates an if/while header and opens a block scope.
func (c *Checker) checkBlockStart(line string) *diagnostic.Error {
	if !c.scopes.InMethod() {
		return diagnostic.Errorf(diagnostic.BlockOutsideMethod,
			"block statement outside method")
	}

	open := strings.Index(line, "(")
	closing := strings.LastIndex(line, ")")
	if open < 0 || closing < open {
		return diagnostic.Errorf(diagnostic.InvalidCondition, "invalid block condition")
	}
	if err := c.checkCondition(line[open+1 : closing]); err != nil {
		return err
	}

	c.scopes.Enter(false)
	return nil
}

// checkCondition validates the condition text between the outer parentheses
// of an if/while header. Operands are split on top-level || and &&; each must
// be a boolean literal, a numeric literal, or an initialized variable of a
// condition-legal type.
func (c *Checker) checkCondition(condition string) *diagnostic.Error {
	condition = strings.TrimSpace(condition)
	if condition == "" {
		return diagnostic.Errorf(diagnostic.InvalidCondition, "empty condition")
	}
	for _, op := range []string{"||", "&&"} {
		if strings.HasPrefix(condition, op) || strings.HasSuffix(condition, op) {
			return diagnostic.Errorf(diagnostic.InvalidCondition,
				"logical operator at start or end of condition")
		}
	}

	for _, operand := range splitLogical(condition) {
		operand = strings.TrimSpace(operand)
		if operand == "" {
			return diagnostic.Errorf(diagnostic.InvalidCondition,
				"consecutive logical operators in condition")
		}
		if err := c.checkConditionOperand(operand); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) checkConditionOperand(operand string) *diagnostic.Error {
	if operand == "true" || operand == "false" {
		return nil
	}
	if types.Double.MatchesLiteral(operand) {
		return nil
	}

	v, err := c.scopes.Lookup(operand)
	if err != nil {
		return err
	}
	if !v.Type.AllowedInCondition() {
		return diagnostic.Errorf(diagnostic.ConditionTypeNotAllowed,
			"invalid condition type: %s", v.Type)
	}
	if !v.Initialized {
		return diagnostic.Errorf(diagnostic.UninitializedUse,
			"variable used before initialization: %s", operand)
	}
	return nil
}

// checkBlockEnd closes the innermost scope; a brace closing a method requires
// the directly preceding validated line to be "return;".
func (c *Checker) checkBlockEnd() *diagnostic.Error {
	wasMethodEnd := c.scopes.AtMethodEnd()
	if wasMethodEnd && !c.lastWasReturn {
		return diagnostic.Errorf(diagnostic.MissingReturn,
			"missing return statement at method end")
	}
	return c.scopes.Exit(wasMethodEnd)
}

func (c *Checker) checkReturn() *diagnostic.Error {
	if !c.scopes.InMethod() {
		return diagnostic.Errorf(diagnostic.ReturnOutsideMethod,
			"return statement outside method")
	}
	return nil
}

// checkMethodCall validates a call line against the method registry.
func (c *Checker) checkMethodCall(line string) *diagnostic.Error {
	if !c.scopes.InMethod() {
		return diagnostic.Errorf(diagnostic.CallOutsideMethod,
			"method call outside method body")
	}

	m := methodCallRe.FindStringSubmatch(line)
	if m == nil {
		return diagnostic.Errorf(diagnostic.InvalidLineFormat, "invalid method call format")
	}

	var args []string
	if strings.TrimSpace(m[2]) != "" {
		args = lexer.SplitTopLevel(m[2], ',')
	}
	return c.methods.ValidateCall(m[1], args, c.checkValue)
}

// splitLogical splits a condition on || and && outside quoted literals,
// discarding the operators.
func splitLogical(s string) []string {
	var parts []string
	start := 0
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
		case '|', '&':
			if !inSingle && !inDouble && i+1 < len(s) && s[i+1] == s[i] {
				parts = append(parts, s[start:i])
				start = i + 2
				i++
			}
		}
	}
	return append(parts, s[start:])
}
