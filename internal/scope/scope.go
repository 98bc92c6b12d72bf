package scope

import (
	"strings"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/types"
)

// Variable represents one declared name and its state. Type and Final are
// fixed at declaration; only Initialized may change afterwards.
type Variable struct {
	Name        string
	Type        types.Type
	Final       bool
	Initialized bool
}

// frame is one scope level. Method frames mark that closing them closes a
// method.
type frame struct {
	vars   map[string]*Variable
	method bool
}

// Table owns the global bindings and the stack of nested scope frames for one
// validation run. A fresh Table is the reset state; nothing is shared between
// runs.
type Table struct {
	global   map[string]*Variable
	stack    []*frame
	inMethod bool
}

// NewTable creates an empty scope table with only the global scope.
func NewTable() *Table {
	return &Table{
		global: make(map[string]*Variable),
	}
}

// Enter pushes a new scope frame. Method frames additionally mark the table
// as inside a method.
func (t *Table) Enter(isMethod bool) {
	if isMethod {
		t.inMethod = true
	}
	t.stack = append(t.stack, &frame{
		vars:   make(map[string]*Variable),
		method: isMethod,
	})
}

// Exit pops the top scope frame. isMethodEnd asserts that the popped frame is
// a method frame; a mismatch, or an empty stack, is a validation error.
func (t *Table) Exit(isMethodEnd bool) *diagnostic.Error {
	if len(t.stack) == 0 {
		return diagnostic.Errorf(diagnostic.MismatchedScopeEnd, "unexpected scope end")
	}
	top := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	if isMethodEnd {
		if !top.method {
			return diagnostic.Errorf(diagnostic.MismatchedScopeEnd, "mismatched scope end")
		}
		t.inMethod = false
	}
	return nil
}

// DeclareParameter binds a method parameter in the current frame, which must
// be a method frame. Parameters are always considered initialized.
func (t *Table) DeclareParameter(name string, typ types.Type, isFinal bool) *diagnostic.Error {
	if len(t.stack) == 0 || !t.stack[len(t.stack)-1].method {
		return diagnostic.Errorf(diagnostic.DuplicateParameter,
			"parameter declaration outside method scope: %s", name)
	}
	top := t.stack[len(t.stack)-1]
	if _, exists := top.vars[name]; exists {
		return diagnostic.Errorf(diagnostic.DuplicateParameter,
			"duplicate parameter name: %s", name)
	}
	top.vars[name] = &Variable{Name: name, Type: typ, Final: isFinal, Initialized: true}
	return nil
}

// Declare binds a new variable in the current scope. Names may not start with
// the reserved double underscore prefix, may not collide within the current
// frame, and global declarations may not collide with any resolvable name.
func (t *Table) Declare(name string, typ types.Type, isFinal, isInitialized bool) *diagnostic.Error {
	if strings.HasPrefix(name, "__") {
		return diagnostic.Errorf(diagnostic.ReservedName,
			"variable names cannot start with double underscore: %s", name)
	}

	current := t.global
	if len(t.stack) > 0 {
		current = t.stack[len(t.stack)-1].vars
	}

	if _, exists := current[name]; exists {
		return diagnostic.Errorf(diagnostic.DuplicateInScope,
			"variable already declared in current scope: %s", name)
	}

	// Global names are reserved program-wide.
	if len(t.stack) == 0 {
		if _, ok := t.Resolve(name); ok {
			return diagnostic.Errorf(diagnostic.GlobalConflict,
				"global variable name conflict: %s", name)
		}
	}

	current[name] = &Variable{Name: name, Type: typ, Final: isFinal, Initialized: isInitialized}
	return nil
}

// Resolve searches the scope chain innermost to outermost, then the global
// scope.
func (t *Table) Resolve(name string) (*Variable, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if v, ok := t.stack[i].vars[name]; ok {
			return v, true
		}
	}
	if v, ok := t.global[name]; ok {
		return v, true
	}
	return nil, false
}

// Lookup resolves a name or fails with NotDeclared.
func (t *Table) Lookup(name string) (*Variable, *diagnostic.Error) {
	v, ok := t.Resolve(name)
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.NotDeclared, "variable not declared: %s", name)
	}
	return v, nil
}

// Assign validates an assignment to name and marks the binding initialized.
// The binding found by resolution is mutated in place, including enclosing
// and global bindings; assignment never creates an implicit local shadow.
func (t *Table) Assign(name string) *diagnostic.Error {
	v, err := t.Lookup(name)
	if err != nil {
		return err
	}
	if v.Final && v.Initialized {
		return diagnostic.Errorf(diagnostic.ReassignFinal, "cannot reassign final variable: %s", name)
	}
	v.Initialized = true
	return nil
}

// InMethod reports whether the table is currently inside a method body.
func (t *Table) InMethod() bool {
	return t.inMethod
}

// AtMethodEnd reports whether the top frame is a method frame, i.e. whether
// an upcoming closing brace ends a method.
func (t *Table) AtMethodEnd() bool {
	return len(t.stack) > 0 && t.stack[len(t.stack)-1].method
}

// Depth returns the number of open scope frames.
func (t *Table) Depth() int {
	return len(t.stack)
}
