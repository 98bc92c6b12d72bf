package scope

import (
	"testing"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/types"
)

func TestDeclareAndResolve(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Declare("g", types.Int, false, true); err != nil {
		t.Fatalf("global declare failed: %v", err)
	}

	v, ok := tbl.Resolve("g")
	if !ok {
		t.Fatal("expected g to resolve")
	}
	if v.Type != types.Int || !v.Initialized || v.Final {
		t.Errorf("unexpected variable state: %+v", v)
	}

	if _, ok := tbl.Resolve("missing"); ok {
		t.Error("expected missing to not resolve")
	}
}

func TestDuplicateInScope(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Declare("x", types.Int, false, false); err != nil {
		t.Fatalf("declare failed: %v", err)
	}

	err := tbl.Declare("x", types.Double, false, false)
	if err == nil {
		t.Fatal("expected duplicate declaration error")
	}
	if err.Code != diagnostic.DuplicateInScope {
		t.Errorf("expected DuplicateInScope, got %v", err.Code)
	}
}

func TestReservedNamePrefix(t *testing.T) {
	tbl := NewTable()
	err := tbl.Declare("__x", types.Int, false, false)
	if err == nil {
		t.Fatal("expected reserved name error")
	}
	if err.Code != diagnostic.ReservedName {
		t.Errorf("expected ReservedName, got %v", err.Code)
	}
}

func TestShadowingAcrossScopes(t *testing.T) {
	tbl := NewTable()
	tbl.Enter(true)
	if err := tbl.Declare("x", types.Int, false, true); err != nil {
		t.Fatalf("method-scope declare failed: %v", err)
	}

	tbl.Enter(false)
	if err := tbl.Declare("x", types.Text, false, true); err != nil {
		t.Fatalf("expected shadowing in nested block to succeed, got %v", err)
	}

	v, _ := tbl.Resolve("x")
	if v.Type != types.Text {
		t.Errorf("expected innermost binding, got type %v", v.Type)
	}

	if err := tbl.Exit(false); err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	v, _ = tbl.Resolve("x")
	if v.Type != types.Int {
		t.Errorf("expected outer binding after exit, got type %v", v.Type)
	}
}

func TestBlockVariableDestroyedOnExit(t *testing.T) {
	tbl := NewTable()
	tbl.Enter(true)
	tbl.Enter(false)
	if err := tbl.Declare("inner", types.Int, false, true); err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if err := tbl.Exit(false); err != nil {
		t.Fatalf("exit failed: %v", err)
	}

	if _, ok := tbl.Resolve("inner"); ok {
		t.Error("expected inner to be destroyed with its scope")
	}
}

func TestAssignMutatesResolvedBinding(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Declare("g", types.Int, false, false); err != nil {
		t.Fatalf("declare failed: %v", err)
	}

	tbl.Enter(true)
	tbl.Enter(false)
	if err := tbl.Assign("g"); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	tbl.Exit(false)
	tbl.Exit(true)

	v, _ := tbl.Resolve("g")
	if !v.Initialized {
		t.Error("expected assignment from nested scope to mutate the global binding")
	}
}

func TestAssignNotDeclared(t *testing.T) {
	tbl := NewTable()
	err := tbl.Assign("ghost")
	if err == nil {
		t.Fatal("expected error for undeclared assignment")
	}
	if err.Code != diagnostic.NotDeclared {
		t.Errorf("expected NotDeclared, got %v", err.Code)
	}
}

func TestReassignFinal(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Declare("c", types.Int, true, true); err != nil {
		t.Fatalf("declare failed: %v", err)
	}

	err := tbl.Assign("c")
	if err == nil {
		t.Fatal("expected reassign-final error")
	}
	if err.Code != diagnostic.ReassignFinal {
		t.Errorf("expected ReassignFinal, got %v", err.Code)
	}
}

func TestFinalUninitializedMayBeAssignedOnce(t *testing.T) {
	tbl := NewTable()
	tbl.Enter(true)
	if err := tbl.Declare("c", types.Int, true, false); err != nil {
		t.Fatalf("declare failed: %v", err)
	}

	if err := tbl.Assign("c"); err != nil {
		t.Fatalf("first assignment to uninitialized final should succeed, got %v", err)
	}
	if err := tbl.Assign("c"); err == nil {
		t.Fatal("second assignment to final should fail")
	}
}

func TestDeclareParameter(t *testing.T) {
	tbl := NewTable()

	// Outside a method frame parameters are illegal.
	if err := tbl.DeclareParameter("p", types.Int, false); err == nil {
		t.Fatal("expected error declaring parameter outside method scope")
	}

	tbl.Enter(true)
	if err := tbl.DeclareParameter("p", types.Int, false); err != nil {
		t.Fatalf("parameter declare failed: %v", err)
	}

	v, _ := tbl.Resolve("p")
	if !v.Initialized {
		t.Error("parameters must be bound as initialized")
	}

	err := tbl.DeclareParameter("p", types.Double, false)
	if err == nil {
		t.Fatal("expected duplicate parameter error")
	}
	if err.Code != diagnostic.DuplicateParameter {
		t.Errorf("expected DuplicateParameter, got %v", err.Code)
	}
}

func TestExitMismatches(t *testing.T) {
	tbl := NewTable()
	err := tbl.Exit(false)
	if err == nil || err.Code != diagnostic.MismatchedScopeEnd {
		t.Errorf("expected MismatchedScopeEnd on empty stack, got %v", err)
	}

	tbl.Enter(false)
	err = tbl.Exit(true)
	if err == nil || err.Code != diagnostic.MismatchedScopeEnd {
		t.Errorf("expected MismatchedScopeEnd closing block as method, got %v", err)
	}
}

func TestMethodTracking(t *testing.T) {
	tbl := NewTable()
	if tbl.InMethod() || tbl.AtMethodEnd() {
		t.Fatal("fresh table should not be inside a method")
	}

	tbl.Enter(true)
	if !tbl.InMethod() || !tbl.AtMethodEnd() {
		t.Error("expected method frame on top")
	}

	tbl.Enter(false)
	if !tbl.InMethod() {
		t.Error("nested block should still be inside the method")
	}
	if tbl.AtMethodEnd() {
		t.Error("top frame is a block, not a method")
	}

	tbl.Exit(false)
	if err := tbl.Exit(true); err != nil {
		t.Fatalf("method exit failed: %v", err)
	}
	if tbl.InMethod() {
		t.Error("expected method flag cleared after method exit")
	}
}
