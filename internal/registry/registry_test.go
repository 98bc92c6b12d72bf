package registry

import (
	"strings"
	"testing"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/types"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	if err := r.Register("foo", []Param{{Name: "a", Type: types.Int}}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	sig, err := r.Lookup("foo")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if sig.Name != "foo" || len(sig.Params) != 1 {
		t.Errorf("unexpected signature: %+v", sig)
	}

	_, err = r.Lookup("bar")
	if err == nil {
		t.Fatal("expected lookup of unknown method to fail")
	}
	if err.Code != diagnostic.MethodNotFound {
		t.Errorf("expected MethodNotFound, got %v", err.Code)
	}
}

func TestOverloadNotAllowed(t *testing.T) {
	r := New()
	if err := r.Register("calc", nil); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// A different parameter list does not make overloading legal.
	err := r.Register("calc", []Param{{Name: "x", Type: types.Double}})
	if err == nil {
		t.Fatal("expected overload error")
	}
	if err.Code != diagnostic.OverloadNotAllowed {
		t.Errorf("expected OverloadNotAllowed, got %v", err.Code)
	}
}

func TestRegisterInvalidName(t *testing.T) {
	if err := New().Register("_foo", nil); err == nil {
		t.Fatal("expected error for method name not starting with a letter")
	}
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		list  string
		want  []Param
		error diagnostic.Code
		fails bool
	}{
		{
			name: "empty list",
			list: "   ",
		},
		{
			name: "single",
			list: "int a",
			want: []Param{{Name: "a", Type: types.Int}},
		},
		{
			name: "final and plain",
			list: "final double d, String s",
			want: []Param{
				{Name: "d", Type: types.Double, Final: true},
				{Name: "s", Type: types.Text},
			},
		},
		{
			name:  "missing name",
			list:  "int",
			error: diagnostic.InvalidParameter,
			fails: true,
		},
		{
			name:  "too many tokens",
			list:  "final int a b",
			error: diagnostic.InvalidParameter,
			fails: true,
		},
		{
			name:  "three tokens without final",
			list:  "static int a",
			error: diagnostic.InvalidParameter,
			fails: true,
		},
		{
			name:  "unknown type",
			list:  "float f",
			error: diagnostic.InvalidParameter,
			fails: true,
		},
		{
			name:  "bad identifier",
			list:  "int __x",
			error: diagnostic.InvalidParameter,
			fails: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ParseParams(tt.list)
			if tt.fails {
				if err == nil {
					t.Fatal("expected error")
				}
				if err.Code != tt.error {
					t.Errorf("expected %v, got %v", tt.error, err.Code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(params) != len(tt.want) {
				t.Fatalf("got %d params, want %d", len(params), len(tt.want))
			}
			for i, p := range params {
				if p != tt.want[i] {
					t.Errorf("param %d = %+v, want %+v", i, p, tt.want[i])
				}
			}
		})
	}
}

func TestValidateCallArity(t *testing.T) {
	r := New()
	if err := r.Register("foo", []Param{{Name: "a", Type: types.Int}}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pass := func(types.Type, string) *diagnostic.Error { return nil }

	if err := r.ValidateCall("foo", []string{"5"}, pass); err != nil {
		t.Errorf("expected call to validate, got %v", err)
	}

	err := r.ValidateCall("foo", []string{"5", "6"}, pass)
	if err == nil {
		t.Fatal("expected arity error")
	}
	if err.Code != diagnostic.ArityMismatch {
		t.Errorf("expected ArityMismatch, got %v", err.Code)
	}
	if !strings.Contains(err.Message, "expects 1") {
		t.Errorf("unexpected message: %s", err.Message)
	}
}

func TestValidateCallChecksEachArgument(t *testing.T) {
	r := New()
	if err := r.Register("f", []Param{
		{Name: "a", Type: types.Int},
		{Name: "b", Type: types.Text},
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	var seen []types.Type
	err := r.ValidateCall("f", []string{"5", `"s"`}, func(target types.Type, value string) *diagnostic.Error {
		seen = append(seen, target)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[0] != types.Int || seen[1] != types.Text {
		t.Errorf("arguments checked against wrong targets: %v", seen)
	}

	boom := diagnostic.Errorf(diagnostic.TypeIncompatible, "nope")
	err = r.ValidateCall("f", []string{"5", "6"}, func(target types.Type, value string) *diagnostic.Error {
		if target == types.Text {
			return boom
		}
		return nil
	})
	if err != boom {
		t.Errorf("expected argument error to propagate, got %v", err)
	}
}

func TestValidateCallEmptyArgument(t *testing.T) {
	r := New()
	if err := r.Register("f", []Param{{Name: "a", Type: types.Int}}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pass := func(types.Type, string) *diagnostic.Error { return nil }
	if err := r.ValidateCall("f", []string{"  "}, pass); err == nil {
		t.Fatal("expected error for empty argument")
	}
}
