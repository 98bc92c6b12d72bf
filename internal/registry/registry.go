package registry

import (
	"strings"

	"github.com/sjava-lang/sjavac/internal/diagnostic"
	"github.com/sjava-lang/sjavac/internal/lexer"
	"github.com/sjava-lang/sjavac/internal/types"
)

// Param is one formal parameter of a method signature.
type Param struct {
	Name  string
	Type  types.Type
	Final bool
}

// Signature is a method's name and ordered parameter list. Signatures are
// immutable once registered.
type Signature struct {
	Name   string
	Params []Param
}

// Registry holds the set of declared method signatures for one file.
type Registry struct {
	methods map[string]*Signature
}

// New creates an empty method registry.
func New() *Registry {
	return &Registry{
		methods: make(map[string]*Signature),
	}
}

// Register stores a new signature. Method names must start with a letter, and
// a second method with the same name is an overloading error regardless of
// its parameter list.
func (r *Registry) Register(name string, params []Param) *diagnostic.Error {
	if !lexer.IsIdentifier(name) {
		return diagnostic.Errorf(diagnostic.InvalidLineFormat, "invalid method name: %s", name)
	}
	if _, exists := r.methods[name]; exists {
		return diagnostic.Errorf(diagnostic.OverloadNotAllowed,
			"method overloading is not allowed: %s", name)
	}
	r.methods[name] = &Signature{Name: name, Params: params}
	return nil
}

// Lookup resolves a method name or fails with MethodNotFound.
func (r *Registry) Lookup(name string) (*Signature, *diagnostic.Error) {
	sig, ok := r.methods[name]
	if !ok {
		return nil, diagnostic.Errorf(diagnostic.MethodNotFound, "method not declared: %s", name)
	}
	return sig, nil
}

// ValidateCall checks a call site against the registered signature: the
// argument count must match the parameter count, and each argument value must
// be assignable to its formal parameter. The check callback validates one
// value against a target type (literal shape, or a resolved initialized
// variable of a compatible type).
func (r *Registry) ValidateCall(name string, args []string,
	check func(target types.Type, value string) *diagnostic.Error) *diagnostic.Error {

	sig, err := r.Lookup(name)
	if err != nil {
		return err
	}

	if len(args) != len(sig.Params) {
		return diagnostic.Errorf(diagnostic.ArityMismatch,
			"method %s expects %d arguments, got %d", name, len(sig.Params), len(args))
	}

	for i, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return diagnostic.Errorf(diagnostic.InvalidLineFormat,
				"empty argument in call to %s", name)
		}
		if err := check(sig.Params[i].Type, arg); err != nil {
			return err
		}
	}
	return nil
}

// ParseParams parses the text between the parentheses of a method
// declaration. Each entry is "[final] type identifier"; anything else fails
// with InvalidParameter. An all-whitespace list is empty.
func ParseParams(list string) ([]Param, *diagnostic.Error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	entries := lexer.SplitTopLevel(list, ',')
	params := make([]Param, 0, len(entries))
	for _, entry := range entries {
		tokens := strings.Fields(entry)
		if len(tokens) < 2 || len(tokens) > 3 {
			return nil, diagnostic.Errorf(diagnostic.InvalidParameter,
				"invalid parameter format: %s", strings.TrimSpace(entry))
		}

		isFinal := false
		typeIndex := 0
		if len(tokens) == 3 {
			if tokens[0] != lexer.FinalKeyword {
				return nil, diagnostic.Errorf(diagnostic.InvalidParameter,
					"invalid parameter modifier: %s", tokens[0])
			}
			isFinal = true
			typeIndex = 1
		}

		typ, ok := types.Parse(tokens[typeIndex])
		if !ok {
			return nil, diagnostic.Errorf(diagnostic.InvalidParameter,
				"invalid parameter type: %s", tokens[typeIndex])
		}

		name := tokens[typeIndex+1]
		if !lexer.IsVariableName(name) {
			return nil, diagnostic.Errorf(diagnostic.InvalidParameter,
				"invalid parameter name: %s", name)
		}

		params = append(params, Param{Name: name, Type: typ, Final: isFinal})
	}
	return params, nil
}
