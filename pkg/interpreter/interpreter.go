// Package interpreter drives execution of a parsed Mython program,
// following the shape of the teacher's own Interpreter type
// (able/interpreter10-go/pkg/interpreter): a small struct owning the
// global environment, with a single entry point that runs a module
// and normalizes the ways execution can end.
package interpreter

import (
	"errors"

	"github.com/maslov-k/cpp-mython/pkg/ast"
	"github.com/maslov-k/cpp-mython/pkg/runtime"
)

// Interpreter owns the global environment a program's top-level
// statements execute against.
type Interpreter struct {
	global *runtime.Environment
}

// New returns an Interpreter with a fresh, empty global environment.
func New() *Interpreter {
	return &Interpreter{global: runtime.NewEnvironment()}
}

// GlobalEnvironment exposes the interpreter's global scope, mainly for
// tests that want to seed or inspect bindings directly.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Run executes program's root against the global environment. A
// Return that escapes every method body (there is none at the top
// level) is reported as ErrReturnOutsideMethod rather than as a raw
// unwind signal, per spec.md §7.
func (i *Interpreter) Run(program *ast.Program, ctx runtime.Context) (runtime.Value, error) {
	val, err := program.Execute(i.global, ctx)
	if err == nil {
		return val, nil
	}
	var ret *ast.ReturnSignal
	if errors.As(err, &ret) {
		return nil, runtime.NewError(runtime.ErrReturnOutsideMethod, "return statement outside of a method body")
	}
	return nil, err
}
