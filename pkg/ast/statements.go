package ast

import (
	"errors"

	"github.com/maslov-k/cpp-mython/pkg/runtime"
)

// Assignment evaluates Rhs, binds env[Name] to the result, and yields
// that same result.
type Assignment struct {
	Name string
	Rhs  Statement
}

func (*Assignment) NodeType() NodeType { return NodeAssignment }

func (a *Assignment) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	v, err := a.Rhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	env.Define(a.Name, v)
	return v, nil
}

// FieldAssignment resolves Object (which must land on an Instance),
// stores Rhs's value under Field in its shared Fields map, and yields
// that value.
type FieldAssignment struct {
	Object *VariableValue
	Field  string
	Rhs    Statement
}

func (*FieldAssignment) NodeType() NodeType { return NodeFieldAssignment }

func (f *FieldAssignment) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	target, err := f.Object.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	inst, ok := target.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewError(runtime.ErrNotAClass, "%s is not a class", f.Object.Name)
	}
	v, err := f.Rhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	inst.Fields.Define(f.Field, v)
	return v, nil
}

// Print evaluates each argument left to right, joins them with a
// single space, and terminates with a newline. An empty Args list
// still writes the terminator (spec.md §8 scenario 1's bare `print`).
type Print struct{ Args []Statement }

func (*Print) NodeType() NodeType { return NodePrint }

func (p *Print) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	out := ctx.OutputStream()
	for i, arg := range p.Args {
		if i > 0 {
			if _, err := out.Write([]byte{' '}); err != nil {
				return nil, err
			}
		}
		v, err := arg.Execute(env, ctx)
		if err != nil {
			return nil, err
		}
		if err := runtime.Print(out, v, ctx); err != nil {
			return nil, err
		}
	}
	if _, err := out.Write([]byte{'\n'}); err != nil {
		return nil, err
	}
	return runtime.NoneValue, nil
}

// MethodCall evaluates Object to an Instance, evaluates Args left to
// right, and invokes the named method on it.
type MethodCall struct {
	Object Statement
	Method string
	Args   []Statement
}

func (*MethodCall) NodeType() NodeType { return NodeMethodCall }

func (m *MethodCall) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	target, err := m.Object.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	inst, ok := target.(*runtime.Instance)
	if !ok {
		return nil, runtime.NewError(runtime.ErrNotAClass, "object is not a class")
	}
	args, err := evalArgs(m.Args, env, ctx)
	if err != nil {
		return nil, err
	}
	return inst.Call(m.Method, args, ctx)
}

// Compound executes its children in source order. Its own result is
// always None; a Return unwinding through it propagates untouched.
type Compound struct{ Children []Statement }

func (*Compound) NodeType() NodeType { return NodeCompound }

func (c *Compound) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	for _, child := range c.Children {
		if _, err := child.Execute(env, ctx); err != nil {
			return nil, err
		}
	}
	return runtime.NoneValue, nil
}

// Return evaluates Expr and performs the non-local exit described in
// signals.go: it is caught exactly once, by the innermost MethodBody.
type Return struct{ Expr Statement }

func (*Return) NodeType() NodeType { return NodeReturn }

func (r *Return) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	v, err := r.Expr.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	return nil, &ReturnSignal{Value: v}
}

// MethodBody executes Body; a Return unwinding through it becomes its
// result, and normal completion yields None.
type MethodBody struct{ Body Statement }

func (*MethodBody) NodeType() NodeType { return NodeMethodBody }

func (m *MethodBody) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	_, err := m.Body.Execute(env, ctx)
	if err == nil {
		return runtime.NoneValue, nil
	}
	var ret *ReturnSignal
	if errors.As(err, &ret) {
		return ret.Value, nil
	}
	return nil, err
}

// ClassDefinition binds Class.Name to Class in env and yields None.
type ClassDefinition struct{ Class *runtime.Class }

func (*ClassDefinition) NodeType() NodeType { return NodeClassDefinition }

func (c *ClassDefinition) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	env.Define(c.Class.Name, c.Class)
	return runtime.NoneValue, nil
}

// IfElse evaluates Cond and executes Then or Else accordingly. Else
// may be nil, in which case a false condition yields None.
type IfElse struct {
	Cond, Then, Else Statement
}

func (*IfElse) NodeType() NodeType { return NodeIfElse }

func (i *IfElse) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	cond, err := i.Cond.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	if runtime.IsTrue(cond) {
		return i.Then.Execute(env, ctx)
	}
	if i.Else != nil {
		return i.Else.Execute(env, ctx)
	}
	return runtime.NoneValue, nil
}

// NewInstance allocates a fresh Instance of Class, calls __init__ if
// one matches Args' arity, and yields the instance itself (by
// reference identity, since *runtime.Instance is already a pointer).
type NewInstance struct {
	Class *runtime.Class
	Args  []Statement
}

func (*NewInstance) NodeType() NodeType { return NodeNewInstance }

func (n *NewInstance) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	args, err := evalArgs(n.Args, env, ctx)
	if err != nil {
		return nil, err
	}
	inst := runtime.NewInstance(n.Class)
	if n.Class.HasMethod("__init__", len(args)) {
		if _, err := inst.Call("__init__", args, ctx); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Program is the executable root produced by the parser: a bare
// Compound over the whole source, executed against the global
// environment with no enclosing MethodBody (see SPEC_FULL.md's
// supplemented-features note on original_source/mython/main.cpp).
type Program struct{ Body Statement }

func (*Program) NodeType() NodeType { return NodeProgram }

func (p *Program) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	return p.Body.Execute(env, ctx)
}

func evalArgs(args []Statement, env *runtime.Environment, ctx runtime.Context) ([]runtime.Value, error) {
	out := make([]runtime.Value, len(args))
	for i, arg := range args {
		v, err := arg.Execute(env, ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
