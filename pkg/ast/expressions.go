package ast

import "github.com/maslov-k/cpp-mython/pkg/runtime"

// NumberLiteral evaluates to a fixed runtime.Number.
type NumberLiteral struct{ Value int64 }

func (*NumberLiteral) NodeType() NodeType { return NodeNumberLiteral }

func (n *NumberLiteral) Execute(*runtime.Environment, runtime.Context) (runtime.Value, error) {
	return runtime.Number{Val: n.Value}, nil
}

// StringLiteral evaluates to a fixed runtime.String.
type StringLiteral struct{ Value string }

func (*StringLiteral) NodeType() NodeType { return NodeStringLiteral }

func (s *StringLiteral) Execute(*runtime.Environment, runtime.Context) (runtime.Value, error) {
	return runtime.String{Val: s.Value}, nil
}

// BoolLiteral evaluates to a fixed runtime.Bool.
type BoolLiteral struct{ Value bool }

func (*BoolLiteral) NodeType() NodeType { return NodeBoolLiteral }

func (b *BoolLiteral) Execute(*runtime.Environment, runtime.Context) (runtime.Value, error) {
	return runtime.Bool{Val: b.Value}, nil
}

// NoneLiteral evaluates to runtime.NoneValue.
type NoneLiteral struct{}

func (*NoneLiteral) NodeType() NodeType { return NodeNoneLiteral }

func (*NoneLiteral) Execute(*runtime.Environment, runtime.Context) (runtime.Value, error) {
	return runtime.NoneValue, nil
}

// VariableValue resolves Name in env, then walks Tail as dotted field
// access. Every hop but the last must land on an Instance; dotted
// access reads straight from the instance's shared Fields map, so
// mutation through one alias is visible through another (spec.md §3).
type VariableValue struct {
	Name string
	Tail []string
}

func (*VariableValue) NodeType() NodeType { return NodeVariableValue }

func (v *VariableValue) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	cur, ok := env.Get(v.Name)
	if !ok {
		return nil, runtime.NewError(runtime.ErrUndefinedName, "name %q is not defined", v.Name)
	}
	name := v.Name
	for _, field := range v.Tail {
		inst, ok := cur.(*runtime.Instance)
		if !ok {
			return nil, runtime.NewError(runtime.ErrNotAClass, "%s is not a class", name)
		}
		cur, ok = inst.Fields.Get(field)
		if !ok {
			return nil, runtime.NewError(runtime.ErrUndefinedName, "field %q is not defined", field)
		}
		name = field
	}
	return cur, nil
}

// Stringify renders Arg to its canonical text form, per spec.md §4.3.
type Stringify struct{ Arg Statement }

func (*Stringify) NodeType() NodeType { return NodeStringify }

func (s *Stringify) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	v, err := s.Arg.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.Stringify(v, ctx)
}

// Add supports Number+Number, String+String, and falls back to
// __add__ when the left operand is an Instance.
type Add struct{ Lhs, Rhs Statement }

func (*Add) NodeType() NodeType { return NodeAdd }

func (a *Add) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	lhs, rhs, err := evalPair(a.Lhs, a.Rhs, env, ctx)
	if err != nil {
		return nil, err
	}
	if l, ok := lhs.(runtime.Number); ok {
		if r, ok := rhs.(runtime.Number); ok {
			return runtime.Number{Val: l.Val + r.Val}, nil
		}
	}
	if l, ok := lhs.(runtime.String); ok {
		if r, ok := rhs.(runtime.String); ok {
			return runtime.String{Val: l.Val + r.Val}, nil
		}
	}
	if inst, ok := lhs.(*runtime.Instance); ok {
		return inst.Call("__add__", []runtime.Value{rhs}, ctx)
	}
	return nil, runtime.NewError(runtime.ErrTypeMismatch, "cannot add %s and %s", kindName(lhs), kindName(rhs))
}

// Sub, Mult, and Div all require Number operands.
type Sub struct{ Lhs, Rhs Statement }

func (*Sub) NodeType() NodeType { return NodeSub }

func (s *Sub) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	l, r, err := evalNumberPair(s.Lhs, s.Rhs, env, ctx, "subtract")
	if err != nil {
		return nil, err
	}
	return runtime.Number{Val: l - r}, nil
}

type Mult struct{ Lhs, Rhs Statement }

func (*Mult) NodeType() NodeType { return NodeMult }

func (m *Mult) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	l, r, err := evalNumberPair(m.Lhs, m.Rhs, env, ctx, "multiply")
	if err != nil {
		return nil, err
	}
	return runtime.Number{Val: l * r}, nil
}

type Div struct{ Lhs, Rhs Statement }

func (*Div) NodeType() NodeType { return NodeDiv }

func (d *Div) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	l, r, err := evalNumberPair(d.Lhs, d.Rhs, env, ctx, "divide")
	if err != nil {
		return nil, err
	}
	if r == 0 {
		return nil, runtime.NewError(runtime.ErrDivByZero, "division by zero")
	}
	return runtime.Number{Val: l / r}, nil
}

// Or, And, and Not always yield Bool and short-circuit as specified.
type Or struct{ Lhs, Rhs Statement }

func (*Or) NodeType() NodeType { return NodeOr }

func (o *Or) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	lhs, err := o.Lhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	if runtime.IsTrue(lhs) {
		return runtime.Bool{Val: true}, nil
	}
	rhs, err := o.Rhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: runtime.IsTrue(rhs)}, nil
}

type And struct{ Lhs, Rhs Statement }

func (*And) NodeType() NodeType { return NodeAnd }

func (a *And) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	lhs, err := a.Lhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	if !runtime.IsTrue(lhs) {
		return runtime.Bool{Val: false}, nil
	}
	rhs, err := a.Rhs.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: runtime.IsTrue(rhs)}, nil
}

type Not struct{ Arg Statement }

func (*Not) NodeType() NodeType { return NodeNot }

func (n *Not) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	v, err := n.Arg.Execute(env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: !runtime.IsTrue(v)}, nil
}

// Comparator is one of runtime's polymorphic comparison functions
// (Equal, Less, NotEqual, Greater, LessOrEqual, GreaterOrEqual).
type Comparator func(lhs, rhs runtime.Value, ctx runtime.Context) (bool, error)

// Comparison applies Cmp to the evaluated operands and always yields
// a Bool.
type Comparison struct {
	Cmp      Comparator
	Lhs, Rhs Statement
}

func (*Comparison) NodeType() NodeType { return NodeComparison }

func (c *Comparison) Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error) {
	lhs, rhs, err := evalPair(c.Lhs, c.Rhs, env, ctx)
	if err != nil {
		return nil, err
	}
	result, err := c.Cmp(lhs, rhs, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.Bool{Val: result}, nil
}

func evalPair(lhs, rhs Statement, env *runtime.Environment, ctx runtime.Context) (runtime.Value, runtime.Value, error) {
	l, err := lhs.Execute(env, ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := rhs.Execute(env, ctx)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func evalNumberPair(lhs, rhs Statement, env *runtime.Environment, ctx runtime.Context, verb string) (int64, int64, error) {
	l, r, err := evalPair(lhs, rhs, env, ctx)
	if err != nil {
		return 0, 0, err
	}
	ln, ok := l.(runtime.Number)
	if !ok {
		return 0, 0, runtime.NewError(runtime.ErrTypeMismatch, "cannot %s %s and %s", verb, kindName(l), kindName(r))
	}
	rn, ok := r.(runtime.Number)
	if !ok {
		return 0, 0, runtime.NewError(runtime.ErrTypeMismatch, "cannot %s %s and %s", verb, kindName(l), kindName(r))
	}
	return ln.Val, rn.Val, nil
}

func kindName(v runtime.Value) runtime.Kind {
	if v == nil {
		return runtime.KindNone
	}
	return v.Kind()
}
