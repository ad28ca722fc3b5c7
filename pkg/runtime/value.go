// Package runtime implements Mython's value/object model: number,
// string, bool, none, class, and instance values, together with
// truthiness, method resolution, and the polymorphic comparison and
// printing rules operators fall back to.
package runtime

import (
	"fmt"
	"io"
	"strings"
)

// Kind identifies the runtime value's tag.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNone
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNone:
		return "None"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the shared behaviour for every runtime value.
type Value interface {
	Kind() Kind
}

// Number is a machine-width signed integer. Overflow wraps using
// native two's-complement arithmetic, matching Go's untyped int64
// semantics rather than trapping (spec.md §9 leaves this open;
// DESIGN.md records the decision).
type Number struct {
	Val int64
}

func (Number) Kind() Kind { return KindNumber }

// String holds immutable bytes.
type String struct {
	Val string
}

func (String) Kind() Kind { return KindString }

// Bool is a boolean value.
type Bool struct {
	Val bool
}

func (Bool) Kind() Kind { return KindBool }

// None is Mython's distinguished empty holder. All None values are
// interchangeable; there is exactly one meaningful zero value.
type None struct{}

func (None) Kind() Kind { return KindNone }

// NoneValue is the canonical None instance, handed out by the
// executor wherever spec.md calls for "an empty holder".
var NoneValue Value = None{}

// IsTrue implements the truthiness rule from spec.md §4.2. An
// Instance is always false under this rule, notably even when it
// defines __bool__-like semantics elsewhere Mython has none.
func IsTrue(v Value) bool {
	switch t := v.(type) {
	case Number:
		return t.Val != 0
	case Bool:
		return t.Val
	case String:
		return t.Val != ""
	default:
		return false
	}
}

// Print writes v's canonical text form to w, per spec.md §4.2's
// printing table. Instances with a __str__/0 method recurse through
// it; instances without one print a stable identity marker.
func Print(w io.Writer, v Value, ctx Context) error {
	switch t := v.(type) {
	case Number:
		_, err := fmt.Fprintf(w, "%d", t.Val)
		return err
	case Bool:
		if t.Val {
			_, err := io.WriteString(w, "True")
			return err
		}
		_, err := io.WriteString(w, "False")
		return err
	case String:
		_, err := io.WriteString(w, t.Val)
		return err
	case None, nil:
		_, err := io.WriteString(w, "None")
		return err
	case *Class:
		_, err := fmt.Fprintf(w, "Class %s", t.Name)
		return err
	case *Instance:
		if t.Class.HasMethod("__str__", 0) {
			result, err := t.Call("__str__", nil, ctx)
			if err != nil {
				return err
			}
			return Print(w, result, ctx)
		}
		_, err := fmt.Fprintf(w, "%s object at %p", t.Class.Name, t)
		return err
	default:
		return fmt.Errorf("runtime: unprintable value %T", v)
	}
}

// Stringify renders v to its canonical text form as a Value, used by
// ast.Stringify and by string-conversion callers generally.
func Stringify(v Value, ctx Context) (Value, error) {
	var sb strings.Builder
	if err := Print(&sb, v, ctx); err != nil {
		return nil, err
	}
	return String{Val: sb.String()}, nil
}
