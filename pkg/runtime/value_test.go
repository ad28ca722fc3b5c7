package runtime

import (
	"bytes"
	"testing"
)

func TestIsTrue(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Bool{Val: true}, true},
		{Bool{Val: false}, false},
		{NoneValue, false},
		{NewInstance(NewClass("C", nil, nil)), false},
		{Number{Val: 0}, false},
		{Number{Val: 1}, true},
		{String{Val: ""}, false},
		{String{Val: "x"}, true},
	}
	for _, c := range cases {
		if got := IsTrue(c.v); got != c.want {
			t.Errorf("IsTrue(%#v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestPrintScalars(t *testing.T) {
	ctx := NewStreamContext(nil)
	cases := []struct {
		v    Value
		want string
	}{
		{Number{Val: -8}, "-8"},
		{String{Val: "hello"}, "hello"},
		{Bool{Val: true}, "True"},
		{Bool{Val: false}, "False"},
		{NoneValue, "None"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := Print(&buf, c.v, ctx); err != nil {
			t.Fatalf("Print(%#v): %v", c.v, err)
		}
		if buf.String() != c.want {
			t.Errorf("Print(%#v) = %q, want %q", c.v, buf.String(), c.want)
		}
	}
}

func TestPrintInstanceFallsBackToStrDunder(t *testing.T) {
	strMethod := Method{
		Name: "__str__",
		Body: literalReturn(String{Val: "custom"}),
	}
	class := NewClass("Widget", []Method{strMethod}, nil)
	inst := NewInstance(class)
	ctx := NewStreamContext(nil)

	var buf bytes.Buffer
	if err := Print(&buf, inst, ctx); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if buf.String() != "custom" {
		t.Errorf("got %q, want %q", buf.String(), "custom")
	}
}

func TestStringifyNumber(t *testing.T) {
	ctx := NewStreamContext(nil)
	v, err := Stringify(Number{Val: 42}, ctx)
	if err != nil {
		t.Fatalf("Stringify: %v", err)
	}
	s, ok := v.(String)
	if !ok || s.Val != "42" {
		t.Fatalf("got %#v, want String{42}", v)
	}
}

// literalReturn builds a Statement that always returns v, used to
// stand in for a compiled method body in tests that don't need the
// parser.
func literalReturn(v Value) Statement {
	return literalStatement{v: v}
}

type literalStatement struct{ v Value }

func (l literalStatement) Execute(*Environment, Context) (Value, error) { return l.v, nil }
