package parser

import (
	"testing"

	"github.com/maslov-k/cpp-mython/pkg/ast"
)

func TestParseAssignment(t *testing.T) {
	program, err := Parse([]byte("x = 1\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound, ok := program.Body.(*ast.Compound)
	if !ok || len(compound.Children) != 1 {
		t.Fatalf("unexpected program shape: %#v", program.Body)
	}
	assign, ok := compound.Children[0].(*ast.Assignment)
	if !ok || assign.Name != "x" {
		t.Fatalf("expected an Assignment to x, got %#v", compound.Children[0])
	}
	if _, ok := assign.Rhs.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected a NumberLiteral rhs, got %#v", assign.Rhs)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	program, err := Parse([]byte("self.value = 0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := program.Body.(*ast.Compound)
	fa, ok := compound.Children[0].(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("expected a FieldAssignment, got %#v", compound.Children[0])
	}
	if fa.Object.Name != "self" || fa.Field != "value" {
		t.Fatalf("unexpected field assignment target: %#v", fa)
	}
}

func TestParseUnknownClassInNewInstanceFails(t *testing.T) {
	_, err := Parse([]byte("x = Ghost()\n"))
	if err == nil {
		t.Fatal("expected an error instantiating an undeclared class")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
}

func TestParseClassWithInheritance(t *testing.T) {
	src := "class Base:\n  def greet():\n    return 1\n\nclass Sub(Base):\n  def other():\n    return 2\n"
	program, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := program.Body.(*ast.Compound)
	if len(compound.Children) != 2 {
		t.Fatalf("expected two class definitions, got %d", len(compound.Children))
	}
	sub, ok := compound.Children[1].(*ast.ClassDefinition)
	if !ok {
		t.Fatalf("expected a ClassDefinition, got %#v", compound.Children[1])
	}
	if sub.Class.Parent == nil || sub.Class.Parent.Name != "Base" {
		t.Fatalf("expected Sub to inherit from Base, got %#v", sub.Class.Parent)
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	program, err := Parse([]byte("if 1 < 2:\n  print 1\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := program.Body.(*ast.Compound)
	ifElse, ok := compound.Children[0].(*ast.IfElse)
	if !ok {
		t.Fatalf("expected an IfElse, got %#v", compound.Children[0])
	}
	if ifElse.Else != nil {
		t.Fatalf("expected a nil Else arm, got %#v", ifElse.Else)
	}
}

func TestParseUnaryMinusDesugarsToSub(t *testing.T) {
	program, err := Parse([]byte("print -8\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compound := program.Body.(*ast.Compound)
	printStmt := compound.Children[0].(*ast.Print)
	sub, ok := printStmt.Args[0].(*ast.Sub)
	if !ok {
		t.Fatalf("expected unary minus to desugar to Sub, got %#v", printStmt.Args[0])
	}
	lhs, ok := sub.Lhs.(*ast.NumberLiteral)
	if !ok || lhs.Value != 0 {
		t.Fatalf("expected 0 - 8, got lhs %#v", sub.Lhs)
	}
}

func TestParseSyntaxErrorIsDistinctType(t *testing.T) {
	_, err := Parse([]byte("x = \n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if _, ok := err.(*Error); !ok {
		t.Fatalf("expected *parser.Error, got %T", err)
	}
}
