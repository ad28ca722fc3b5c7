package interpreter

import (
	"strings"
	"testing"

	"github.com/maslov-k/cpp-mython/pkg/parser"
	"github.com/maslov-k/cpp-mython/pkg/runtime"
)

func runProgram(t *testing.T, src string) string {
	t.Helper()
	program, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out strings.Builder
	interp := New()
	ctx := runtime.NewStreamContext(&out)
	if _, err := interp.Run(program, ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestScenarioPrintLiterals(t *testing.T) {
	src := "print 57\n" +
		"print 10, 24, -8\n" +
		"print 'hello'\n" +
		"print \"world\"\n" +
		"print True, False\n" +
		"print\n" +
		"print None\n"
	want := "57\n10 24 -8\nhello\nworld\nTrue False\n\nNone\n"
	if got := runProgram(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioReassignmentAndTypes(t *testing.T) {
	src := "x = 57\n" +
		"print x\n" +
		"x = 'C++ black belt'\n" +
		"print x\n" +
		"y = False\n" +
		"x = y\n" +
		"print x\n" +
		"x = None\n" +
		"print x, y\n"
	want := "57\nC++ black belt\nFalse\nNone False\n"
	if got := runProgram(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioArithmeticPrecedence(t *testing.T) {
	src := "print 1+2+3+4+5, 1*2*3*4*5, 1-2-3-4-5, 36/4/3, 2*5+10/2\n"
	want := "15 120 -13 3 15\n"
	if got := runProgram(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioInstanceAliasing(t *testing.T) {
	src := "" +
		"class Counter:\n" +
		"  def __init__():\n" +
		"    self.value = 0\n" +
		"  def add():\n" +
		"    self.value = self.value + 1\n" +
		"  def get():\n" +
		"    return self.value\n" +
		"\n" +
		"class Holder:\n" +
		"  def __init__(c):\n" +
		"    self.counter = c\n" +
		"  def bump():\n" +
		"    self.counter.add()\n" +
		"\n" +
		"x = Counter()\n" +
		"y = x\n" +
		"x.add()\n" +
		"y.add()\n" +
		"print x.get()\n" +
		"h = Holder(y)\n" +
		"h.bump()\n" +
		"print x.get()\n"
	want := "2\n3\n"
	if got := runProgram(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenarioIfElse(t *testing.T) {
	src := "if 1 < 2:\n  print 'a'\nelse:\n  print 'b'\n"
	if got := runProgram(t, src); got != "a\n" {
		t.Fatalf("got %q, want %q", got, "a\n")
	}
	src = "if 2 < 1:\n  print 'a'\nelse:\n  print 'b'\n"
	if got := runProgram(t, src); got != "b\n" {
		t.Fatalf("got %q, want %q", got, "b\n")
	}
}

func TestScenarioDivisionByZero(t *testing.T) {
	program, err := parser.Parse([]byte("print 1/0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var out strings.Builder
	interp := New()
	ctx := runtime.NewStreamContext(&out)
	_, err = interp.Run(program, ctx)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	rtErr, ok := err.(*runtime.Error)
	if !ok || rtErr.Kind != runtime.ErrDivByZero {
		t.Fatalf("expected a div-by-zero runtime.Error, got %#v", err)
	}
	if out.String() != "" {
		t.Fatalf("expected nothing written before the failing print completed, got %q", out.String())
	}
}

func TestReturnOutsideMethodIsReported(t *testing.T) {
	program, err := parser.Parse([]byte("return 1\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	interp := New()
	ctx := runtime.NewStreamContext(&strings.Builder{})
	_, err = interp.Run(program, ctx)
	if err == nil {
		t.Fatal("expected an error for a top-level return")
	}
	rtErr, ok := err.(*runtime.Error)
	if !ok || rtErr.Kind != runtime.ErrReturnOutsideMethod {
		t.Fatalf("expected ErrReturnOutsideMethod, got %#v", err)
	}
}
