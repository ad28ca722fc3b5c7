// Package parser implements a recursive-descent parser over
// pkg/lexer's token stream, producing the pkg/ast tree pkg/interpreter
// executes. The precedence chain follows the binary-operator class
// nesting implied by the C++ original's statement.cpp, and the
// one-function-per-production shape (parseIfElse, parseClassDef,
// parsePrimary, ...) mirrors the teacher's own per-production parse
// functions (able/interpreter10-go's pkg/parser, e.g.
// expressions_parser.go's parseImplicitMemberExpression/
// parsePlaceholderExpression and statements_parser.go's parseBlock),
// adapted from decoding a tree-sitter parse tree to hand-tokenizing,
// since Mython's grammar has few enough precedence levels that a
// hand-written descent stays readable without a grammar generator.
package parser

import (
	"fmt"

	"github.com/maslov-k/cpp-mython/pkg/ast"
	"github.com/maslov-k/cpp-mython/pkg/lexer"
	"github.com/maslov-k/cpp-mython/pkg/runtime"
	"github.com/maslov-k/cpp-mython/pkg/token"
)

// Error reports a syntax error, kept distinct from lexer.Error and
// runtime.Error so callers can tell the three failure phases apart.
type Error struct{ Msg string }

func (e *Error) Error() string { return "parse error: " + e.Msg }

// Parser walks a lexer.Lexer's token stream one token of lookahead at
// a time. classes tracks class definitions seen so far, since
// NewInstance nodes hold a direct *runtime.Class reference rather than
// a name resolved at execution time.
type Parser struct {
	lex     *lexer.Lexer
	cur     token.Token
	classes map[string]*runtime.Class
}

// Parse lexes and parses src in one pass, returning the executable
// program root.
func Parse(src []byte) (*ast.Program, error) {
	lx, err := lexer.New(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{lex: lx, cur: lx.Current(), classes: map[string]*runtime.Class{}}
	stmts, err := p.parseStatements(token.Eof)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Body: &ast.Compound{Children: stmts}}, nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) advance() error {
	t, err := p.lex.Advance()
	if err != nil {
		return err
	}
	p.cur = t
	return nil
}

func (p *Parser) expect(kind token.Kind) error {
	if p.cur.Kind != kind {
		return p.errorf("expected %s, got %s", kind, p.cur)
	}
	return p.advance()
}

func (p *Parser) expectChar(c byte) error {
	if p.cur.Kind != token.Char || p.cur.CharValue != c {
		return p.errorf("expected %q, got %s", string(c), p.cur)
	}
	return p.advance()
}

func (p *Parser) curIsChar(c byte) bool {
	return p.cur.Kind == token.Char && p.cur.CharValue == c
}

// parseStatements parses zero or more statements, each optionally
// followed by a Newline (block-shaped statements like class/if
// already consume through their own closing Dedent and carry no
// trailing Newline of their own), until stop is reached.
func (p *Parser) parseStatements(stop token.Kind) ([]ast.Statement, error) {
	var out []ast.Statement
	for p.cur.Kind != stop {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
		if p.cur.Kind == token.Newline {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// parseSuite parses the ":" NEWLINE INDENT statements DEDENT tail
// shared by class bodies, method bodies, and if/else arms. The caller
// has already consumed everything up to and including the ':'.
func (p *Parser) parseSuite() (*ast.Compound, error) {
	if err := p.expect(token.Newline); err != nil {
		return nil, err
	}
	if err := p.expect(token.Indent); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements(token.Dedent)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Dedent); err != nil {
		return nil, err
	}
	return &ast.Compound{Children: stmts}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.Class:
		return p.parseClassDef()
	case token.If:
		return p.parseIfElse()
	case token.Return:
		return p.parseReturn()
	case token.Print:
		return p.parsePrint()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Expr: expr}, nil
}

func (p *Parser) parsePrint() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind == token.Newline {
		return &ast.Print{}, nil
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Args: args}, nil
}

func (p *Parser) parseExprList() ([]ast.Statement, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	args := []ast.Statement{first}
	for p.curIsChar(',') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}

// parseClassDef parses `class Name [(Parent)] :` followed by an
// indented block of def statements, and registers the resulting
// *runtime.Class under its name so later NewInstance sites can find it.
func (p *Parser) parseClassDef() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.Id {
		return nil, p.errorf("expected class name, got %s", p.cur)
	}
	name := p.cur.TextValue
	if err := p.advance(); err != nil {
		return nil, err
	}

	var parent *runtime.Class
	if p.curIsChar('(') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind != token.Id {
			return nil, p.errorf("expected base class name, got %s", p.cur)
		}
		base, ok := p.classes[p.cur.TextValue]
		if !ok {
			return nil, p.errorf("unknown base class %q", p.cur.TextValue)
		}
		parent = base
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(')'); err != nil {
			return nil, err
		}
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	if err := p.expect(token.Newline); err != nil {
		return nil, err
	}
	if err := p.expect(token.Indent); err != nil {
		return nil, err
	}

	var methods []runtime.Method
	for p.cur.Kind != token.Dedent {
		method, err := p.parseMethodDef()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if err := p.expect(token.Dedent); err != nil {
		return nil, err
	}

	class := runtime.NewClass(name, methods, parent)
	p.classes[name] = class
	return &ast.ClassDefinition{Class: class}, nil
}

func (p *Parser) parseMethodDef() (runtime.Method, error) {
	if err := p.expect(token.Def); err != nil {
		return runtime.Method{}, err
	}
	if p.cur.Kind != token.Id {
		return runtime.Method{}, p.errorf("expected method name, got %s", p.cur)
	}
	name := p.cur.TextValue
	if err := p.advance(); err != nil {
		return runtime.Method{}, err
	}
	if err := p.expectChar('('); err != nil {
		return runtime.Method{}, err
	}
	var params []string
	if !p.curIsChar(')') {
		for {
			if p.cur.Kind != token.Id {
				return runtime.Method{}, p.errorf("expected parameter name, got %s", p.cur)
			}
			params = append(params, p.cur.TextValue)
			if err := p.advance(); err != nil {
				return runtime.Method{}, err
			}
			if !p.curIsChar(',') {
				break
			}
			if err := p.advance(); err != nil {
				return runtime.Method{}, err
			}
		}
	}
	if err := p.expectChar(')'); err != nil {
		return runtime.Method{}, err
	}
	if err := p.expectChar(':'); err != nil {
		return runtime.Method{}, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return runtime.Method{}, err
	}
	return runtime.Method{Name: name, FormalParams: params, Body: &ast.MethodBody{Body: body}}, nil
}

func (p *Parser) parseIfElse() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(':'); err != nil {
		return nil, err
	}
	then, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	if p.cur.Kind == token.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expectChar(':'); err != nil {
			return nil, err
		}
		elseBlock, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		elseStmt = elseBlock
	}
	return &ast.IfElse{Cond: cond, Then: then, Else: elseStmt}, nil
}

// parseSimpleStatement covers assignment, field assignment, and any
// statement that is really just an expression evaluated for its
// side effect (a bare method call, most commonly).
func (p *Parser) parseSimpleStatement() (ast.Statement, error) {
	if p.cur.Kind != token.Id {
		return p.parseExpr()
	}
	name, tail, err := p.parseIdentifierChain()
	if err != nil {
		return nil, err
	}
	if p.curIsChar('=') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if len(tail) == 0 {
			return &ast.Assignment{Name: name, Rhs: rhs}, nil
		}
		field := tail[len(tail)-1]
		objTail := tail[:len(tail)-1]
		return &ast.FieldAssignment{Object: &ast.VariableValue{Name: name, Tail: objTail}, Field: field, Rhs: rhs}, nil
	}
	return p.buildCallOrVariable(name, tail)
}

// parseIdentifierChain consumes `name (. field)*`, leaving cur on
// whatever follows.
func (p *Parser) parseIdentifierChain() (string, []string, error) {
	name := p.cur.TextValue
	if err := p.advance(); err != nil {
		return "", nil, err
	}
	var tail []string
	for p.curIsChar('.') {
		if err := p.advance(); err != nil {
			return "", nil, err
		}
		if p.cur.Kind != token.Id {
			return "", nil, p.errorf("expected identifier after '.', got %s", p.cur)
		}
		tail = append(tail, p.cur.TextValue)
		if err := p.advance(); err != nil {
			return "", nil, err
		}
	}
	return name, tail, nil
}

// buildCallOrVariable interprets an already-parsed identifier chain:
// a trailing "(...)" makes it a class instantiation (bare name) or a
// method call (dotted name), otherwise it's a variable read.
func (p *Parser) buildCallOrVariable(name string, tail []string) (ast.Statement, error) {
	if !p.curIsChar('(') {
		return &ast.VariableValue{Name: name, Tail: tail}, nil
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	if len(tail) == 0 {
		class, ok := p.classes[name]
		if !ok {
			return nil, p.errorf("unknown class %q", name)
		}
		return &ast.NewInstance{Class: class, Args: args}, nil
	}
	method := tail[len(tail)-1]
	objTail := tail[:len(tail)-1]
	return &ast.MethodCall{Object: &ast.VariableValue{Name: name, Tail: objTail}, Method: method, Args: args}, nil
}

func (p *Parser) parseArgs() ([]ast.Statement, error) {
	if err := p.expectChar('('); err != nil {
		return nil, err
	}
	if p.curIsChar(')') {
		return nil, p.advance()
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if err := p.expectChar(')'); err != nil {
		return nil, err
	}
	return args, nil
}

// Expression grammar, precedence low to high:
// or -> and -> not -> comparison -> additive -> multiplicative -> primary.

func (p *Parser) parseExpr() (ast.Statement, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.Statement, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.Or {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Or{Lhs: left, Rhs: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Statement, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.And {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.And{Lhs: left, Rhs: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Statement, error) {
	if p.cur.Kind == token.Not {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Arg: operand}, nil
	}
	return p.parseComparison()
}

var comparators = map[token.Kind]ast.Comparator{
	token.Eq:          runtime.Equal,
	token.NotEq:       runtime.NotEqual,
	token.LessOrEq:    runtime.LessOrEqual,
	token.GreaterOrEq: runtime.GreaterOrEqual,
}

func (p *Parser) parseComparison() (ast.Statement, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if cmp, ok := comparators[p.cur.Kind]; ok {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Cmp: cmp, Lhs: left, Rhs: right}, nil
	}
	if p.curIsChar('<') || p.curIsChar('>') {
		less := p.cur.CharValue == '<'
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		cmp := ast.Comparator(runtime.Greater)
		if less {
			cmp = runtime.Less
		}
		return &ast.Comparison{Cmp: cmp, Lhs: left, Rhs: right}, nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.Statement, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.curIsChar('+') || p.curIsChar('-') {
		op := p.cur.CharValue
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op == '+' {
			left = &ast.Add{Lhs: left, Rhs: right}
		} else {
			left = &ast.Sub{Lhs: left, Rhs: right}
		}
	}
	return left, nil
}

func (p *Parser) parseTerm() (ast.Statement, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.curIsChar('*') || p.curIsChar('/') {
		op := p.cur.CharValue
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if op == '*' {
			left = &ast.Mult{Lhs: left, Rhs: right}
		} else {
			left = &ast.Div{Lhs: left, Rhs: right}
		}
	}
	return left, nil
}

// parsePrimary handles literals, parenthesized expressions, unary
// minus, the str(...) builtin, and identifier chains (variable reads,
// method calls, class instantiation).
func (p *Parser) parsePrimary() (ast.Statement, error) {
	switch p.cur.Kind {
	case token.Number:
		v := p.cur.IntValue
		return &ast.NumberLiteral{Value: v}, p.advance()
	case token.String:
		v := p.cur.TextValue
		return &ast.StringLiteral{Value: v}, p.advance()
	case token.True:
		return &ast.BoolLiteral{Value: true}, p.advance()
	case token.False:
		return &ast.BoolLiteral{Value: false}, p.advance()
	case token.None:
		return &ast.NoneLiteral{}, p.advance()
	case token.Id:
		if p.cur.TextValue == "str" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.curIsChar('(') {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				if len(args) != 1 {
					return nil, p.errorf("str() takes exactly one argument, got %d", len(args))
				}
				return &ast.Stringify{Arg: args[0]}, nil
			}
			return &ast.VariableValue{Name: "str"}, nil
		}
		name, tail, err := p.parseIdentifierChain()
		if err != nil {
			return nil, err
		}
		return p.buildCallOrVariable(name, tail)
	case token.Char:
		switch p.cur.CharValue {
		case '(':
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			return expr, p.expectChar(')')
		case '-':
			if err := p.advance(); err != nil {
				return nil, err
			}
			operand, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			return &ast.Sub{Lhs: &ast.NumberLiteral{Value: 0}, Rhs: operand}, nil
		}
	}
	return nil, p.errorf("unexpected token %s", p.cur)
}
