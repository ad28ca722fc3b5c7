// Package ast defines Mython's statement/expression node set and
// implements spec.md §4.3's executor semantics directly on each node,
// following original_source/mython/statement.cpp's per-class Execute
// design rather than routing everything through a central visitor
// switch: a tree-walking interpreter reads most naturally when each
// node knows how to evaluate itself.
package ast

import "github.com/maslov-k/cpp-mython/pkg/runtime"

// NodeType names a concrete node kind, useful for diagnostics and
// tests without reflection.
type NodeType string

const (
	NodeNumberLiteral   NodeType = "NumberLiteral"
	NodeStringLiteral   NodeType = "StringLiteral"
	NodeBoolLiteral     NodeType = "BoolLiteral"
	NodeNoneLiteral     NodeType = "NoneLiteral"
	NodeAssignment      NodeType = "Assignment"
	NodeFieldAssignment NodeType = "FieldAssignment"
	NodeVariableValue   NodeType = "VariableValue"
	NodePrint           NodeType = "Print"
	NodeMethodCall      NodeType = "MethodCall"
	NodeStringify       NodeType = "Stringify"
	NodeAdd             NodeType = "Add"
	NodeSub             NodeType = "Sub"
	NodeMult            NodeType = "Mult"
	NodeDiv             NodeType = "Div"
	NodeCompound        NodeType = "Compound"
	NodeReturn          NodeType = "Return"
	NodeClassDefinition NodeType = "ClassDefinition"
	NodeIfElse          NodeType = "IfElse"
	NodeOr              NodeType = "Or"
	NodeAnd             NodeType = "And"
	NodeNot             NodeType = "Not"
	NodeComparison      NodeType = "Comparison"
	NodeNewInstance     NodeType = "NewInstance"
	NodeMethodBody      NodeType = "MethodBody"
	NodeProgram         NodeType = "Program"
)

// Node is the minimal shared surface of every AST node.
type Node interface {
	NodeType() NodeType
}

// Statement is spec.md §4.3's per-node contract: every AST node
// evaluates itself against an environment and a context and yields a
// value (or a runtime.Error, or a *ReturnSignal unwind — see
// signals.go). The name follows the original interpreter, in which
// expressions and statements share a single ast::Statement base.
type Statement interface {
	Node
	Execute(env *runtime.Environment, ctx runtime.Context) (runtime.Value, error)
}
