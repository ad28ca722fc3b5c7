package ast

import "github.com/maslov-k/cpp-mython/pkg/runtime"

// ReturnSignal is the non-local exit spec.md §9 calls for: rather than
// reach for Go's panic/recover (the host's exception mechanism) for
// routine control flow, Return.Execute returns a ReturnSignal as its
// error value. Every intervening node (Compound, IfElse, ...)
// propagates a non-nil error unmodified, which unwinds the call stack
// exactly as required; MethodBody is the only node that catches it.
type ReturnSignal struct {
	Value runtime.Value
}

func (r *ReturnSignal) Error() string { return "return outside method" }
