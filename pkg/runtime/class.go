package runtime

// Method is a named, callable member of a Class: its formal parameter
// names and a reference to its body statement (an *ast.MethodBody in
// practice, but runtime deliberately doesn't import ast to avoid a
// cycle — see Statement below).
type Method struct {
	Name         string
	FormalParams []string
	Body         Statement
}

// Statement is the minimal surface runtime needs from an AST node in
// order to invoke a method body: execute it against a fresh
// environment and context. pkg/ast's node types satisfy this
// trivially since their Execute signature already matches.
type Statement interface {
	Execute(env *Environment, ctx Context) (Value, error)
}

// Class is a class definition: an ordered method table and an
// optional parent for single inheritance.
type Class struct {
	Name    string
	Methods []Method
	Parent  *Class
}

func (*Class) Kind() Kind { return KindClass }

// NewClass constructs a Class with methods in definition order.
func NewClass(name string, methods []Method, parent *Class) *Class {
	return &Class{Name: name, Methods: methods, Parent: parent}
}

// Lookup searches c.Methods in definition order for name, recursing
// into Parent on miss. This defines Mython's single-inheritance MRO.
func (c *Class) Lookup(name string) (*Method, bool) {
	for cur := c; cur != nil; cur = cur.Parent {
		for i := range cur.Methods {
			if cur.Methods[i].Name == name {
				return &cur.Methods[i], true
			}
		}
	}
	return nil, false
}

// HasMethod reports whether lookup finds name with exactly arity
// formal parameters. Arity mismatches are equivalent to absence for
// dispatch purposes.
func (c *Class) HasMethod(name string, arity int) bool {
	mtd, ok := c.Lookup(name)
	return ok && len(mtd.FormalParams) == arity
}

// Instance is a live object of a Class, with reference identity:
// copying an *Instance (e.g. `y = x`) copies the pointer, so mutation
// through one alias is observable through the other.
type Instance struct {
	Class  *Class
	Fields *Environment
}

func (*Instance) Kind() Kind { return KindInstance }

// NewInstance allocates a fresh Instance with an empty field set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: NewEnvironment()}
}

// Call implements spec.md §4.2's instance-call contract: resolve
// method/arity, bind self and the formal parameters into a fresh
// environment, and execute the body.
func (i *Instance) Call(method string, args []Value, ctx Context) (Value, error) {
	if !i.Class.HasMethod(method, len(args)) {
		return nil, NewError(ErrMethodNotFound, "class %s has no method %s/%d", i.Class.Name, method, len(args))
	}
	mtd, _ := i.Class.Lookup(method)

	env := NewEnvironment()
	env.Define("self", i)
	for idx, param := range mtd.FormalParams {
		env.Define(param, args[idx])
	}
	return mtd.Body.Execute(env, ctx)
}
