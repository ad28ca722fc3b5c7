package runtime

// Equal implements spec.md §4.2's polymorphic equality: an Instance
// dispatches to __eq__, two Nones are equal, and otherwise both
// operands must be the same primitive variant.
func Equal(lhs, rhs Value, ctx Context) (bool, error) {
	if inst, ok := lhs.(*Instance); ok {
		result, err := inst.Call("__eq__", []Value{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return IsTrue(result), nil
	}
	_, lhsNone := lhs.(None)
	_, rhsNone := rhs.(None)
	if lhsNone && rhsNone {
		return true, nil
	}
	return comparePrimitives(lhs, rhs, func(a, b int64) bool { return a == b },
		func(a, b string) bool { return a == b },
		func(a, b bool) bool { return a == b })
}

// Less implements spec.md §4.2's polymorphic ordering: an Instance
// dispatches to __lt__, otherwise same-variant value comparison.
func Less(lhs, rhs Value, ctx Context) (bool, error) {
	if inst, ok := lhs.(*Instance); ok {
		result, err := inst.Call("__lt__", []Value{rhs}, ctx)
		if err != nil {
			return false, err
		}
		return IsTrue(result), nil
	}
	return comparePrimitives(lhs, rhs, func(a, b int64) bool { return a < b },
		func(a, b string) bool { return a < b },
		func(a, b bool) bool { return !a && b })
}

// NotEqual, Greater, LessOrEqual, and GreaterOrEqual are De Morgan
// compositions of Equal/Less, per spec.md §4.2.
func NotEqual(lhs, rhs Value, ctx Context) (bool, error) {
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func Greater(lhs, rhs Value, ctx Context) (bool, error) {
	lt, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !(lt || eq), nil
}

func LessOrEqual(lhs, rhs Value, ctx Context) (bool, error) {
	gt, err := Greater(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

func GreaterOrEqual(lhs, rhs Value, ctx Context) (bool, error) {
	lt, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

// comparePrimitives applies the comparator matching lhs/rhs's shared
// primitive variant, failing type-mismatch on a mixed or unsupported
// pairing. The callers above resolve an Instance on the left (and, for
// Equal, a None/None pair) before reaching this; any other pairing that
// involves a Class, an Instance, or a None fails here.
func comparePrimitives(lhs, rhs Value, cmpNum func(a, b int64) bool, cmpStr func(a, b string) bool, cmpBool func(a, b bool) bool) (bool, error) {
	switch l := lhs.(type) {
	case Number:
		if r, ok := rhs.(Number); ok {
			return cmpNum(l.Val, r.Val), nil
		}
	case String:
		if r, ok := rhs.(String); ok {
			return cmpStr(l.Val, r.Val), nil
		}
	case Bool:
		if r, ok := rhs.(Bool); ok {
			return cmpBool(l.Val, r.Val), nil
		}
	}
	return false, NewError(ErrTypeMismatch, "cannot compare %s and %s", kindOf(lhs), kindOf(rhs))
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}
