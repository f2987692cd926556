package mython

// Comparison protocol over object holders. The attempt order inside Equal
// and Less, and the literal derivations of the remaining operations, are
// observable language behavior: a user-defined __eq__/__lt__ may carry
// side effects, so the formulas must not be reordered or algebraically
// simplified. In particular GreaterOrEqual is the negation of Less alone,
// while Greater also consults Equal; the asymmetry is intentional.

// Equal: both holders empty is true; Number/Number, String/String and
// Bool/Bool compare values; otherwise a one-argument __eq__ on the left
// operand (only the left) decides; anything else is a runtime error.
func Equal(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if !lhs.IsValid() && !rhs.IsValid() {
		return true, nil
	}
	if ln, ok := lhs.Get().(*Number); ok {
		if rn, ok := rhs.Get().(*Number); ok {
			return ln.Value() == rn.Value(), nil
		}
	}
	if ls, ok := lhs.Get().(*String); ok {
		if rs, ok := rhs.Get().(*String); ok {
			return ls.Value() == rs.Value(), nil
		}
	}
	if lb, ok := lhs.Get().(*Bool); ok {
		if rb, ok := rhs.Get().(*Bool); ok {
			return lb.Value() == rb.Value(), nil
		}
	}
	if inst, ok := lhs.Get().(*ClassInstance); ok && inst.HasMethod(eqMethod, 1) {
		return callCompareMethod(inst, eqMethod, rhs, ctx)
	}
	return false, &RuntimeError{Msg: "cannot compare objects for equality"}
}

// Less follows the same attempt sequence as Equal (without the
// empty/empty special case), falling back to __lt__ on the left operand.
func Less(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if ln, ok := lhs.Get().(*Number); ok {
		if rn, ok := rhs.Get().(*Number); ok {
			return ln.Value() < rn.Value(), nil
		}
	}
	if ls, ok := lhs.Get().(*String); ok {
		if rs, ok := rhs.Get().(*String); ok {
			return ls.Value() < rs.Value(), nil
		}
	}
	if lb, ok := lhs.Get().(*Bool); ok {
		if rb, ok := rhs.Get().(*Bool); ok {
			return !lb.Value() && rb.Value(), nil
		}
	}
	if inst, ok := lhs.Get().(*ClassInstance); ok && inst.HasMethod(ltMethod, 1) {
		return callCompareMethod(inst, ltMethod, rhs, ctx)
	}
	return false, &RuntimeError{Msg: "cannot compare objects for less"}
}

// NotEqual is the negation of Equal.
func NotEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater is NOT (Less OR Equal). Equal runs only when Less was false.
func Greater(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return false, nil
	}
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// LessOrEqual is Less OR Equal, short-circuited.
func LessOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return true, nil
	}
	return Equal(lhs, rhs, ctx)
}

// GreaterOrEqual is the negation of Less alone; it never consults Equal.
func GreaterOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less, nil
}

// callCompareMethod invokes a one-argument dunder and requires a Bool
// result. The original semantics left a non-Bool result undefined; here
// it is a runtime error.
func callCompareMethod(inst *ClassInstance, name string, arg ObjectHolder, ctx Context) (bool, error) {
	res, err := inst.Call(name, []ObjectHolder{arg}, ctx)
	if err != nil {
		return false, err
	}
	b, ok := res.Get().(*Bool)
	if !ok {
		return false, &RuntimeError{Msg: name + " must return Bool"}
	}
	return b.Value(), nil
}
