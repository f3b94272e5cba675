package evaluator

// IsTruthy reports whether a value selects the then-branch of a conditional.
// Only nil and false are falsey.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case nil:
		return false
	case *Nil:
		return false
	case *Boolean:
		return o.Value
	default:
		return true
	}
}

// IsPureFn reports whether a callable value may be folded at optimisation
// time. Values of unknown purity are treated as impure.
func IsPureFn(obj Object) bool {
	b, ok := obj.(*Builtin)
	return ok && b.Pure
}
