package evaluator

// Environment carries the result of the last evaluation step and whether a
// return has fired. It is a value: every update produces a new Environment,
// so branches evaluated independently never observe each other.
type Environment struct {
	result  Object
	exiting bool
}

func NewEnvironment() Environment {
	return Environment{result: NIL}
}

func (e Environment) Result() Object {
	if e.result == nil {
		return NIL
	}
	return e.result
}

// IsExiting reports that a return has fired and evaluation must unwind.
func (e Environment) IsExiting() bool {
	return e.exiting
}

// WithResult returns an Environment holding value as its result.
func (e Environment) WithResult(value Object) Environment {
	return Environment{result: value, exiting: e.exiting}
}

// Exit returns an exiting Environment whose result marks value as returned.
func (e Environment) Exit(value Object) Environment {
	return Environment{result: &ReturnValue{Value: value}, exiting: true}
}

// Unwrap gives the value a function body produced: the returned value if a
// return fired, otherwise the plain result.
func Unwrap(env Environment) Object {
	if env.exiting {
		if rv, ok := env.result.(*ReturnValue); ok {
			return rv.Value
		}
	}
	return env.Result()
}
