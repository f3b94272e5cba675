package kiss

import (
	"fmt"
	"reflect"

	"github.com/arrdem/kiss/internal/evaluator"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// hostFunction wraps a Go function as a builtin.
func (in *Interpreter) hostFunction(name string, fn reflect.Value, pure bool) *evaluator.Builtin {
	fnType := fn.Type()
	arity := fnType.NumIn()
	if fnType.IsVariadic() {
		arity = -1
	}
	return &evaluator.Builtin{
		Name:  name,
		Arity: arity,
		Pure:  pure,
		Fn: func(args ...evaluator.Object) (evaluator.Object, error) {
			return in.hostCall(fn, args)
		},
	}
}

func (in *Interpreter) hostCall(fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	// Convert args from kiss to Go
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	// Check arg count
	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}

		val, err := in.marshaller.FromValue(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d conversion failed: %w", i, err)
		}
		if val == nil {
			// reflect.ValueOf(nil) is invalid.
			goArgs[i] = reflect.Zero(targetType)
			continue
		}
		v := reflect.ValueOf(val)
		if !v.Type().AssignableTo(targetType) {
			if !v.Type().ConvertibleTo(targetType) {
				return nil, fmt.Errorf("argument %d: cannot use %s as %s", i, arg.Inspect(), targetType)
			}
			v = v.Convert(targetType)
		}
		goArgs[i] = v
	}

	results := fn.Call(goArgs)

	// A trailing error result is reported as a host failure.
	if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
		if err, _ := results[n-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:n-1]
	}
	switch len(results) {
	case 0:
		return evaluator.NIL, nil
	case 1:
		return in.marshaller.ToValue(results[0].Interface())
	default:
		return nil, fmt.Errorf("host functions return at most one value, got %d", len(results))
	}
}
