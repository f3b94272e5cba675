package evaluator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/arrdem/kiss/internal/config"
	"github.com/arrdem/kiss/internal/typesystem"
)

var errDivisionByZero = errors.New("division by zero")

// numeric unpacks arithmetic operands. Mixed Int/Float operands are
// promoted to Float.
func numeric(name string, args []Object) (ints []int64, floats []float64, isFloat bool, err error) {
	for _, arg := range args {
		if _, ok := arg.(*Float); ok {
			isFloat = true
		}
	}
	for i, arg := range args {
		switch a := arg.(type) {
		case *Integer:
			ints = append(ints, a.Value)
			floats = append(floats, float64(a.Value))
		case *Float:
			floats = append(floats, a.Value)
		default:
			return nil, nil, false, fmt.Errorf("%s: argument %d must be a number, got %s", name, i+1, arg.Inspect())
		}
	}
	return ints, floats, isFloat, nil
}

func arithmetic(name string, intOp func(a, b int64) (int64, error), floatOp func(a, b float64) (float64, error)) *Builtin {
	return &Builtin{
		Name:   name,
		Arity:  2,
		Pure:   true,
		Result: typesystem.NormalizeUnion([]typesystem.Type{typesystem.Int, typesystem.Float}),
		Fn: func(args ...Object) (Object, error) {
			ints, floats, isFloat, err := numeric(name, args)
			if err != nil {
				return nil, err
			}
			if isFloat {
				v, err := floatOp(floats[0], floats[1])
				if err != nil {
					return nil, err
				}
				return &Float{Value: v}, nil
			}
			v, err := intOp(ints[0], ints[1])
			if err != nil {
				return nil, err
			}
			return &Integer{Value: v}, nil
		},
	}
}

// NewBuiltins returns the host primitive library. print writes to out.
func NewBuiltins(out io.Writer) map[string]*Builtin {
	return map[string]*Builtin{
		config.AddFuncName: arithmetic(config.AddFuncName,
			func(a, b int64) (int64, error) { return a + b, nil },
			func(a, b float64) (float64, error) { return a + b, nil }),
		config.SubFuncName: arithmetic(config.SubFuncName,
			func(a, b int64) (int64, error) { return a - b, nil },
			func(a, b float64) (float64, error) { return a - b, nil }),
		config.MulFuncName: arithmetic(config.MulFuncName,
			func(a, b int64) (int64, error) { return a * b, nil },
			func(a, b float64) (float64, error) { return a * b, nil }),
		config.DivFuncName: arithmetic(config.DivFuncName,
			func(a, b int64) (int64, error) {
				if b == 0 {
					return 0, errDivisionByZero
				}
				return a / b, nil
			},
			func(a, b float64) (float64, error) {
				if b == 0 {
					return 0, errDivisionByZero
				}
				return a / b, nil
			}),
		config.EqFuncName: {
			Name:   config.EqFuncName,
			Arity:  2,
			Pure:   true,
			Result: typesystem.Bool,
			Fn: func(args ...Object) (Object, error) {
				return NativeBool(ObjectsEqual(args[0], args[1])), nil
			},
		},
		config.LessFuncName: {
			Name:   config.LessFuncName,
			Arity:  2,
			Pure:   true,
			Result: typesystem.Bool,
			Fn: func(args ...Object) (Object, error) {
				ints, floats, isFloat, err := numeric(config.LessFuncName, args)
				if err != nil {
					return nil, err
				}
				if isFloat {
					return NativeBool(floats[0] < floats[1]), nil
				}
				return NativeBool(ints[0] < ints[1]), nil
			},
		},
		config.NotFuncName: {
			Name:   config.NotFuncName,
			Arity:  1,
			Pure:   true,
			Result: typesystem.Bool,
			Fn: func(args ...Object) (Object, error) {
				return NativeBool(!IsTruthy(args[0])), nil
			},
		},
		config.StrFuncName: {
			Name:   config.StrFuncName,
			Arity:  -1,
			Pure:   true,
			Result: typesystem.String,
			Fn: func(args ...Object) (Object, error) {
				var sb strings.Builder
				for _, arg := range args {
					if s, ok := arg.(*String); ok {
						sb.WriteString(s.Value)
					} else {
						sb.WriteString(arg.Inspect())
					}
				}
				return &String{Value: sb.String()}, nil
			},
		},
		config.PrintFuncName: {
			Name:   config.PrintFuncName,
			Arity:  -1,
			Result: typesystem.Nil,
			Fn: func(args ...Object) (Object, error) {
				for i, arg := range args {
					if i > 0 {
						_, _ = fmt.Fprint(out, " ")
					}
					if s, ok := arg.(*String); ok {
						_, _ = fmt.Fprint(out, s.Value)
					} else {
						_, _ = fmt.Fprint(out, arg.Inspect())
					}
				}
				_, _ = fmt.Fprintln(out)
				return NIL, nil
			},
		},
	}
}

// BuiltinBindings binds every host primitive under its name.
func BuiltinBindings(out io.Writer) Bindings {
	b := EmptyBindings()
	for name, builtin := range NewBuiltins(out) {
		b = b.Assoc(Symbol(name), builtin)
	}
	return b
}
