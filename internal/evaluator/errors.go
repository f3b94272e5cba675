package evaluator

import (
	"errors"
	"fmt"
)

var (
	ErrNotCallable        = errors.New("not a function")
	ErrNotConstant        = errors.New("expression is not constant")
	ErrReturnNotEvaluable = errors.New("can't evaluate return")
	ErrArity              = errors.New("mismatched arity")
	ErrMalformed          = errors.New("malformed expression")
	ErrUnbound            = errors.New("unbound symbol")
	ErrEvaluation         = errors.New("evaluation error")
	ErrCastFailed         = errors.New("cast failed")
	ErrImmutableEntry     = errors.New("mapping entry is immutable")
)

// Error is a language-internal fault. Err is one of the sentinel errors
// above so callers can classify it with errors.Is.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error of the given kind.
func NewError(kind error, format string, a ...interface{}) *Error {
	return &Error{Err: kind, Message: fmt.Sprintf(format, a...)}
}

// hostError wraps a failure reported by a host function.
type hostError struct {
	name  string
	cause error
}

func (e *hostError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrEvaluation, e.name, e.cause)
}

func (e *hostError) Unwrap() []error { return []error{ErrEvaluation, e.cause} }

// WrapHostError marks err as raised by the named host function.
func WrapHostError(name string, err error) error {
	if err == nil {
		return nil
	}
	var internal *Error
	if errors.As(err, &internal) {
		return err
	}
	return &hostError{name: name, cause: err}
}
