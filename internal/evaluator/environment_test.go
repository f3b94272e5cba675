package evaluator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	assert.Equal(t, NIL, env.Result())
	assert.False(t, env.IsExiting())

	next := env.WithResult(&Integer{Value: 1})
	assert.Equal(t, NIL, env.Result())
	assert.Equal(t, int64(1), Unwrap(next).(*Integer).Value)

	exited := next.Exit(&Integer{Value: 2})
	assert.False(t, next.IsExiting())
	assert.True(t, exited.IsExiting())
	_, wrapped := exited.Result().(*ReturnValue)
	assert.True(t, wrapped)
	assert.Equal(t, int64(2), Unwrap(exited).(*Integer).Value)
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		value Object
		want  bool
	}{
		{nil, false},
		{NIL, false},
		{FALSE, false},
		{TRUE, true},
		{&Integer{Value: 0}, true},
		{&String{Value: ""}, true},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.value != nil {
			name = tt.value.Inspect()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTruthy(tt.value))
		})
	}
}

func TestErrors(t *testing.T) {
	err := NewError(ErrUnbound, "%s", "x")
	assert.ErrorIs(t, err, ErrUnbound)
	assert.Equal(t, "unbound symbol: x", err.Error())

	cause := errors.New("boom")
	host := WrapHostError("f", cause)
	assert.ErrorIs(t, host, ErrEvaluation)
	assert.ErrorIs(t, host, cause)

	assert.Same(t, err, WrapHostError("f", err))
	assert.ErrorIs(t, WrapHostError("f", fmt.Errorf("wrapped: %w", err)), ErrUnbound)
	assert.Nil(t, WrapHostError("f", nil))
}
