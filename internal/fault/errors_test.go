package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type assertionError struct{ msg string }

func (e *assertionError) Error() string { return e.msg }

func TestRunGuarded(t *testing.T) {
	assertion := &assertionError{msg: "x"}
	other := errors.New("y")

	tests := []struct {
		name     string
		body     func() error
		expected error
	}{
		{
			name:     "success",
			body:     func() error { return nil },
			expected: nil,
		},
		{
			name:     "wrapper fault is replaced by its cause",
			body:     func() error { return &InterruptedError{Op: "analysis", Cause: assertion} },
			expected: assertion,
		},
		{
			name:     "other fault propagates unchanged",
			body:     func() error { return other },
			expected: other,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RunGuarded(tt.body)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.Same(t, tt.expected, err)
		})
	}
}

func TestRunGuarded_KeepsCauseType(t *testing.T) {
	err := RunGuarded(func() error {
		return &InterruptedError{Op: "analysis", Cause: &assertionError{msg: "x"}}
	})

	var ae *assertionError
	assert.True(t, errors.As(err, &ae))
	assert.Equal(t, "x", ae.Error())
	assert.False(t, errors.Is(err, ErrInterrupted), "the wrapper must be gone")
}

func TestRunGuarded_NestedWrapperKeepsOuterContext(t *testing.T) {
	assertion := &assertionError{msg: "x"}
	err := RunGuarded(func() error {
		return fmt.Errorf("typecheck stage: %w", &InterruptedError{Op: "a", Cause: assertion})
	})

	assert.EqualError(t, err, "typecheck stage: x")
	assert.False(t, errors.Is(err, ErrInterrupted), "the wrapper must be gone")

	var ae *assertionError
	assert.True(t, errors.As(err, &ae))
	assert.Same(t, assertion, ae)
	assert.Same(t, assertion, errors.Unwrap(err))
}

func TestRunGuarded_WrapperWithoutCause(t *testing.T) {
	wrapper := &InterruptedError{Op: "analysis"}
	err := RunGuarded(func() error { return wrapper })

	assert.Same(t, wrapper, err)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestInterruptedError(t *testing.T) {
	cause := errors.New("boom")
	err := &InterruptedError{Op: "analysis", Cause: cause}

	assert.EqualError(t, err, "analysis: interrupted on worker: boom")
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, cause)
	assert.EqualError(t, &InterruptedError{Op: "analysis"}, "analysis: interrupted on worker")
}
