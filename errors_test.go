package toolgen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientError(t *testing.T) {
	err := &ClientError{Reason: "x must be an integer", Err: ErrValidation}
	assert.Equal(t, "invalid arguments: x must be an integer", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, (&ClientError{Reason: "bare"}).Unwrap())
}

func TestSystemError_HidesCause(t *testing.T) {
	cause := errors.New("backend refused connection")
	err := &SystemError{Err: cause}
	assert.NotContains(t, err.Error(), "refused")
	assert.Same(t, cause, err.Unwrap())
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		client, system bool
	}{
		{"client", &ClientError{Reason: "x"}, true, false},
		{"wrapped client", fmt.Errorf("call 1: %w", &ClientError{Reason: "x"}), true, false},
		{"system", &SystemError{Err: ErrTimeout}, false, true},
		{"wrapped system", fmt.Errorf("call 2: %w", &SystemError{Err: ErrTimeout}), false, true},
		{"sentinel", ErrToolNotFound, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.client, IsClientError(tt.err))
			assert.Equal(t, tt.system, IsSystemError(tt.err))
		})
	}
}

func TestAborted(t *testing.T) {
	cause := errors.New("client closed")
	err := aborted(cause)
	require.ErrorIs(t, err, ErrStreamAborted)
	require.ErrorIs(t, err, cause)
	assert.Same(t, err, aborted(err))
}

func TestClassify(t *testing.T) {
	require.NoError(t, classify(nil))
	ce := &ClientError{Reason: "bad"}
	assert.Same(t, ce, classify(ce))
	stop := aborted(errors.New("gone"))
	assert.Equal(t, stop, classify(stop))

	backend := errors.New("backend down")
	err := classify(backend)
	assert.True(t, IsSystemError(err))
	assert.ErrorIs(t, err, backend)
}
