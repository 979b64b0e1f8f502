package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	plain := Unauthenticated("no session")
	assert.Equal(t, "no session", plain.Error())

	cause := stderrors.New("connection refused")
	wrapped := Wrap(cause, ErrCodeUpstream, "list records")
	assert.Equal(t, "list records: connection refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrap(cause, ErrCodeInternal, "wrapped")

	assert.True(t, stderrors.Is(wrapped, cause))

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
}

func TestWrap_NilCause(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeUpstream, "ignored"))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		code ErrorCode
	}{
		{Unauthenticated("m"), ErrCodeUnauthenticated},
		{RoleRequired("m"), ErrCodeRoleRequired},
		{MalformedRedirect("m"), ErrCodeMalformedRedirect},
		{Validation("m", nil), ErrCodeValidation},
		{Upstream("m"), ErrCodeUpstream},
		{NotFound("m"), ErrCodeNotFound},
		{Internalf("m %d", 1), ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestValidation_CarriesFields(t *testing.T) {
	fields := map[string]string{"pin": "PIN must be a 6-digit number."}
	err := Validation("invalid record fields", fields)
	assert.Equal(t, fields, err.Fields)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeUpstream, CodeOf(Upstream("m")))
	assert.Equal(t, ErrCodeInternal, CodeOf(stderrors.New("plain")))

	// Code survives further wrapping with %w.
	outer := fmt.Errorf("context: %w", NotFound("missing"))
	assert.Equal(t, ErrCodeNotFound, CodeOf(outer))
}

func TestIsCode(t *testing.T) {
	err := Validation("bad input", nil)
	assert.True(t, IsCode(err, ErrCodeValidation))
	assert.False(t, IsCode(err, ErrCodeUpstream))
}
