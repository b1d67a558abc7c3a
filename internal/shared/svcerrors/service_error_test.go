package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidArgumentError("ANL_1000", "input must be an array of log objects", nil),
			wantErr: NewInvalidArgumentError("ANL_1000", "input must be an array of log objects", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("ANL_9000", nil)),
			wantErr: NewInternalError("ANL_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestServiceError_Error(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")

	invalid := NewInvalidArgumentError("ANL_1001", "invalid json", cause)
	assert.Equal(t, "ANL_1001: invalid json: unexpected end of JSON input", invalid.Error())
	assert.True(t, invalid.IsInvalidArgument())
	assert.Equal(t, 400, invalid.HttpStatusCode)
	assert.ErrorIs(t, invalid, cause)

	internal := NewInternalError("ANL_9000", cause)
	assert.Equal(t, "ANL_9000: internal server error", internal.Error())
	assert.True(t, internal.IsInternalError())
	assert.Equal(t, 500, internal.HttpStatusCode)
}

func TestNewInternalErrorPanic(t *testing.T) {
	err := NewInternalErrorPanic(errors.New("boom"))
	assert.Equal(t, "SYS_9000", err.Code)
	assert.Equal(t, "SYS_9001", NewInternalErrorUndefined(errors.New("x")).Code)
}
