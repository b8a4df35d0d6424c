package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "tabscribe-api/core/errors"
)

func TestToHumaError(t *testing.T) {
	tests := []struct {
		name           string
		input          error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "ValidationError returns 400",
			input:          &coreerrors.ValidationError{Field: "apiKey", Message: "invalid format"},
			expectedStatus: 400,
			expectedDetail: "apiKey",
		},
		{
			name:           "AuthError returns 401",
			input:          &coreerrors.AuthError{Message: "token expired"},
			expectedStatus: 401,
			expectedDetail: "token expired",
		},
		{
			name:           "NotFoundError returns 404",
			input:          &coreerrors.NotFoundError{Resource: "tab", ID: "T1"},
			expectedStatus: 404,
			expectedDetail: "tab not found",
		},
		{
			name:           "ConflictError returns 409",
			input:          &coreerrors.ConflictError{Message: "busy"},
			expectedStatus: 409,
			expectedDetail: "busy",
		},
		{
			name:           "upstream 429 returns 429",
			input:          &coreerrors.ExternalAPIError{StatusCode: 429, Message: "quota", API: "gemini"},
			expectedStatus: 429,
			expectedDetail: "Rate limited",
		},
		{
			name:           "upstream 500 returns 503",
			input:          &coreerrors.ExternalAPIError{StatusCode: 500, Message: "boom", API: "gemini"},
			expectedStatus: 503,
			expectedDetail: "External service error",
		},
		{
			name:           "upstream 400 returns 502",
			input:          &coreerrors.ExternalAPIError{StatusCode: 400, Message: "API key not valid", API: "gemini"},
			expectedStatus: 502,
			expectedDetail: "External service request error",
		},
		{
			name:           "MalformedResponseError returns 502",
			input:          &coreerrors.MalformedResponseError{API: "gemini", Reason: "no candidates"},
			expectedStatus: 502,
			expectedDetail: "Malformed",
		},
		{
			name:           "TransportError returns 504",
			input:          &coreerrors.TransportError{API: "gmail", Err: errors.New("dial tcp: refused")},
			expectedStatus: 504,
			expectedDetail: "unreachable",
		},
		{
			name:           "PersistenceError returns 500",
			input:          &coreerrors.PersistenceError{Op: "put", Key: "k", Err: errors.New("disk full")},
			expectedStatus: 500,
			expectedDetail: "Storage error",
		},
		{
			name:           "wrapped NotFoundError returns 404",
			input:          fmt.Errorf("wrapped: %w", &coreerrors.NotFoundError{Resource: "prompt", ID: "3"}),
			expectedStatus: 404,
			expectedDetail: "prompt not found",
		},
		{
			name:           "unknown error returns 500",
			input:          errors.New("some unknown error"),
			expectedStatus: 500,
			expectedDetail: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toHumaError(tt.input)

			humaErr, ok := result.(*huma.ErrorModel)
			require.True(t, ok, "Expected huma.ErrorModel")
			assert.Equal(t, tt.expectedStatus, humaErr.Status)
			assert.Contains(t, humaErr.Detail, tt.expectedDetail)
		})
	}
}

func TestToHumaError_Nil(t *testing.T) {
	assert.Nil(t, toHumaError(nil))
}
