// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	coreerrors "tabscribe-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case coreerrors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())
	case coreerrors.IsAuth(err):
		return huma.Error401Unauthorized(err.Error())
	case coreerrors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case coreerrors.IsConflict(err):
		return huma.Error409Conflict(err.Error())
	case coreerrors.IsMalformedResponse(err):
		return huma.Error502BadGateway("Malformed upstream response", err)
	case coreerrors.IsTransport(err):
		return huma.Error504GatewayTimeout("Upstream service unreachable", err)
	case coreerrors.IsPersistence(err):
		return huma.Error500InternalServerError("Storage error", err)
	}

	var apiErr *coreerrors.ExternalAPIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			return huma.Error429TooManyRequests("Rate limited by external service", err)
		case apiErr.StatusCode >= 500:
			return huma.Error503ServiceUnavailable("External service error", err)
		default:
			return huma.Error502BadGateway("External service request error", err)
		}
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
