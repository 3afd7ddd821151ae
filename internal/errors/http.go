package errors

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON shape rendered for any failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the public parts of an InternalError.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse converts any error into the public response shape.
// Internal messages are never leaked for unmarked errors.
func NewErrorResponse(err error) ErrorResponse {
	detail := ErrorDetail{
		Code:    "internal_error",
		Message: "An unexpected error occurred",
	}

	var ie *InternalError
	if errors.As(err, &ie) {
		if ie.mark != nil {
			detail.Code = ie.mark.Error()
		}
		if ie.hint != "" {
			detail.Message = ie.hint
		} else {
			detail.Message = ie.message
		}
		detail.Details = ie.reportableDetails
	}

	return ErrorResponse{Success: false, Error: detail}
}

// HTTPStatusFromErr maps an error mark to an HTTP status code.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	case IsGateway(err):
		return http.StatusBadGateway
	default:
		// Database, partial failure and internal errors are all server-side.
		return http.StatusInternalServerError
	}
}
