package errors

import "errors"

// Marks classify errors into coarse categories. Every error returned by the
// application is marked with exactly one of these so transport layers and
// callers can branch on errors.Is without inspecting messages.
var (
	ErrValidation       = errors.New("validation_error")
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrPermissionDenied = errors.New("permission_denied")
	ErrDatabase         = errors.New("database_error")
	ErrGateway          = errors.New("gateway_error")
	// ErrPartialFailure means the external side effect succeeded but the
	// local write did not. The reportable details always carry the gateway
	// identifiers needed for reconciliation.
	ErrPartialFailure = errors.New("partial_failure")
	ErrInternal       = errors.New("internal_error")
)

// IsValidation checks if the error is marked as a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error is marked as a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is marked as an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsDatabase checks if the error is marked as a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsGateway checks if the error is marked as a gateway error
func IsGateway(err error) bool {
	return errors.Is(err, ErrGateway)
}

// IsPartialFailure checks if the error is marked as a partial failure
func IsPartialFailure(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
