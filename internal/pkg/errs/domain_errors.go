package errs

import "errors"

// Error kinds surfaced to callers. Use-case errors wrap one of these so that
// errors.Is classifies them without knowing the concrete sentinel.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidRange = errors.New("end time must be after start time")
	ErrConflict     = errors.New("time slot is already reserved")
	ErrValidation   = errors.New("validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
