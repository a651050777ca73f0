package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeConflict              = "CONFLICT"
	ErrCodeNoVowelsSelected      = "NO_VOWELS_SELECTED"
	ErrCodeNoAudioMatches        = "NO_AUDIO_MATCHES"
	ErrCodeInsufficientOptions   = "INSUFFICIENT_OPTIONS"
	ErrCodeAudioIndexUnavailable = "AUDIO_INDEX_UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INSUFFICIENT_OPTIONS")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewConflictError creates a new CONFLICT error
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewNoVowelsSelectedError reports a filter selection without any vowel marks.
// Distinct from NO_AUDIO_MATCHES so the UI can point at the filter panel.
func NewNoVowelsSelectedError() *AppError {
	return &AppError{
		Code:    ErrCodeNoVowelsSelected,
		Message: "select at least one vowel mark before starting a quiz",
		Status:  400,
	}
}

// NewNoAudioMatchesError reports that the selected filters produce syllables,
// but none of them has a matching recording.
func NewNoAudioMatchesError() *AppError {
	return &AppError{
		Code:    ErrCodeNoAudioMatches,
		Message: "no syllables from the current filters have matching audio",
		Status:  422,
	}
}

// NewInsufficientOptionsError reports that the allowed set is too small to
// fill a round, and by how much.
func NewInsufficientOptionsError(have, needed int) *AppError {
	return &AppError{
		Code:    ErrCodeInsufficientOptions,
		Message: fmt.Sprintf("need %d syllables for a round, have %d (short by %d)", needed, have, needed-have),
		Status:  409,
	}
}

// NewAudioIndexUnavailableError reports that the audio manifest could not be
// loaded; quiz sessions cannot start without it.
func NewAudioIndexUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeAudioIndexUnavailable,
		Message: "audio index unavailable, quiz is disabled",
		Status:  503,
		Err:     err,
	}
}
