package usecase

import "errors"

// Error codes surfaced to the HTTP layer. Domain errors are caller mistakes
// and never retried; CONFLICT is the one exception the caller may retry once
// with fresh state.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeConflict              = "CONFLICT"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError marks infrastructure failures (database down, queue or LLM
// unreachable). These are never the caller's fault.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode extracts the taxonomy code from either error flavor, empty when
// the error is untyped.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
