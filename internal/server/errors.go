package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobsearch-insights/internal/dataset"
	"github.com/jonathan/jobsearch-insights/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSourceUnavailable indicates the dataset source is not configured or failed
type ErrSourceUnavailable struct {
	Message string
	Cause   error
}

func (e *ErrSourceUnavailable) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrSourceUnavailable) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		sourceErr     *ErrSourceUnavailable
		schemaErr     *schemas.ValidationError
		loadErr       *dataset.LoadError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &loadErr):
		return http.StatusBadRequest
	case errors.As(err, &sourceErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fromValidator converts the first validator/v10 field failure into an ErrValidation.
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}
