package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobsearch-insights/internal/dataset"
	"github.com/jonathan/jobsearch-insights/internal/schemas"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "limit", Message: "must be positive"}
	assert.Equal(t, "validation error: limit - must be positive", err.Error())
}

func TestErrSourceUnavailable(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &ErrSourceUnavailable{Message: "failed to load dataset", Cause: cause}
	assert.Equal(t, "failed to load dataset: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no source", (&ErrSourceUnavailable{Message: "no source"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "validation", err: &ErrValidation{Field: "f"}, expected: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("outer: %w", &ErrValidation{}), expected: http.StatusBadRequest},
		{name: "source", err: &ErrSourceUnavailable{Message: "down"}, expected: http.StatusServiceUnavailable},
		{name: "dataset load", err: &dataset.LoadError{Message: "bad"}, expected: http.StatusBadRequest},
		{
			name:     "schema inside load error",
			err:      &dataset.LoadError{Message: "bad", Cause: &schemas.ValidationError{}},
			expected: http.StatusUnprocessableEntity,
		},
		{name: "unknown", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestFromValidator(t *testing.T) {
	type req struct {
		Count int `validate:"gte=1"`
	}
	err := fromValidator(validator.New().Struct(req{}))

	var ve *ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "req.Count", ve.Field)
	assert.Contains(t, ve.Message, "gte")

	err = fromValidator(errors.New("odd"))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)
}
