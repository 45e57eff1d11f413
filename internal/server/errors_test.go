package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobboard/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", &types.NotFoundError{Kind: "job", ID: "x"}, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", &types.NotFoundError{Kind: "job"}), http.StatusNotFound},
		{"invalid input", &types.InvalidInputError{Field: "scope", Message: "bad"}, http.StatusBadRequest},
		{"validation", &ErrValidation{Field: "id", Message: "must be a UUID"}, http.StatusBadRequest},
		{"unauthorized", &ErrUnauthorized{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{Resource: "candidate x"}, http.StatusForbidden},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: id - must be a UUID", (&ErrValidation{Field: "id", Message: "must be a UUID"}).Error())
	assert.Equal(t, "access denied: candidate 42", (&ErrForbidden{Resource: "candidate 42"}).Error())
	assert.Equal(t, "authentication required", (&ErrUnauthorized{}).Error())
}
