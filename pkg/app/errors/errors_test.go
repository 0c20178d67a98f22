package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceError_StatusCode(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{BadRequestError(nil, "invalid amount"), http.StatusBadRequest},
		{ResourceNotFoundError(nil, "no vault"), http.StatusNotFound},
		{ConflictError(nil, "busy"), http.StatusConflict},
		{DependencyError(io.EOF, "chain request failed"), http.StatusBadGateway},
		{GeneralError(nil), http.StatusInternalServerError},
		{&ServiceError{Category: Category(99)}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		var svcErr *ServiceError
		require.ErrorAs(t, tt.err, &svcErr)
		assert.Equal(t, tt.status, svcErr.StatusCode(), svcErr.Message)
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("top-up: %w", ConflictError(nil, "flow already running"))

	assert.True(t, Is(err, CategoryDataConflict))
	assert.False(t, Is(err, CategoryDataError))
	assert.False(t, Is(io.EOF, CategoryGeneralError))
}

func TestServiceError_MessageAndCause(t *testing.T) {
	err := DependencyError(io.ErrUnexpectedEOF, "price unavailable")

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "price unavailable", svcErr.Message)
	assert.Equal(t, io.ErrUnexpectedEOF.Error(), err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, "CategoryDependencyFailure", svcErr.Category.String())
	assert.Equal(t, "CategoryGeneralError", Category(42).String())
}
