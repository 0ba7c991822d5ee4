package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear servicio: %w", NewValidationError(
		FieldError{Field: "name", Message: "es requerido"},
		FieldError{Field: "price", Message: "debe ser mayor o igual a 0"},
	))

	assert.ErrorIs(t, err, ErrInvalidInput)

	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"name: es requerido", "price: debe ser mayor o igual a 0"}, ve.Messages())
	assert.Contains(t, err.Error(), "name: es requerido; price")
}

func TestValidationError_SinCampos(t *testing.T) {
	assert.Equal(t, ErrInvalidInput.Error(), NewValidationError().Error())
}
