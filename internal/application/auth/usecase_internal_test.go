package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/techsolutions-api/pkg/password"
)

func TestDummyHash_ListoAntesDelPrimerLogin(t *testing.T) {
	require.NotEmpty(t, dummyHash)
	cost, err := bcrypt.Cost([]byte(dummyHash))
	require.NoError(t, err, "debe ser un hash bcrypt válido")
	assert.Equal(t, bcrypt.DefaultCost, cost, "mismo costo que los usuarios sembrados")
	assert.False(t, password.Verify("cualquier-cosa", dummyHash))
}

func TestMustHash_FallaEsFatal(t *testing.T) {
	assert.Panics(t, func() { mustHash("") })
}
