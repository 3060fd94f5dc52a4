package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/visitas-api/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateParse_UsuarioTienda(t *testing.T) {
	storeID := int64(7)
	token, err := jwt.Generate(secret, 3, "loja", &storeID, "visitas-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "loja", claims.Role)
	require.NotNil(t, claims.StoreID)
	assert.Equal(t, int64(7), *claims.StoreID)
	assert.Equal(t, "3", claims.Subject)
}

func TestGenerateParse_ComercialSinTienda(t *testing.T) {
	token, err := jwt.Generate(secret, 1, "comercial", nil, "visitas-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Nil(t, claims.StoreID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(secret, 1, "comercial", nil, "visitas-api", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(secret, 1, "comercial", nil, "visitas-api", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", 1, "comercial", nil, "visitas-api", 5)
	assert.Error(t, err)
}
