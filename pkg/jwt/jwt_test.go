package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/pkg/jwt"
)

const secret = "test-secret-for-unit-tests"

func TestGenerateYParse(t *testing.T) {
	token, exp, err := jwt.Generate(secret, "user-1", "ana@lfc.com", "sess-1", "lfc-estoque", 60)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@lfc.com", claims.Email)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "lfc-estoque", claims.Issuer)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, _, err := jwt.Generate(secret, "user-1", "ana@lfc.com", "sess-1", "lfc-estoque", 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, _, err := jwt.Generate(secret, "user-1", "ana@lfc.com", "sess-1", "lfc-estoque", -1)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SinSesion(t *testing.T) {
	token, _, err := jwt.Generate(secret, "user-1", "ana@lfc.com", "", "lfc-estoque", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(secret, token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, _, err := jwt.Generate("", "user-1", "ana@lfc.com", "sess-1", "lfc-estoque", 60)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Parse("", "x.y.z")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
