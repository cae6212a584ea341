package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	pkgjwt "github.com/jhoicas/lfc-estoque/pkg/jwt"
)

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/products", "", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/products", "", nil, "Authorization", "Basic abc")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/api/products", "token.invalido.aqui", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_TokenSinSesion_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	// token bien firmado cuyo session id nunca se guardó
	tok, _, err := pkgjwt.Generate(testJWTSecret, "u-1", testEmail, "sesion-inexistente", testIssuer, 60)
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/products", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, resp))
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	env := newTestEnv(t)
	tok, _, err := pkgjwt.Generate(testJWTSecret, "u-1", testEmail, "s-1", testIssuer, -1)
	require.NoError(t, err)

	resp := env.do(t, http.MethodGet, "/api/stock", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestLogin_Me_Logout(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp := env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	decode(t, resp, &me)
	assert.Equal(t, testEmail, me.Email)
	assert.NotEmpty(t, me.SessionID)
	assert.True(t, me.ExpiresAt.After(time.Now()))

	resp = env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// el mismo token ya no sirve después del logout
	resp = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, resp))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@lfc.test", Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv(t, withLoginRate(2))
	bad := dto.LoginRequest{Email: testEmail, Password: "incorrecta"}

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/auth/login", "", bad).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/auth/login", "", bad).StatusCode)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", bad)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, resp))
}

func TestRegister_RequiereSesion(t *testing.T) {
	env := newTestEnv(t)
	in := dto.RegisterRequest{Email: "nuevo@lfc.test", Password: "clave-larga", Name: "Nuevo"}

	resp := env.do(t, http.MethodPost, "/api/auth/register", "", in)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := env.login(t)
	resp = env.do(t, http.MethodPost, "/api/auth/register", token, in)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user dto.UserResponse
	decode(t, resp, &user)
	assert.Equal(t, "nuevo@lfc.test", user.Email)

	resp = env.do(t, http.MethodPost, "/api/auth/register", token, in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/register", token, dto.RegisterRequest{Email: "corta@lfc.test", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIKeyMiddleware(t *testing.T) {
	env := newTestEnv(t, withAPIKey("clave-fija"))
	login := dto.LoginRequest{Email: testEmail, Password: testPassword}

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_API_KEY", errorCode(t, resp))

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", login, "apikey", "otra")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", login, "apikey", "clave-fija")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
