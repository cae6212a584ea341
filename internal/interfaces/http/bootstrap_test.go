package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/application/auth"
	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/application/usecase"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/session"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/lfc-estoque/internal/interfaces/http"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// Backend en memoria recién abierto, cableado como en cmd/api.
func TestMemoria_UsuarioInicialPermiteEntrar(t *testing.T) {
	ctx := context.Background()
	log := logger.Nop()
	backend := storage.NewMemory()
	t.Cleanup(backend.Close)

	authUC := auth.NewAuthUseCase(backend.Users, session.NewMemoryStore(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:             authUC,
		ProductUC:          usecase.NewProductUseCase(backend.Products, backend.TxRunner, log),
		ShelfUC:            usecase.NewShelfUseCase(backend.Shelves, backend.Stock, backend.TxRunner),
		StockUC:            inventory.NewStockUseCase(backend.TxRunner, backend.Products, backend.Stock, backend.Movements, nil, log),
		LoginRatePerMinute: 100,
		Log:                log,
	})
	env := &testEnv{app: app, authUC: authUC}

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "sin usuario inicial nadie puede entrar")

	created, err := authUC.EnsureUser(ctx, dto.RegisterRequest{Email: testEmail, Password: testPassword, Name: "Admin"})
	require.NoError(t, err)
	require.True(t, created)
	created, err = authUC.EnsureUser(ctx, dto.RegisterRequest{Email: testEmail, Password: testPassword})
	require.NoError(t, err)
	assert.False(t, created, "un segundo arranque no duplica el usuario")

	token := env.login(t)
	resp = env.do(t, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.MeResponse
	decode(t, resp, &me)
	assert.Equal(t, testEmail, me.Email)
}
