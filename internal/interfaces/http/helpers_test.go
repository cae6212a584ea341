package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lfc-estoque/internal/application/auth"
	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/application/usecase"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/lfc-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/session"
	apphttp "github.com/jhoicas/lfc-estoque/internal/interfaces/http"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "lfc-estoque-test"
	testEmail     = "operador@lfc.test"
	testPassword  = "segredo123"
)

type testEnv struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

type envOption func(*apphttp.RouterDeps)

func withAPIKey(key string) envOption {
	return func(d *apphttp.RouterDeps) { d.APIKey = key }
}

func withLoginRate(perMinute int) envOption {
	return func(d *apphttp.RouterDeps) { d.LoginRatePerMinute = perMinute }
}

// newTestEnv arma la app completa sobre el backend en memoria con un usuario ya registrado.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	shelfRepo := memory.NewShelfRepository(store)
	stockRepo := memory.NewStockLinkRepository(store)
	movementRepo := memory.NewStockMovementRepository(store)
	txRunner := memory.NewTxRunner(store)

	authUC := auth.NewAuthUseCase(memory.NewUserRepository(store), session.NewMemoryStore(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	_, err := authUC.RegisterUser(context.Background(), dto.RegisterRequest{Email: testEmail, Password: testPassword, Name: "Operador"})
	require.NoError(t, err)

	deps := apphttp.RouterDeps{
		AuthUC:             authUC,
		ProductUC:          usecase.NewProductUseCase(productRepo, txRunner, log),
		ShelfUC:            usecase.NewShelfUseCase(shelfRepo, stockRepo, txRunner),
		StockUC:            inventory.NewStockUseCase(txRunner, productRepo, stockRepo, movementRepo, infrapdf.NewMarotoPDFGenerator("Inventario"), log),
		LoginRatePerMinute: 100,
		Log:                log,
	}
	for _, o := range opts {
		o(&deps)
	}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, deps)
	return &testEnv{app: app, authUC: authUC}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: testEmail, Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decode(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}
