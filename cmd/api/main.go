package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/lfc-estoque/docs"
	"github.com/jhoicas/lfc-estoque/internal/application/auth"
	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/application/inventory"
	"github.com/jhoicas/lfc-estoque/internal/application/usecase"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	infrapdf "github.com/jhoicas/lfc-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/session"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/lfc-estoque/internal/interfaces/http"
	"github.com/jhoicas/lfc-estoque/pkg/config"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

// @title                       LFC Estoque API
// @version                     1.0
// @description                 Inventario de productos por estantería: asignación, retirada y vista agrupada.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	sessions, closeSessions := openSessionStore(ctx, cfg.Redis, log)
	defer closeSessions()

	authUC := auth.NewAuthUseCase(backend.Users, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Bootstrap.Enabled() {
		created, err := authUC.EnsureUser(ctx, dto.RegisterRequest{
			Email:    cfg.Bootstrap.Email,
			Password: cfg.Bootstrap.Password,
			Name:     cfg.Bootstrap.Name,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario inicial")
		}
		log.Info().Str("email", cfg.Bootstrap.Email).Bool("created", created).Msg("usuario inicial")
	}

	productUC := usecase.NewProductUseCase(backend.Products, backend.TxRunner, log)
	shelfUC := usecase.NewShelfUseCase(backend.Shelves, backend.Stock, backend.TxRunner)

	// PDF: reporte imprimible del inventario agrupado
	pdfGenerator := infrapdf.NewMarotoPDFGenerator("Inventario " + cfg.App.Name)
	stockUC := inventory.NewStockUseCase(backend.TxRunner, backend.Products, backend.Stock, backend.Movements, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "LFC Estoque API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": backend.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:             authUC,
		ProductUC:          productUC,
		ShelfUC:            shelfUC,
		StockUC:            stockUC,
		APIKey:             cfg.HTTP.APIKey,
		LoginRatePerMinute: cfg.HTTP.LoginRatePerMinute,
		Log:                log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openSessionStore usa Redis si REDIS_ADDR está configurado; si no, sesiones en memoria.
func openSessionStore(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (repository.SessionStore, func()) {
	if !cfg.Enabled() {
		log.Warn().Msg("REDIS_ADDR vacío: sesiones en memoria, se pierden al reiniciar")
		return session.NewMemoryStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("conexión a Redis")
	}
	log.Info().Str("addr", cfg.Addr).Msg("sesiones en Redis")
	return session.NewRedisStore(client), func() { _ = client.Close() }
}
