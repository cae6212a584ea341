// createuser da de alta un usuario de login sobre el almacenamiento configurado.
//
// Uso: go run ./cmd/createuser -email ana@ejemplo.com -password 'secreto123' [-name "Ana"]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/lfc-estoque/internal/application/auth"
	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/session"
	"github.com/jhoicas/lfc-estoque/internal/infrastructure/storage"
	"github.com/jhoicas/lfc-estoque/pkg/config"
	"github.com/jhoicas/lfc-estoque/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del usuario (obligatorio)")
	password := flag.String("password", "", "password, mínimo 8 caracteres (obligatorio)")
	name := flag.String("name", "", "nombre a mostrar")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.Storage.Driver == config.StorageDriverMemory {
		fmt.Fprintln(os.Stderr, "Con STORAGE_DRIVER=memory el usuario no sobrevive al proceso; use BOOTSTRAP_EMAIL y BOOTSTRAP_PASSWORD en el servidor")
		os.Exit(2)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	uc := auth.NewAuthUseCase(backend.Users, session.NewMemoryStore(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: *email, Password: *password, Name: *name})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		fmt.Fprintf(os.Stderr, "El email %s ya está registrado\n", *email)
		os.Exit(1)
	case errors.Is(err, domain.ErrInvalidInput):
		fmt.Fprintln(os.Stderr, "Email inválido o password de menos de 8 caracteres")
		os.Exit(1)
	case err != nil:
		log.Fatal().Err(err).Msg("crear usuario")
	}

	fmt.Printf("Usuario creado: %s (%s)\n", user.Email, user.ID)
}
