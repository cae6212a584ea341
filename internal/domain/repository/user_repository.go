package repository

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID y FindByEmail devuelven (nil, nil) cuando no existe; Create devuelve
// domain.ErrEmailAlreadyExists si el email ya está registrado.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
