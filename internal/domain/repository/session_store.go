package repository

import (
	"context"

	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
)

// SessionStore guarda las sesiones activas. Get devuelve domain.ErrSessionNotFound si no existe o expiró.
type SessionStore interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
