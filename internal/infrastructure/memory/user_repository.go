package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementación en memoria de repository.UserRepository.
type UserRepository struct {
	store *Store
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserta el usuario. Email repetido → domain.ErrEmailAlreadyExists.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.store.scope(false, func(st *state) error {
		for _, cur := range st.users {
			if strings.EqualFold(cur.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

// GetByID devuelve el usuario o (nil, nil).
func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.store.scope(false, func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// FindByEmail busca por email sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.store.scope(false, func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
