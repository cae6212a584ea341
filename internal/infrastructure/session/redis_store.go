package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
)

const keyPrefix = "session:"

// RedisStore guarda las sesiones en Redis con TTL igual al vencimiento del token.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

var _ repository.SessionStore = (*RedisStore)(nil)

// NewRedisStore crea el store sobre un cliente ya configurado.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// key clave Redis de una sesión.
func key(id string) string { return keyPrefix + id }

// Save guarda la sesión como JSON con TTL hasta su vencimiento.
func (s *RedisStore) Save(ctx context.Context, sess *entity.Session) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("sesión %s ya vencida: %w", sess.ID, domain.ErrInvalidInput)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get lee la sesión; ausente o vencida → ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	if sess.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Delete borra la sesión; ausente → ErrSessionNotFound.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
