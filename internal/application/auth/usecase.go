package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/lfc-estoque/internal/application/dto"
	"github.com/jhoicas/lfc-estoque/internal/domain"
	"github.com/jhoicas/lfc-estoque/internal/domain/entity"
	"github.com/jhoicas/lfc-estoque/internal/domain/repository"
	"github.com/jhoicas/lfc-estoque/pkg/jwt"
)

const minPasswordLength = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, logout, sesión actual y alta de usuarios.
// Cada login crea una Session en el SessionStore; el token solo es válido mientras exista.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions repository.SessionStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureUser registra el usuario si su email aún no existe. created es false cuando ya estaba.
// Se usa al arrancar para sembrar el primer login (BOOTSTRAP_EMAIL / BOOTSTRAP_PASSWORD).
func (uc *AuthUseCase) EnsureUser(ctx context.Context, in dto.RegisterRequest) (created bool, err error) {
	_, err = uc.RegisterUser(ctx, in)
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Login verifica email/password, abre una sesión y retorna el token ligado a ella.
// Email desconocido y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	sessionID := uuid.New().String()
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, sessionID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	session := &entity.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		IssuedAt:  uc.now(),
		ExpiresAt: exp,
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      *toUserResponse(user),
	}, nil
}

// Authenticate resuelve la sesión de un token. Token inválido o expirado → ErrUnauthorized;
// sesión cerrada o vencida → ErrSessionNotFound.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrUnauthorized
	}
	if session.Expired(uc.now()) {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Logout elimina la sesión. Cerrar una sesión inexistente no es un error.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.sessions.Delete(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	return err
}

// Me devuelve los datos de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context, sessionID string) (*dto.MeResponse, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{
		UserID:    session.UserID,
		Email:     session.Email,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
