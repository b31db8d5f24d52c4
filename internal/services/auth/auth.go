// Package auth содержит логику регистрации, входа и валидации JWT.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/wedding-planner/internal/lib/jwt"
	"github.com/magabrotheeeer/wedding-planner/internal/lib/password"
	"github.com/magabrotheeeer/wedding-planner/internal/models"
)

// ErrInvalidCredentials возвращается при неверном пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountSuspended возвращается при попытке входа в заблокированный аккаунт.
var ErrAccountSuspended = errors.New("account suspended")

// ErrAccountDeleted возвращается при попытке входа в удалённый аккаунт.
var ErrAccountDeleted = errors.New("account deleted")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service отвечает за регистрацию, авторизацию и валидацию JWT.
type Service struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	trialDays int
}

// New создает новый экземпляр Service. trialDays задаёт длительность
// пробного периода, который стартует в момент регистрации.
func New(users UserRepository, jwtMaker jwt.Maker, trialDays int) *Service {
	return &Service{
		users:     users,
		jwtMaker:  jwtMaker,
		trialDays: trialDays,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
// Аккаунт сразу переходит в trial_active, дата окончания пробного периода
// фиксируется в момент регистрации.
func (s *Service) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	trialEndsAt := time.Now().UTC().AddDate(0, 0, s.trialDays)
	user := models.User{
		UID:           uuid.New().String(),
		Email:         email,
		Username:      username,
		PasswordHash:  hashed,
		Role:          "user", // дефолтная роль при регистрации
		AccountStatus: models.StatusTrialActive,
		TrialEndsAt:   &trialEndsAt,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
// Вход в заблокированные и удалённые аккаунты запрещён.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	switch user.AccountStatus {
	case models.StatusSuspended:
		return "", "", ErrAccountSuspended
	case models.StatusDeleted:
		return "", "", ErrAccountDeleted
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе, роль и признак валидности.
func (s *Service) ValidateToken(_ context.Context, token string) (*models.User, string, bool, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, "", false, err
	}
	user := &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UID:      claims.UserUID,
	}
	return user, claims.Role, true, nil
}
