package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
)

const bcryptCost = 10

// TokenIssuer is the slice of the token service the auth flows need.
type TokenIssuer interface {
	Issue(ctx context.Context, user *model.User) (string, error)
	Revoke(ctx context.Context, tokenString string) error
}

// AuthService handles registration, login, logout, and the one-time default
// admin bootstrap.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, tokenString string) error
	Bootstrap(ctx context.Context)
}

type authService struct {
	users         repository.UserRepository
	tokens        TokenIssuer
	adminEmail    string
	adminPassword string
	log           *zap.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, adminEmail, adminPassword string, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		users:         users,
		tokens:        tokens,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		log:           log,
	}
}

// Register creates a diner account and logs it in.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Roles:        []model.UserRole{{Role: model.RoleDiner}},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrConflict
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates credentials and issues a fresh session token. Unknown
// email and wrong password both map to ErrNotFound: the API deliberately does
// not distinguish them.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperrors.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrNotFound
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the presented token. Idempotent.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	return s.tokens.Revoke(ctx, tokenString)
}

// Bootstrap inserts the default administrator. It runs asynchronously at
// startup and may race with other instances doing the same; the unique email
// index decides the winner, so no cross-process lock is needed. Until it
// completes, logins for the default admin can transiently fail, and only
// that first login is worth retrying by callers.
func (s *authService) Bootstrap(ctx context.Context) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcryptCost)
	if err != nil {
		s.log.Error("bootstrap: hash admin password", zap.Error(err))
		return
	}

	admin := &model.User{
		Name:         "admin",
		Email:        s.adminEmail,
		PasswordHash: string(hashedPassword),
		Roles:        []model.UserRole{{Role: model.RoleAdmin}},
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Info("bootstrap: default admin already present", zap.String("email", s.adminEmail))
			return
		}
		s.log.Error("bootstrap: create default admin", zap.Error(err))
		return
	}
	s.log.Info("bootstrap: default admin created", zap.String("email", s.adminEmail))
}
