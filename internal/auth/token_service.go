package auth

import (
	"context"
	"fmt"
	"time"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
)

// Identity is a verified session subject. Everything past the token service
// consumes this instead of touching tokens.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Roles  []model.UserRole
}

// IsAdmin reports whether the identity holds the global admin role.
func (id *Identity) IsAdmin() bool {
	for _, r := range id.Roles {
		if r.Role == model.RoleAdmin {
			return true
		}
	}
	return false
}

// TokenService issues, verifies, and revokes session tokens. Token strings
// are signed JWTs, but they are not self-contained: Verify requires a live,
// non-revoked row in the token table, so logout is effective immediately and
// across service instances.
type TokenService struct {
	jwt    *JWTService
	tokens repository.TokenRepository
	users  repository.UserRepository
}

// NewTokenService creates a new token service.
func NewTokenService(jwt *JWTService, tokens repository.TokenRepository, users repository.UserRepository) *TokenService {
	return &TokenService{jwt: jwt, tokens: tokens, users: users}
}

// Issue mints a token for the user and persists its backing record. The
// record is durably written before the token string is returned, so a Verify
// of this token immediately afterward observes it as valid. Existing tokens
// of the same user stay untouched; concurrent sessions are allowed.
func (s *TokenService) Issue(ctx context.Context, user *model.User) (string, error) {
	tokenID, token, err := s.jwt.Sign(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	record := &model.AuthToken{
		TokenID:  tokenID,
		UserID:   user.ID,
		IssuedAt: time.Now(),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	return token, nil
}

// Verify resolves a token string to an identity. A token whose record is
// missing or revoked fails, as does a token whose subject no longer exists.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := s.jwt.Parse(tokenString)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	record, err := s.tokens.FindByTokenID(ctx, claims.ID)
	if err != nil || record.Revoked {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	return &Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Roles:  user.Roles,
	}, nil
}

// Revoke flags the token's record. Unknown, unparseable, or already-revoked
// tokens are treated as success so logout stays idempotent.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.jwt.Parse(tokenString)
	if err != nil {
		return nil
	}
	return s.tokens.Revoke(ctx, claims.ID)
}
