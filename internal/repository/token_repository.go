package repository

import (
	"context"

	"gorm.io/gorm"

	"pizzeria/internal/model"
)

// TokenRepository defines session token persistence operations.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AuthToken) error
	FindByTokenID(ctx context.Context, tokenID string) (*model.AuthToken, error)
	Revoke(ctx context.Context, tokenID string) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) FindByTokenID(ctx context.Context, tokenID string) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := r.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke flags a token as revoked. Revoking an unknown or already-revoked
// token updates zero rows and is not an error.
func (r *tokenRepository) Revoke(ctx context.Context, tokenID string) error {
	return r.db.WithContext(ctx).Model(&model.AuthToken{}).
		Where("token_id = ?", tokenID).
		Update("revoked", true).Error
}
