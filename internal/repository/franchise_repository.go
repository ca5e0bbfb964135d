package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"pizzeria/internal/model"
)

// FranchiseRepository defines franchise and store persistence operations.
type FranchiseRepository interface {
	Create(ctx context.Context, franchise *model.Franchise) error
	FindByID(ctx context.Context, id uint) (*model.Franchise, error)
	List(ctx context.Context, offset, limit int, namePattern string) ([]model.Franchise, bool, error)
	CreateStore(ctx context.Context, store *model.Store) error
	FindStoreByID(ctx context.Context, id uint) (*model.Store, error)
}

type franchiseRepository struct {
	db *gorm.DB
}

// NewFranchiseRepository creates a new franchise repository.
func NewFranchiseRepository(db *gorm.DB) FranchiseRepository {
	return &franchiseRepository{db: db}
}

func (r *franchiseRepository) Create(ctx context.Context, franchise *model.Franchise) error {
	return r.db.WithContext(ctx).Create(franchise).Error
}

func (r *franchiseRepository) FindByID(ctx context.Context, id uint) (*model.Franchise, error) {
	var franchise model.Franchise
	if err := r.db.WithContext(ctx).Preload("Stores").First(&franchise, id).Error; err != nil {
		return nil, err
	}
	return &franchise, nil
}

// List returns one page of franchises in insertion order plus a flag telling
// whether further pages exist. namePattern supports a glob-style "*" wildcard.
func (r *franchiseRepository) List(ctx context.Context, offset, limit int, namePattern string) ([]model.Franchise, bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Franchise{}).Preload("Stores").Order("id")
	if namePattern != "" && namePattern != "*" {
		q = q.Where("name LIKE ?", strings.ReplaceAll(namePattern, "*", "%"))
	}

	// Fetch one extra row to decide whether more pages exist.
	var franchises []model.Franchise
	if err := q.Offset(offset).Limit(limit + 1).Find(&franchises).Error; err != nil {
		return nil, false, err
	}

	more := len(franchises) > limit
	if more {
		franchises = franchises[:limit]
	}
	return franchises, more, nil
}

func (r *franchiseRepository) CreateStore(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *franchiseRepository) FindStoreByID(ctx context.Context, id uint) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
