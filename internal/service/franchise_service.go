package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
)

// FranchiseService maintains the franchise/store hierarchy.
type FranchiseService interface {
	Create(ctx context.Context, name string, adminEmails []string) (*model.Franchise, error)
	List(ctx context.Context, page, limit int, namePattern string) ([]model.Franchise, bool, error)
	CreateStore(ctx context.Context, franchiseID uint, name string) (*model.Store, error)
}

type franchiseService struct {
	franchises repository.FranchiseRepository
	users      repository.UserRepository
}

// NewFranchiseService creates a new franchise service.
func NewFranchiseService(franchises repository.FranchiseRepository, users repository.UserRepository) FranchiseService {
	return &franchiseService{franchises: franchises, users: users}
}

// Create inserts a franchise and grants the franchisee role to each listed
// admin. Every admin email must resolve to an existing user.
func (s *franchiseService) Create(ctx context.Context, name string, adminEmails []string) (*model.Franchise, error) {
	admins := make([]model.User, 0, len(adminEmails))
	for _, email := range adminEmails {
		user, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("resolve admin %s: %w", email, err)
		}
		admins = append(admins, *user)
	}

	franchise := &model.Franchise{Name: name}
	if err := s.franchises.Create(ctx, franchise); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("create franchise: %w", err)
	}

	for i := range admins {
		role := &model.UserRole{
			UserID:   admins[i].ID,
			Role:     model.RoleFranchisee,
			ObjectID: franchise.ID,
		}
		if err := s.users.AddRole(ctx, role); err != nil {
			return nil, fmt.Errorf("grant franchisee role: %w", err)
		}
		admins[i].Roles = append(admins[i].Roles, *role)
	}

	franchise.Admins = admins
	return franchise, nil
}

// List is a public paginated read in insertion order.
func (s *franchiseService) List(ctx context.Context, page, limit int, namePattern string) ([]model.Franchise, bool, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}
	franchises, more, err := s.franchises.List(ctx, page*limit, limit, namePattern)
	if err != nil {
		return nil, false, err
	}
	return franchises, more, nil
}

// CreateStore adds a store under an existing franchise.
func (s *franchiseService) CreateStore(ctx context.Context, franchiseID uint, name string) (*model.Store, error) {
	if _, err := s.franchises.FindByID(ctx, franchiseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	store := &model.Store{FranchiseID: franchiseID, Name: name}
	if err := s.franchises.CreateStore(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return store, nil
}
