package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
)

// MockTokenRepository is a mock implementation of repository.TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByTokenID(ctx context.Context, tokenID string) (*model.AuthToken, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthToken), args.Error(1)
}

func (m *MockTokenRepository) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) AddRole(ctx context.Context, role *model.UserRole) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func testUser() *model.User {
	return &model.User{
		ID:    5,
		Name:  "pizza diner",
		Email: "d@jwt.com",
		Roles: []model.UserRole{{Role: model.RoleDiner}},
	}
}

func TestTokenService_IssueThenVerify(t *testing.T) {
	tokenRepo := new(MockTokenRepository)
	userRepo := new(MockUserRepository)
	user := testUser()

	var storedID string
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.AuthToken")).
		Run(func(args mock.Arguments) {
			record := args.Get(1).(*model.AuthToken)
			storedID = record.TokenID
		}).Return(nil)

	svc := NewTokenService(NewJWTService("test-secret"), tokenRepo, userRepo)
	token, err := svc.Issue(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, storedID)

	// Verify immediately after a successful issue must resolve the same user.
	tokenRepo.On("FindByTokenID", mock.Anything, storedID).
		Return(&model.AuthToken{TokenID: storedID, UserID: user.ID}, nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	identity, err := svc.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, user.Email, identity.Email)
	assert.Equal(t, user.Roles, identity.Roles)

	tokenRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestTokenService_VerifyFailures(t *testing.T) {
	jwtSvc := NewJWTService("test-secret")
	user := testUser()

	t.Run("garbage token", func(t *testing.T) {
		svc := NewTokenService(jwtSvc, new(MockTokenRepository), new(MockUserRepository))
		_, err := svc.Verify(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("record missing", func(t *testing.T) {
		tokenID, token, err := jwtSvc.Sign(user.ID, user.Email)
		require.NoError(t, err)

		tokenRepo := new(MockTokenRepository)
		tokenRepo.On("FindByTokenID", mock.Anything, tokenID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTokenService(jwtSvc, tokenRepo, new(MockUserRepository))
		_, err = svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("record revoked", func(t *testing.T) {
		tokenID, token, err := jwtSvc.Sign(user.ID, user.Email)
		require.NoError(t, err)

		tokenRepo := new(MockTokenRepository)
		tokenRepo.On("FindByTokenID", mock.Anything, tokenID).
			Return(&model.AuthToken{TokenID: tokenID, UserID: user.ID, Revoked: true}, nil)

		svc := NewTokenService(jwtSvc, tokenRepo, new(MockUserRepository))
		_, err = svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("subject user gone", func(t *testing.T) {
		tokenID, token, err := jwtSvc.Sign(user.ID, user.Email)
		require.NoError(t, err)

		tokenRepo := new(MockTokenRepository)
		tokenRepo.On("FindByTokenID", mock.Anything, tokenID).
			Return(&model.AuthToken{TokenID: tokenID, UserID: user.ID}, nil)
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTokenService(jwtSvc, tokenRepo, userRepo)
		_, err = svc.Verify(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}

func TestTokenService_RevokeIsIdempotent(t *testing.T) {
	jwtSvc := NewJWTService("test-secret")
	user := testUser()

	tokenID, token, err := jwtSvc.Sign(user.ID, user.Email)
	require.NoError(t, err)

	tokenRepo := new(MockTokenRepository)
	// Revoke issues the same flag update regardless of current state.
	tokenRepo.On("Revoke", mock.Anything, tokenID).Return(nil).Twice()

	svc := NewTokenService(jwtSvc, tokenRepo, new(MockUserRepository))
	assert.NoError(t, svc.Revoke(context.Background(), token))
	assert.NoError(t, svc.Revoke(context.Background(), token))

	// Unparseable tokens revoke to success as well.
	assert.NoError(t, svc.Revoke(context.Background(), "junk"))

	tokenRepo.AssertExpectations(t)
}
