package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
)

func newAuthService(users *MockUserRepository, tokens *MockTokenIssuer) AuthService {
	return NewAuthService(users, tokens, "a@jwt.com", "admin", nil)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockTokenIssuer)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "t1@x.com",
			setupMock: func(users *MockUserRepository, tokens *MockTokenIssuer) {
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				tokens.On("Issue", mock.Anything, mock.AnythingOfType("*model.User")).Return("tok", nil)
			},
			expectedError: nil,
		},
		{
			name:  "duplicate email",
			email: "existing@x.com",
			setupMock: func(users *MockUserRepository, tokens *MockTokenIssuer) {
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenIssuer)
			tt.setupMock(users, tokens)

			svc := newAuthService(users, tokens)
			user, token, err := svc.Register(context.Background(), "t", tt.email, "test")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.Equal(t, []model.UserRole{{Role: model.RoleDiner}}, user.Roles)
				assert.Equal(t, "tok", token)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("test"), bcryptCost)
	existing := &model.User{
		ID:           7,
		Name:         "t",
		Email:        "t1@x.com",
		PasswordHash: string(hashedPassword),
		Roles:        []model.UserRole{{Role: model.RoleDiner}},
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenIssuer)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "t1@x.com",
			password: "test",
			setupMock: func(users *MockUserRepository, tokens *MockTokenIssuer) {
				users.On("FindByEmail", mock.Anything, "t1@x.com").Return(existing, nil)
				tokens.On("Issue", mock.Anything, existing).Return("tok", nil)
			},
		},
		{
			name:     "unknown email is not found",
			email:    "nobody@x.com",
			password: "test",
			setupMock: func(users *MockUserRepository, tokens *MockTokenIssuer) {
				users.On("FindByEmail", mock.Anything, "nobody@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			// Wrong password and unknown email are indistinguishable on the
			// wire; both surface as not found.
			name:     "wrong password is not found",
			email:    "t1@x.com",
			password: "wrong",
			setupMock: func(users *MockUserRepository, tokens *MockTokenIssuer) {
				users.On("FindByEmail", mock.Anything, "t1@x.com").Return(existing, nil)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tokens := new(MockTokenIssuer)
			tt.setupMock(users, tokens)

			svc := newAuthService(users, tokens)
			user, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, "tok", token)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	users := new(MockUserRepository)
	tokens := new(MockTokenIssuer)
	tokens.On("Revoke", mock.Anything, "tok").Return(nil).Twice()

	svc := newAuthService(users, tokens)
	assert.NoError(t, svc.Logout(context.Background(), "tok"))
	// Second logout of the same token is also success.
	assert.NoError(t, svc.Logout(context.Background(), "tok"))

	tokens.AssertExpectations(t)
}

func TestAuthService_Bootstrap(t *testing.T) {
	t.Run("creates default admin with admin role", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "a@jwt.com" && len(u.Roles) == 1 && u.Roles[0].Role == model.RoleAdmin
		})).Return(nil)

		svc := newAuthService(users, new(MockTokenIssuer))
		svc.Bootstrap(context.Background())
		users.AssertExpectations(t)
	})

	t.Run("duplicate insert means another instance won", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		// Must not panic or error; the uniqueness constraint is the lock.
		svc := newAuthService(users, new(MockTokenIssuer))
		svc.Bootstrap(context.Background())
		users.AssertExpectations(t)
	})
}
