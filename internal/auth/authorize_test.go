package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
)

func adminIdentity() *Identity {
	return &Identity{UserID: 1, Roles: []model.UserRole{{Role: model.RoleAdmin}}}
}

func franchiseeIdentity(franchiseID uint) *Identity {
	return &Identity{UserID: 2, Roles: []model.UserRole{
		{Role: model.RoleDiner},
		{Role: model.RoleFranchisee, ObjectID: franchiseID},
	}}
}

func dinerIdentity() *Identity {
	return &Identity{UserID: 3, Roles: []model.UserRole{{Role: model.RoleDiner}}}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		identity   *Identity
		action     Action
		resourceID uint
		expected   error
	}{
		{"nil identity is unauthenticated", nil, ActionCreateOrder, 0, apperrors.ErrUnauthenticated},
		{"admin can create franchises", adminIdentity(), ActionCreateFranchise, 0, nil},
		{"admin can create stores anywhere", adminIdentity(), ActionCreateStore, 42, nil},
		{"admin can update the menu", adminIdentity(), ActionUpdateMenu, 0, nil},
		{"admin can update any user", adminIdentity(), ActionUpdateUser, 99, nil},
		{"franchisee can create store under own franchise", franchiseeIdentity(7), ActionCreateStore, 7, nil},
		{"franchisee cannot create store under other franchise", franchiseeIdentity(7), ActionCreateStore, 8, apperrors.ErrForbidden},
		{"franchisee cannot create franchises", franchiseeIdentity(7), ActionCreateFranchise, 0, apperrors.ErrForbidden},
		{"franchisee cannot update the menu", franchiseeIdentity(7), ActionUpdateMenu, 0, apperrors.ErrForbidden},
		{"diner can create orders", dinerIdentity(), ActionCreateOrder, 0, nil},
		{"diner can list own orders", dinerIdentity(), ActionListOrders, 0, nil},
		{"diner can update own profile", dinerIdentity(), ActionUpdateUser, 3, nil},
		{"diner cannot update another profile", dinerIdentity(), ActionUpdateUser, 4, apperrors.ErrForbidden},
		{"diner cannot create stores", dinerIdentity(), ActionCreateStore, 7, apperrors.ErrForbidden},
		{"diner cannot update the menu", dinerIdentity(), ActionUpdateMenu, 0, apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.action, tt.resourceID)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}
