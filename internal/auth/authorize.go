package auth

import (
	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/model"
)

// Action is a guarded operation.
type Action string

const (
	ActionCreateFranchise Action = "franchise:create"
	ActionCreateStore     Action = "store:create"
	ActionUpdateMenu      Action = "menu:update"
	ActionCreateOrder     Action = "order:create"
	ActionListOrders      Action = "order:list"
	ActionUpdateUser      Action = "user:update"
)

// Authorize evaluates the role policy for an identity, an action, and the id
// of the resource the action targets (a franchise id for store creation, a
// user id for profile updates, zero where no resource applies). It is a pure
// function over the role set: no state, safe to call concurrently.
//
// Policy: admin may do anything; a franchisee may create stores under its own
// franchise; every authenticated user is a diner and may manage its own
// profile and orders. Everything else is forbidden.
func Authorize(id *Identity, action Action, resourceID uint) error {
	if id == nil {
		return apperrors.ErrUnauthenticated
	}
	if id.IsAdmin() {
		return nil
	}

	switch action {
	case ActionCreateStore:
		for _, r := range id.Roles {
			if r.Role == model.RoleFranchisee && r.ObjectID == resourceID {
				return nil
			}
		}
	case ActionCreateOrder, ActionListOrders:
		return nil
	case ActionUpdateUser:
		if resourceID == id.UserID {
			return nil
		}
	}

	return apperrors.ErrForbidden
}
