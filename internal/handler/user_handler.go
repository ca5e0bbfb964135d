package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/auth"
	"pizzeria/internal/errors"
	"pizzeria/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateUserRequest represents a profile update. Empty fields keep their
// current values.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	identity := auth.FromContext(c)
	if identity == nil {
		return domainError(errors.ErrUnauthenticated)
	}

	user, err := h.userService.Get(c.Request().Context(), identity.UserID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update godoc
// @Summary Update a user's profile, re-issuing a token for the new identity
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Profile changes"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domainError(errors.ErrValidation)
	}

	if err := auth.Authorize(auth.FromContext(c), auth.ActionUpdateUser, uint(id)); err != nil {
		return domainError(err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return domainError(errors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return domainError(errors.ErrValidation)
	}

	user, token, err := h.userService.Update(c.Request().Context(), uint(id), req.Name, req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
}
