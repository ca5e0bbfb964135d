package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pizzeria/internal/auth"
	"pizzeria/internal/errors"
	"pizzeria/internal/model"
	"pizzeria/internal/service"
)

// FranchiseHandler handles franchise and store endpoints.
type FranchiseHandler struct {
	franchiseService service.FranchiseService
}

// NewFranchiseHandler creates a new franchise handler.
func NewFranchiseHandler(franchiseService service.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

// FranchiseAdminRef names a franchise admin by email.
type FranchiseAdminRef struct {
	Email string `json:"email" validate:"required,email"`
}

// CreateFranchiseRequest represents a franchise creation request.
type CreateFranchiseRequest struct {
	Name   string              `json:"name" validate:"required"`
	Admins []FranchiseAdminRef `json:"admins" validate:"dive"`
}

// CreateStoreRequest represents a store creation request.
type CreateStoreRequest struct {
	Name string `json:"name" validate:"required"`
}

// ListFranchisesResponse is one page of franchises.
type ListFranchisesResponse struct {
	Franchises []model.Franchise `json:"franchises"`
	More       bool              `json:"more"`
}

// Create godoc
// @Summary Create a franchise
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFranchiseRequest true "Franchise data"
// @Success 200 {object} model.Franchise
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /franchise [post]
func (h *FranchiseHandler) Create(c echo.Context) error {
	if err := auth.Authorize(auth.FromContext(c), auth.ActionCreateFranchise, 0); err != nil {
		return domainError(err)
	}

	var req CreateFranchiseRequest
	if err := c.Bind(&req); err != nil {
		return domainError(errors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return domainError(errors.ErrValidation)
	}

	emails := make([]string, 0, len(req.Admins))
	for _, admin := range req.Admins {
		emails = append(emails, admin.Email)
	}

	franchise, err := h.franchiseService.Create(c.Request().Context(), req.Name, emails)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, franchise)
}

// List godoc
// @Summary List franchises
// @Tags franchise
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param name query string false "Name filter, * acts as a wildcard"
// @Success 200 {object} ListFranchisesResponse
// @Router /franchise [get]
func (h *FranchiseHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	franchises, more, err := h.franchiseService.List(c.Request().Context(), page, limit, c.QueryParam("name"))
	if err != nil {
		return domainError(err)
	}
	if franchises == nil {
		franchises = []model.Franchise{}
	}
	return c.JSON(http.StatusOK, ListFranchisesResponse{Franchises: franchises, More: more})
}

// CreateStore godoc
// @Summary Create a store under a franchise
// @Tags franchise
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param franchiseId path int true "Franchise ID"
// @Param request body CreateStoreRequest true "Store data"
// @Success 200 {object} model.Store
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /franchise/{franchiseId}/store [post]
func (h *FranchiseHandler) CreateStore(c echo.Context) error {
	franchiseID, err := strconv.Atoi(c.Param("franchiseId"))
	if err != nil {
		return domainError(errors.ErrValidation)
	}

	if err := auth.Authorize(auth.FromContext(c), auth.ActionCreateStore, uint(franchiseID)); err != nil {
		return domainError(err)
	}

	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return domainError(errors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return domainError(errors.ErrValidation)
	}

	store, err := h.franchiseService.CreateStore(c.Request().Context(), uint(franchiseID), req.Name)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, store)
}
