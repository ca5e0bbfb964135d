package handler

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"pizzeria/internal/auth"
	"pizzeria/internal/errors"
	"pizzeria/internal/factory"
	"pizzeria/internal/model"
	"pizzeria/internal/service"
)

// OrderHandler handles menu and order endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// AddMenuItemRequest represents a menu addition.
type AddMenuItemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
}

// OrderItemRequest is one requested order line. The client may echo a price
// but it is ignored; the server resolves prices from the menu.
type OrderItemRequest struct {
	MenuID      uint            `json:"menuId" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// CreateOrderRequest represents an order submission.
type CreateOrderRequest struct {
	FranchiseID uint               `json:"franchiseId" validate:"required"`
	StoreID     uint               `json:"storeId" validate:"required"`
	Items       []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOrderResponse carries the persisted order and the factory's
// confirmation token.
type CreateOrderResponse struct {
	Order     *model.Order `json:"order"`
	JWT       string       `json:"jwt"`
	ReportURL string       `json:"reportUrl,omitempty"`
}

// OrderHistoryResponse is one page of a diner's orders.
type OrderHistoryResponse struct {
	DinerID uint          `json:"dinerId"`
	Orders  []model.Order `json:"orders"`
	Page    int           `json:"page"`
}

// Menu godoc
// @Summary Get the menu
// @Tags order
// @Produce json
// @Success 200 {array} model.MenuItem
// @Router /order/menu [get]
func (h *OrderHandler) Menu(c echo.Context) error {
	items, err := h.orderService.Menu(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	if items == nil {
		items = []model.MenuItem{}
	}
	return c.JSON(http.StatusOK, items)
}

// AddMenuItem godoc
// @Summary Append a menu item
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddMenuItemRequest true "Menu item"
// @Success 200 {array} model.MenuItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /order/menu [put]
func (h *OrderHandler) AddMenuItem(c echo.Context) error {
	if err := auth.Authorize(auth.FromContext(c), auth.ActionUpdateMenu, 0); err != nil {
		return domainError(err)
	}

	var req AddMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return domainError(errors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return domainError(errors.ErrValidation)
	}

	items, err := h.orderService.AddMenuItem(c.Request().Context(), &model.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	})
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Submit an order for fulfillment
// @Tags order
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order"
// @Success 200 {object} CreateOrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /order [post]
func (h *OrderHandler) Create(c echo.Context) error {
	identity := auth.FromContext(c)
	if err := auth.Authorize(identity, auth.ActionCreateOrder, 0); err != nil {
		return domainError(err)
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return domainError(errors.ErrValidation)
	}
	if err := c.Validate(&req); err != nil {
		return domainError(errors.ErrValidation)
	}

	in := &service.OrderInput{FranchiseID: req.FranchiseID, StoreID: req.StoreID}
	for _, item := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			MenuID:      item.MenuID,
			Description: item.Description,
		})
	}

	order, confirmation, err := h.orderService.Create(c.Request().Context(), identity, in)
	if err != nil {
		// A factory rejection is terminal and carries the factory's own reason.
		var rejection *factory.RejectionError
		if stderrors.As(err, &rejection) {
			return echo.NewHTTPError(http.StatusBadGateway, errors.ErrorResponse{
				Error: rejection.Error(),
				Code:  "FACTORY_REJECTED",
			})
		}
		return domainError(err)
	}

	return c.JSON(http.StatusOK, CreateOrderResponse{
		Order:     order,
		JWT:       confirmation.JWT,
		ReportURL: confirmation.ReportURL,
	})
}

// History godoc
// @Summary List the authenticated diner's orders, newest first
// @Tags order
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} OrderHistoryResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /order [get]
func (h *OrderHandler) History(c echo.Context) error {
	identity := auth.FromContext(c)
	if err := auth.Authorize(identity, auth.ActionListOrders, 0); err != nil {
		return domainError(err)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	orders, err := h.orderService.ListForDiner(c.Request().Context(), identity.UserID, page)
	if err != nil {
		return domainError(err)
	}
	if orders == nil {
		orders = []model.Order{}
	}

	return c.JSON(http.StatusOK, OrderHistoryResponse{
		DinerID: identity.UserID,
		Orders:  orders,
		Page:    page,
	})
}
