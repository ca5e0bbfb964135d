package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pizzeria/internal/auth"
	"pizzeria/internal/cache"
	apperrors "pizzeria/internal/errors"
	"pizzeria/internal/factory"
	"pizzeria/internal/model"
	"pizzeria/internal/repository"
)

const (
	menuCacheKey = "menu"
	menuCacheTTL = 5 * time.Minute

	orderPageSize = 10
)

// FulfillmentClient submits validated orders to the external factory.
type FulfillmentClient interface {
	SubmitOrder(ctx context.Context, req *factory.FulfillmentRequest) (*factory.FulfillmentResponse, error)
}

// OrderItemInput is one requested order line. Only the menu reference is
// trusted; price is always resolved server-side.
type OrderItemInput struct {
	MenuID      uint
	Description string
}

// OrderInput is a diner's order request.
type OrderInput struct {
	FranchiseID uint
	StoreID     uint
	Items       []OrderItemInput
}

// OrderService owns the menu and the order submission workflow.
type OrderService interface {
	Menu(ctx context.Context) ([]model.MenuItem, error)
	AddMenuItem(ctx context.Context, item *model.MenuItem) ([]model.MenuItem, error)
	Create(ctx context.Context, identity *auth.Identity, in *OrderInput) (*model.Order, *factory.FulfillmentResponse, error)
	ListForDiner(ctx context.Context, dinerID uint, page int) ([]model.Order, error)
}

type orderService struct {
	menu       repository.MenuRepository
	orders     repository.OrderRepository
	franchises repository.FranchiseRepository
	factory    FulfillmentClient
	cache      *cache.Client
}

// NewOrderService creates a new order service.
func NewOrderService(
	menu repository.MenuRepository,
	orders repository.OrderRepository,
	franchises repository.FranchiseRepository,
	fulfillment FulfillmentClient,
	cache *cache.Client,
) OrderService {
	return &orderService{
		menu:       menu,
		orders:     orders,
		franchises: franchises,
		factory:    fulfillment,
		cache:      cache,
	}
}

// Menu returns the full menu, read through the cache. The cache is never
// authoritative; a miss or stale entry only costs a database read.
func (s *orderService) Menu(ctx context.Context) ([]model.MenuItem, error) {
	if data, _ := s.cache.Get(ctx, menuCacheKey); data != nil {
		var cached []model.MenuItem
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(items); err == nil {
		_ = s.cache.Set(ctx, menuCacheKey, payload, menuCacheTTL)
	}
	return items, nil
}

// AddMenuItem appends to the menu and returns the whole updated menu.
func (s *orderService) AddMenuItem(ctx context.Context, item *model.MenuItem) ([]model.MenuItem, error) {
	if item.Title == "" || item.Price.IsNegative() {
		return nil, apperrors.ErrValidation
	}

	if err := s.menu.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add menu item: %w", err)
	}
	_ = s.cache.Delete(ctx, menuCacheKey)

	return s.menu.List(ctx)
}

// Create runs the order through validation, persists it as submitted, and
// hands it to the factory. Validation failures persist nothing; a factory
// failure leaves the order persisted as failed. The factory client's internal
// retry loop is the only retry path for a given order.
func (s *orderService) Create(ctx context.Context, identity *auth.Identity, in *OrderInput) (*model.Order, *factory.FulfillmentResponse, error) {
	if len(in.Items) == 0 {
		return nil, nil, apperrors.ErrValidation
	}

	store, err := s.franchises.FindStoreByID(ctx, in.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, err
	}
	if store.FranchiseID != in.FranchiseID {
		return nil, nil, apperrors.ErrValidation
	}

	order := &model.Order{
		DinerID:     identity.UserID,
		FranchiseID: in.FranchiseID,
		StoreID:     in.StoreID,
		Status:      model.OrderStatusSubmitted,
	}
	for _, line := range in.Items {
		menuItem, err := s.menu.FindByID(ctx, line.MenuID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperrors.ErrNotFound
			}
			return nil, nil, err
		}

		description := line.Description
		if description == "" {
			description = menuItem.Title
		}
		order.Items = append(order.Items, model.OrderItem{
			MenuID:      menuItem.ID,
			Description: description,
			Price:       menuItem.Price,
		})
		order.Total = order.Total.Add(menuItem.Price)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("persist order: %w", err)
	}

	confirmation, err := s.factory.SubmitOrder(ctx, s.fulfillmentRequest(identity, order))
	if err != nil {
		order.Status = model.OrderStatusFailed
		_ = s.orders.Update(ctx, order)
		return nil, nil, err
	}

	order.Status = model.OrderStatusConfirmed
	order.ConfirmationID = confirmation.JWT
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("confirm order: %w", err)
	}
	return order, confirmation, nil
}

// ListForDiner returns one page of the diner's orders, newest-first.
func (s *orderService) ListForDiner(ctx context.Context, dinerID uint, page int) ([]model.Order, error) {
	if page < 0 {
		page = 0
	}
	orders, err := s.orders.ListByDiner(ctx, dinerID, page*orderPageSize, orderPageSize)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) fulfillmentRequest(identity *auth.Identity, order *model.Order) *factory.FulfillmentRequest {
	items := make([]factory.Item, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, factory.Item{
			MenuID:      line.MenuID,
			Description: line.Description,
			Price:       line.Price,
		})
	}
	return &factory.FulfillmentRequest{
		Diner: factory.DinerInfo{ID: identity.UserID, Name: identity.Name, Email: identity.Email},
		Order: factory.OrderInfo{
			ID:          order.ID,
			FranchiseID: order.FranchiseID,
			StoreID:     order.StoreID,
			Items:       items,
		},
	}
}
