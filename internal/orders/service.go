package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db/models"
	dbtypes "github.com/pariney/saree-storefront/pkg/db/types"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/metrics"
	"gorm.io/gorm"
)

const (
	emptyCartMessage = "Cart is empty"
	notFoundMessage  = "Order not found"
)

// Service derives orders from carts and serves the order listings.
type Service interface {
	// Checkout snapshots the caller's server-side cart into a pending order
	// and then clears the cart.
	Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error)
}

type cartStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ServiceParams groups dependencies for the order service.
type ServiceParams struct {
	Orders  orderRepository
	Cart    cartStore
	Metrics *metrics.CheckoutMetrics
	Logger  *logger.Logger
}

type service struct {
	orders  orderRepository
	cart    cartStore
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		orders:  params.Orders,
		cart:    params.Cart,
		metrics: params.Metrics,
		logg:    logg,
	}, nil
}

func (s *service) Checkout(ctx context.Context, userID uuid.UUID) (*models.Order, error) {
	lines, err := s.cart.List(ctx, userID)
	if err != nil {
		// a failed lookup is reported the same way as an empty cart
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{"user_id": userID.String(), "error": err.Error()}), "checkout.cart_lookup_failed")
		s.metrics.IncResult(metrics.CheckoutEmptyCart)
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, emptyCartMessage)
	}

	items := snapshot(lines)
	if len(items) == 0 {
		s.metrics.IncResult(metrics.CheckoutEmptyCart)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, emptyCartMessage)
	}

	order := &models.Order{
		UserID: userID,
		Items:  items,
		Total:  items.Total(),
		Status: enums.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.metrics.IncResult(metrics.CheckoutFailed)
		return nil, pkgerrors.Store(err, "insert order")
	}
	s.metrics.IncResult(metrics.CheckoutCreated)

	// The order stands even when the cart cannot be cleared; no transaction
	// spans the two writes.
	if err := s.cart.Clear(ctx, userID); err != nil {
		s.metrics.IncCartClearFailure()
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"user_id":  userID.String(),
			"error":    err.Error(),
		}), "checkout.cart_clear_failed")
	}
	return order, nil
}

// snapshot copies product fields into order items. Lines whose product no
// longer exists are dropped.
func snapshot(lines []models.CartItem) dbtypes.OrderItems {
	items := make(dbtypes.OrderItems, 0, len(lines))
	for _, line := range lines {
		if line.Product == nil || line.Quantity <= 0 {
			continue
		}
		items = append(items, dbtypes.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Image:     line.Product.Image,
		})
	}
	return items
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Store(err, "list orders")
	}
	return orders, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Store(err, "list orders")
	}
	return orders, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if input.ID == "" || input.Status == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id and status are required")
	}
	status, err := enums.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid status")
	}
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFoundMessage)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, notFoundMessage)
		}
		return nil, pkgerrors.Store(err, "update order status")
	}
	return order, nil
}
