package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/repository"
)

// OrderStore is the persistence surface for orders.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAllWithBuyer(ctx context.Context) ([]models.OrderWithBuyer, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) (*models.Order, error)
}

// ProductStock resolves products and mutates their stock for checkout.
type ProductStock interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) error
}

// PlaceOrderRequest is the checkout payload. Line items come from the
// caller's stored cart, not the request body.
type PlaceOrderRequest struct {
	ShippingAddress string               `json:"shipping_address" binding:"required"`
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	Coordinates     *models.GeoPoint     `json:"coordinates,omitempty"`
}

type OrderService struct {
	orders   OrderStore
	products ProductStock
	carts    CartStore
}

func NewOrderService(orders OrderStore, products ProductStock, carts CartStore) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts}
}

// PlaceOrder converts the caller's cart into an order: it snapshots each
// line from the live product, prices the order, decrements stock with a
// conditional update per line (rolling back on any failure), persists
// the order as pending and clears the cart.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req PlaceOrderRequest) (*models.Order, error) {
	buyerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validation("Invalid user id")
	}

	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, apperrors.Validation("Shipping address is required")
	}

	method := req.PaymentMethod
	if method == "" {
		method = models.PaymentCOD
	}
	if !method.Valid() {
		return nil, apperrors.Validation("Invalid payment method")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if cart == nil || cart.IsEmpty() {
		return nil, apperrors.Validation("Cart is empty")
	}

	// Snapshot pass: resolve every product and copy its current name
	// and price before any stock is touched.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			return nil, apperrors.Validation("Invalid product id in cart")
		}

		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.Validation(fmt.Sprintf("%s is no longer available", line.Name))
			}
			return nil, apperrors.Internal(err)
		}
		if product.Stock < line.Quantity {
			return nil, apperrors.Validation(fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	quote := PriceOrder(orderSubtotal(items))

	// Decrement pass: each line is a single conditional update, so two
	// concurrent checkouts cannot both cross zero. A failure undoes the
	// decrements already applied.
	applied := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollbackStock(ctx, applied)
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, apperrors.Validation(fmt.Sprintf("Insufficient stock for %s", item.Name))
			}
			return nil, apperrors.Internal(err)
		}
		applied = append(applied, item)
	}

	now := time.Now().UTC()
	order := &models.Order{
		UserID:          buyerID,
		Items:           items,
		Subtotal:        quote.Subtotal.InexactFloat64(),
		Shipping:        quote.Shipping.InexactFloat64(),
		Tax:             quote.Tax.InexactFloat64(),
		Total:           quote.Total.InexactFloat64(),
		Status:          models.StatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   method,
		Coordinates:     req.Coordinates,
		TrackingID:      newTrackingID(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.rollbackStock(ctx, applied)
		return nil, apperrors.Internal(err)
	}

	if err := s.carts.Delete(ctx, userID); err != nil {
		// The order is already placed; a stale cart is recoverable.
		zap.L().Warn("failed to clear cart after order placement",
			zap.String("user_id", userID), zap.Error(err))
	}

	return order, nil
}

func (s *OrderService) rollbackStock(ctx context.Context, applied []models.OrderItem) {
	for _, item := range applied {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			zap.L().Error("failed to restore stock after aborted order",
				zap.String("product_id", item.ProductID.Hex()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
		}
	}
}

// ListByUser returns a user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, apperrors.Validation("Invalid user id")
	}

	orders, err := s.orders.FindByUser(ctx, id)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// ListAll returns every order with buyer display fields, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderWithBuyer, error) {
	orders, err := s.orders.FindAllWithBuyer(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// UpdateStatus transitions an order to the target status. Transitions
// must follow the allowed forward order (or go to cancelled); terminal
// orders are immutable.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, apperrors.Validation("Invalid order id")
	}
	if !target.Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("Unknown status %q", target))
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, apperrors.Validation(fmt.Sprintf("Cannot transition order from %s to %s", order.Status, target))
	}

	updated, err := s.orders.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return updated, nil
}

func orderSubtotal(items []models.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

// newTrackingID generates an opaque human-readable shipment reference,
// distinct from the order id.
func newTrackingID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TRK" + raw[:9]
}
