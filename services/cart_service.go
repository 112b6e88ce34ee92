package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/repository"
)

// CartStore persists carts keyed by user.
type CartStore interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// ProductReader resolves products for cart validation and snapshots.
type ProductReader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// AddItemRequest is the add-to-cart payload.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// CartItemKeyRequest identifies one cart line for update/remove.
type CartItemKeyRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

type CartService struct {
	carts    CartStore
	products ProductReader
}

func NewCartService(carts CartStore, products ProductReader) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, or an empty cart when none exists.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return cart, nil
}

// AddItem validates the product, size and color, then merges the line
// into the cart. Stock is deliberately not checked here; availability
// is enforced at checkout.
func (s *CartService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*models.Cart, error) {
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return nil, apperrors.Validation("Invalid product id")
	}
	if req.Quantity < 1 {
		return nil, apperrors.Validation("Quantity must be positive")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	if len(product.Sizes) > 0 && !product.HasSize(req.Size) {
		return nil, apperrors.Validation(fmt.Sprintf("Size %q is not available for this product", req.Size))
	}
	if len(product.Colors) > 0 && !product.HasColor(req.Color) {
		return nil, apperrors.Validation(fmt.Sprintf("Color %q is not available for this product", req.Color))
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(models.CartItem{
		ProductID: product.ID.Hex(),
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity; a quantity of zero or below
// removes the line.
func (s *CartService) SetQuantity(ctx context.Context, userID string, req CartItemKeyRequest) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(req.ProductID, req.Size, req.Color, req.Quantity)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

// RemoveItem deletes a line. Removing an absent line is a no-op, not an
// error.
func (s *CartService) RemoveItem(ctx context.Context, userID string, req CartItemKeyRequest) (*models.Cart, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(req.ProductID, req.Size, req.Color)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Delete(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
