package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/middleware"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
)

// CartAPI is the cart service surface the controller depends on.
type CartAPI interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddItem(ctx context.Context, userID string, req services.AddItemRequest) (*models.Cart, error)
	SetQuantity(ctx context.Context, userID string, req services.CartItemKeyRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID string, req services.CartItemKeyRequest) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type CartController struct {
	service CartAPI
}

func NewCartController(service CartAPI) *CartController {
	return &CartController{service: service}
}

// GetCart returns the caller's cart.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.service.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds a line to the cart, merging quantities on a duplicate
// (product, size, color) key.
func (cc *CartController) AddItem(c *gin.Context) {
	var req services.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item payload"})
		return
	}

	cart, err := cc.service.AddItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// UpdateItem sets a line's quantity; zero or below removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	var req services.CartItemKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item payload"})
		return
	}

	cart, err := cc.service.SetQuantity(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem deletes a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	var req services.CartItemKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item payload"})
		return
	}

	cart, err := cc.service.RemoveItem(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ClearCart removes all lines from the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.service.Clear(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
