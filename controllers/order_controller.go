package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/middleware"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
)

// OrderAPI is the order service surface the controller depends on.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, userID string, req services.PlaceOrderRequest) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.OrderWithBuyer, error)
	UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error)
}

type OrderController struct {
	service OrderAPI
}

func NewOrderController(service OrderAPI) *OrderController {
	return &OrderController{service: service}
}

// CreateOrder converts the caller's cart into a pending order.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Shipping address is required"})
		return
	}

	userID := middleware.GetUserID(c)
	order, err := oc.service.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID),
		zap.Float64("total", order.Total),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetUserOrders lists a user's orders. Customers may only read their
// own; admins may read anyone's.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	userID := c.Param("userId")
	if userID != middleware.GetUserID(c) && c.GetString(middleware.RoleKey) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Cannot read another user's orders"})
		return
	}

	orders, err := oc.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetAllOrders lists every order with buyer display fields. Admin only.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.service.ListAll(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus transitions an order along the allowed lifecycle. Admin
// only.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	order, err := oc.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
