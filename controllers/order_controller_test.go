package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/middleware"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
)

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, userID string, req services.PlaceOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderService) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *mockOrderService) ListAll(ctx context.Context) ([]models.OrderWithBuyer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderWithBuyer), args.Error(1)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

// identityAs stands in for RequireAuth, seeding the context the way the
// middleware would after validating a token.
func identityAs(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.RoleKey, role)
		c.Next()
	}
}

func orderRouter(t *testing.T, svc OrderAPI, userID, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := NewOrderController(svc)
	r := gin.New()
	auth := r.Group("/api/orders", identityAs(userID, role))
	auth.POST("", ctrl.CreateOrder)
	auth.GET("/user/:userId", ctrl.GetUserOrders)
	auth.PUT("/:id/status", ctrl.UpdateStatus)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	svc := new(mockOrderService)
	order := &models.Order{
		ID:     primitive.NewObjectID(),
		Status: models.StatusPending,
		Total:  1885.64,
	}
	svc.On("PlaceOrder", mock.Anything, "u1", mock.AnythingOfType("services.PlaceOrderRequest")).Return(order, nil)

	w := doJSON(orderRouter(t, svc, "u1", models.RoleUser), http.MethodPost, "/api/orders",
		`{"shipping_address":"221B Baker Street","payment_method":"cod"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Order placed successfully")
	svc.AssertExpectations(t)
}

func TestCreateOrderEndpointRequiresAddress(t *testing.T) {
	svc := new(mockOrderService)

	w := doJSON(orderRouter(t, svc, "u1", models.RoleUser), http.MethodPost, "/api/orders",
		`{"payment_method":"cod"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PlaceOrder")
}

func TestCreateOrderEndpointEmptyCart(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("PlaceOrder", mock.Anything, "u1", mock.Anything).
		Return(nil, apperrors.Validation("Cart is empty"))

	w := doJSON(orderRouter(t, svc, "u1", models.RoleUser), http.MethodPost, "/api/orders",
		`{"shipping_address":"221B Baker Street"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cart is empty")
}

func TestGetUserOrdersOwnershipCheck(t *testing.T) {
	svc := new(mockOrderService)
	svc.On("ListByUser", mock.Anything, "u1").Return([]models.Order{}, nil)
	svc.On("ListByUser", mock.Anything, "u2").Return([]models.Order{}, nil)

	// Customers read only their own orders.
	asUser := orderRouter(t, svc, "u1", models.RoleUser)
	assert.Equal(t, http.StatusOK, doJSON(asUser, http.MethodGet, "/api/orders/user/u1", "").Code)
	assert.Equal(t, http.StatusForbidden, doJSON(asUser, http.MethodGet, "/api/orders/user/u2", "").Code)

	// Admins read anyone's.
	asAdmin := orderRouter(t, svc, "a1", models.RoleAdmin)
	assert.Equal(t, http.StatusOK, doJSON(asAdmin, http.MethodGet, "/api/orders/user/u2", "").Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	svc := new(mockOrderService)
	id := primitive.NewObjectID()
	updated := &models.Order{ID: id, Status: models.StatusConfirmed}
	svc.On("UpdateStatus", mock.Anything, id.Hex(), models.StatusConfirmed).Return(updated, nil)

	w := doJSON(orderRouter(t, svc, "a1", models.RoleAdmin), http.MethodPut,
		"/api/orders/"+id.Hex()+"/status", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order status updated successfully")
	svc.AssertExpectations(t)
}

func TestUpdateStatusEndpointInvalidTransition(t *testing.T) {
	svc := new(mockOrderService)
	id := primitive.NewObjectID()
	svc.On("UpdateStatus", mock.Anything, id.Hex(), models.StatusConfirmed).
		Return(nil, apperrors.Validation("Cannot transition order from delivered to confirmed"))

	w := doJSON(orderRouter(t, svc, "a1", models.RoleAdmin), http.MethodPut,
		"/api/orders/"+id.Hex()+"/status", `{"status":"confirmed"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Cannot transition order")
}
