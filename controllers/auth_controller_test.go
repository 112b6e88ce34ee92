package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func authRouter(t *testing.T, svc AuthAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := services.NewTokenService("test-secret")
	require.NoError(t, err)

	ctrl := NewAuthController(svc, tokens)
	r := gin.New()
	r.POST("/api/auth/register", ctrl.Register)
	r.POST("/api/auth/login", ctrl.Login)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterEndpoint(t *testing.T) {
	svc := new(mockAuthService)
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Arjun Mehta",
		Email: "arjun@example.com",
		Role:  models.RoleUser,
	}
	svc.On("Register", mock.Anything, mock.AnythingOfType("models.RegisterRequest")).Return(user, nil)

	w := postJSON(authRouter(t, svc), "/api/auth/register",
		`{"name":"Arjun Mehta","email":"arjun@example.com","password":"s3cret-pass","mobile":"9876543210","address":"221B Baker Street"}`)

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "User created successfully", body["message"])
	summary := body["user"].(map[string]any)
	assert.Equal(t, "arjun@example.com", summary["email"])
	assert.NotContains(t, summary, "password")
	svc.AssertExpectations(t)
}

func TestRegisterEndpointRejectsBadPayload(t *testing.T) {
	svc := new(mockAuthService)

	w := postJSON(authRouter(t, svc), "/api/auth/register", `{"email":"arjun@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.Conflict("User already exists"))

	w := postJSON(authRouter(t, svc), "/api/auth/register",
		`{"name":"Arjun Mehta","email":"arjun@example.com","password":"s3cret-pass","mobile":"9876543210","address":"221B Baker Street"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestLoginEndpointIssuesToken(t *testing.T) {
	svc := new(mockAuthService)
	user := &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Arjun Mehta",
		Email: "arjun@example.com",
		Role:  models.RoleUser,
	}
	svc.On("Login", mock.Anything, "arjun@example.com", "s3cret-pass").Return(user, nil)

	w := postJSON(authRouter(t, svc), "/api/auth/login",
		`{"email":"arjun@example.com","password":"s3cret-pass"}`)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
	svc.AssertExpectations(t)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "arjun@example.com", "wrong").
		Return(nil, apperrors.Unauthorized("Invalid credentials"))

	w := postJSON(authRouter(t, svc), "/api/auth/login",
		`{"email":"arjun@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}
