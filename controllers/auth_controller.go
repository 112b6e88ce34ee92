package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/services"
)

// AuthAPI is the auth service surface the controller depends on.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type AuthController struct {
	service AuthAPI
	tokens  *services.TokenService
}

func NewAuthController(service AuthAPI, tokens *services.TokenService) *AuthController {
	return &AuthController{service: service, tokens: tokens}
}

// Register creates a new user account.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload"})
		return
	}

	user, err := ac.service.Register(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	zap.L().Info("user registered", zap.String("email", user.Email))
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user.Summary(),
	})
}

// Login verifies credentials and issues an access token.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	user, err := ac.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	token, err := ac.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		zap.L().Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Summary(),
		"token":   token,
	})
}
