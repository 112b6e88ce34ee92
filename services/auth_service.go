package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/menswear/storefront/errors"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/repository"
)

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new customer account. The password is stored as a
// bcrypt hash, never in recoverable form.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.Conflict("User already exists")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Mobile:   req.Mobile,
		Address:  req.Address,
		Role:     models.RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registration can still hit the unique index.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

// Login verifies credentials against the stored hash and returns the
// user record. Lookup and comparison failures produce the same error so
// the response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	return user, nil
}
