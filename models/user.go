package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered customer or administrator. Password holds a bcrypt
// hash and is never serialized to JSON.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Mobile    string             `json:"mobile" bson:"mobile"`
	Address   string             `json:"address" bson:"address"`
	Role      string             `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// UserSummary is the wire shape returned by register/login.
type UserSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile,omitempty"`
	Address string `json:"address,omitempty"`
	Role    string `json:"role"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		Mobile:  u.Mobile,
		Address: u.Address,
		Role:    u.Role,
	}
}

// RegisterRequest is the register payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Mobile   string `json:"mobile" binding:"required"`
	Address  string `json:"address" binding:"required"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
