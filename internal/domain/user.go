package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered shopper
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshToken represents a long-lived session token
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// PasswordReset is a pending password reset request
type PasswordReset struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}
