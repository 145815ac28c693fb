package entity

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors an account created at the auth provider.
type User struct {
	Id        uuid.UUID
	Email     string
	CreatedAt time.Time
}

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
}

type AuthSession struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	User         *AuthUser
}
