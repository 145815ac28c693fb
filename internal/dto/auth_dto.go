package dto

import "github.com/google/uuid"

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupResponse struct {
	Message      string    `json:"message"`
	UserId       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	AccessToken  *string   `json:"access_token,omitempty"`
	RefreshToken *string   `json:"refresh_token,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"-"`
}

type AuthUserResponse struct {
	Id    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role,omitempty"`
}

type ProtectedResponse struct {
	Message string            `json:"message"`
	User    *AuthUserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
