package serverutils

import (
	"context"
	"errors"
	"strings"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	LocalUserID = "user_id"
	LocalUser   = "user"
	LocalToken  = "access_token"

	msgMissingHeader = "Authorization header missing. Please log in."
	msgInvalidToken  = "Invalid or expired token."
)

// TokenVerifier resolves a bearer token to the user it was issued to.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.AuthUser, error)
}

// JwtMiddleware rejects requests without a valid bearer token before any
// handler runs, and stores the resolved user in Locals.
func JwtMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return &apperror.AuthError{Message: msgMissingHeader}
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || tokenStr == "" {
			return &apperror.AuthError{Message: msgInvalidToken}
		}

		user, err := verifier.VerifyToken(ctx.UserContext(), tokenStr)
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthorized) {
				return &apperror.AuthError{Message: msgInvalidToken, Err: err}
			}
			return err
		}

		ctx.Locals(LocalUserID, user.Id.String())
		ctx.Locals(LocalUser, user)
		ctx.Locals(LocalToken, tokenStr)
		return ctx.Next()
	}
}

// CurrentUserID reads the id JwtMiddleware stored for this request.
func CurrentUserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals(LocalUserID).(string)
	if !ok {
		return uuid.Nil, &apperror.AuthError{Message: msgMissingHeader}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &apperror.AuthError{Message: msgInvalidToken, Err: err}
	}
	return id, nil
}

// CurrentUser returns the resolved user, or nil outside protected routes.
func CurrentUser(ctx *fiber.Ctx) *entity.AuthUser {
	user, _ := ctx.Locals(LocalUser).(*entity.AuthUser)
	return user
}
