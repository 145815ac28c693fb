package serverutils

import (
	"errors"

	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

const (
	msgStore       = "The data store is unavailable. Please try again later."
	msgCompletion  = "The AI service could not complete the request. Please try again later."
	msgRateLimited = "The AI service is busy. Please retry shortly."
	msgProfile     = "Could not generate a valid profile from your summaries. Please try again."
	msgInternal    = "Internal server error"
)

// Classify maps an error to its HTTP status, stable code and client-safe
// message. Diagnostic text of infrastructure errors never reaches the client.
func Classify(err error) (int, string, string) {
	var (
		authErr    *apperror.AuthError
		valErr     *apperror.ValidationError
		storeErr   *apperror.StoreError
		complErr   *llm.CompletionError
		profileErr *apperror.ProfileGenerationError
		fiberErr   *fiber.Error
	)

	switch {
	case errors.As(err, &authErr):
		return fiber.StatusUnauthorized, apperror.CodeAuth, authErr.Message
	case errors.Is(err, apperror.ErrUnauthorized):
		return fiber.StatusUnauthorized, apperror.CodeAuth, "Invalid or expired token."
	case errors.As(err, &valErr):
		return fiber.StatusBadRequest, apperror.CodeValidation, valErr.Message
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, apperror.CodeNotFound, err.Error()
	case errors.Is(err, apperror.ErrAccessDenied):
		return fiber.StatusForbidden, apperror.CodeAccessDenied, err.Error()
	case errors.As(err, &profileErr):
		return fiber.StatusBadGateway, apperror.CodeProfileGeneration, msgProfile
	case errors.As(err, &complErr):
		if complErr.Kind == llm.KindRateLimit {
			return fiber.StatusTooManyRequests, apperror.CodeRateLimited, msgRateLimited
		}
		return fiber.StatusBadGateway, apperror.CodeCompletion, msgCompletion
	case errors.As(err, &storeErr):
		return fiber.StatusBadGateway, apperror.CodeStore, msgStore
	case errors.As(err, &fiberErr):
		return fiberErr.Code, codeForStatus(fiberErr.Code), fiberErr.Message
	default:
		return fiber.StatusInternalServerError, apperror.CodeInternal, msgInternal
	}
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperror.CodeValidation
	case fiber.StatusUnauthorized:
		return apperror.CodeAuth
	case fiber.StatusForbidden:
		return apperror.CodeAccessDenied
	case fiber.StatusNotFound:
		return apperror.CodeNotFound
	default:
		return apperror.CodeInternal
	}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, code, message := Classify(err)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"code":   code,
			"error":  err,
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "request failed", details)
		} else {
			log.Warn("HTTP", "request rejected", details)
		}

		return ctx.Status(status).JSON(ErrorResponseWithCode(status, code, message))
	}
}
