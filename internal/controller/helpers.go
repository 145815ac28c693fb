package controller

import (
	"ai-journaling-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

func uuidParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	return parseUUID(name, ctx.Params(name))
}

// parseUUID accepts any form uuid.Parse does, in paths and bodies alike.
func parseUUID(name, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, apperror.Validation(name + " must be a valid UUID")
	}
	return id, nil
}
