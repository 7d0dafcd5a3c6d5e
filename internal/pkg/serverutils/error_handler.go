package serverutils

import (
	"errors"

	"ai-studymate-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps domain errors to HTTP status codes so
// controllers can just return errors from services.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		code := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, rag.ErrNoMaterials):
			code = fiber.StatusBadRequest
		case errors.Is(err, rag.ErrIndexNotFound):
			code = fiber.StatusNotFound
		case errors.Is(err, rag.ErrEmbeddingFailed),
			errors.Is(err, rag.ErrGenerationFailed),
			errors.Is(err, rag.ErrMalformedOutput):
			code = fiber.StatusBadGateway
		}

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
