package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"blog-cms-be/pkg/document"
)

// ErrorHandlerMiddleware converts errors bubbling out of handlers into
// the standard response envelope. fiber.Error keeps its status code;
// document parse errors map to 400; anything else is a 500 with the
// detail suppressed.
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

		var parseErr *document.ParseError
		if errors.As(err, &parseErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, "Invalid document content: "+string(parseErr.Kind)))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
