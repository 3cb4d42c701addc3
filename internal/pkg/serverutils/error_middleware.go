package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into a JSON
// envelope. Handler-level recovery should catch domain errors first; this is
// the last line before Fiber's default plain-text error page.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)

		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
