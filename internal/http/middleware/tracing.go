package middleware

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

// Tracing emits a server span for every request, using the globally
// registered tracer provider. Spans propagate through the Fiber user
// context, so service-level spans nest under the request span.
func Tracing() fiber.Handler {
	return otelfiber.Middleware()
}
