package middleware

import (
	"fmt"
	"time"

	"trip-service/src/pkg/log"

	"github.com/gofiber/fiber/v2"
)

// NewLogger logs every request with method, path, status and latency.
func NewLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		latency := time.Since(start)

		log.GetLogger().Info("http",
			fmt.Sprintf("%s %s -> %d", ctx.Method(), ctx.Path(), ctx.Response().StatusCode()),
			"request",
			fmt.Sprintf("latency=%s ip=%s", latency, ctx.IP()),
		)
		return err
	}
}
