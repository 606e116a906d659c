package middleware

import (
	"log"
	"time"

	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

func LoggingMiddleware(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		logger.Printf(
			"%s %s %s %s%d\033[0m %v",
			c.IP(),
			c.Method(),
			c.Path(),
			utils.StatusColor(status),
			status,
			time.Since(start),
		)

		return err
	}
}
