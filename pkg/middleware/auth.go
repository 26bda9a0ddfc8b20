package middleware

import (
	"finwise/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func AuthMiddleware(jwtManager *auth.JWTManager, revoked *auth.RevocationStore, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		// Remove "Bearer " prefix if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		if revoked.IsRevoked(token) {
			logger.Warn("Revoked token presented")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token has been logged out",
			})
		}

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		// Store claims in context
		c.Locals("userID", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)
		c.Locals("token", token)

		return c.Next()
	}
}

// RequireRole gates a route to users carrying one of the given roles.
// Must run after AuthMiddleware.
func RequireRole(logger *zap.Logger, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		logger.Warn("Access denied", zap.String("role", role))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied, insufficient permissions",
		})
	}
}
