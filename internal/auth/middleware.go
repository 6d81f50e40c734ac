package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Middleware resolves the Authorization credential to an identity and stores
// it in locals. A missing credential is 401, a rejected one 403.
func Middleware(verifier Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing credential")
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}

		c.Locals("identity", identity)
		return c.Next()
	}
}

// Identity returns the verified identity set by Middleware, or "" outside a
// guarded route.
func Identity(c *fiber.Ctx) string {
	identity, _ := c.Locals("identity").(string)
	return identity
}

// tokenFromHeader accepts both "Bearer <token>" and a bare token value; some
// clients send the raw id token without a scheme.
func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
