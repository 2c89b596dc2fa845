package api

import (
	"strings"

	"github.com/example/task-dashboard/modules/auth"
	"github.com/gofiber/fiber/v2"
)

// UserContextKey is the Locals key holding the resolved caller claims.
const UserContextKey = "user"

// AuthMiddleware validates bearer tokens and resolves the caller
// identity. Handlers behind it only ever see the resolved claims, never
// the raw credential.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, errMsg := bearerToken(c.Get("Authorization"))
		if errMsg != "" {
			return unauthorized(c, errMsg)
		}

		claims, err := authPort.ValidateToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value,
// returning a user-facing message when the header is unusable.
func bearerToken(header string) (token, errMsg string) {
	switch {
	case header == "":
		return "", "Authorization header is required"
	case !strings.HasPrefix(header, "Bearer "):
		return "", "Invalid authorization header format. Use: Bearer <token>"
	}
	if token = strings.TrimPrefix(header, "Bearer "); token == "" {
		return "", "Token is required"
	}
	return token, ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: msg,
	})
}
