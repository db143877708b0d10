package middleware

import (
	"errors"
	"strings"

	"goldtrack/internal/config"
	"goldtrack/internal/core/domain"
	"goldtrack/internal/pkg/jwt"
	"goldtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// identityKey is the c.Locals key holding the resolved *domain.Identity
const identityKey = "identity"

// Identity returns the caller resolved by OptionalAuth or RequireAuth,
// or nil for an anonymous request
func Identity(c *fiber.Ctx) *domain.Identity {
	id, _ := c.Locals(identityKey).(*domain.Identity)
	return id
}

// accessToken reads the token from the access_token cookie, then the
// Authorization header
func accessToken(c *fiber.Ctx) string {
	if token := c.Cookies("access_token"); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func resolve(c *fiber.Ctx, secret string) (*domain.Identity, error) {
	token := accessToken(c)
	if token == "" {
		return nil, nil
	}
	claims, err := jwt.ValidateAccessToken(token, secret)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// OptionalAuth resolves the caller when a valid token is present. Requests
// without one, or with an invalid one, continue as anonymous.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, err := resolve(c, cfg.JWT.Secret); err == nil && id != nil {
			c.Locals(identityKey, id)
		}
		return c.Next()
	}
}

// RequireAuth rejects requests without a valid access token
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := resolve(c, cfg.JWT.Secret)
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return response.Unauthorized(c, "Access token expired")
		case err != nil:
			return response.Unauthorized(c, "Invalid access token")
		case id == nil:
			return response.Unauthorized(c, "Access token required")
		}
		c.Locals(identityKey, id)
		return c.Next()
	}
}
