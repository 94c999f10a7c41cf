package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"freelanceflow/internal/auth"
	"freelanceflow/internal/policy"
	"freelanceflow/internal/repository"
)

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// AuthMiddleware resolves the acting user from a bearer token. The user
// row is re-read on every request so deactivation and role changes apply
// immediately instead of waiting for token expiry.
type AuthMiddleware struct {
	tokens     *auth.TokenIssuer
	revocation *auth.RevocationStore
	users      *repository.UserRepository
	log        *zap.Logger
}

func NewAuthMiddleware(tokens *auth.TokenIssuer, revocation *auth.RevocationStore, users *repository.UserRepository, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocation: revocation, users: users, log: log}
}

// RequireAuth rejects requests without a valid, unrevoked token from an
// active user, and stores the actor in the request locals.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c, "Missing bearer token")
		}

		claims, err := m.tokens.Parse(token)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}
		revoked, err := m.revocation.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			m.log.Error("revocation check failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "Internal server error",
			})
		}
		if revoked {
			return unauthorized(c, "Token has been revoked")
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}
		user, err := m.users.Get(c.UserContext(), userID)
		if err != nil {
			return unauthorized(c, "Unknown user")
		}
		if !user.IsActive {
			return unauthorized(c, "Account is deactivated")
		}

		c.Locals(actorKey, policy.Actor{ID: user.ID, Role: user.Role, IsActive: user.IsActive})
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// ActorFromCtx returns the actor stored by RequireAuth.
func ActorFromCtx(c *fiber.Ctx) policy.Actor {
	actor, _ := c.Locals(actorKey).(policy.Actor)
	return actor
}

// ClaimsFromCtx returns the token claims stored by RequireAuth.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}
