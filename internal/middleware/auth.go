package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/financia-ai/financia/internal/apperr"
	"github.com/financia-ai/financia/internal/identity"
)

const currentUserKey = "current_user"

// TokenVerifier resolves a bearer token to a user identifier.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerAuth resolves the calling user from the Authorization header. A valid
// signature alone is not enough: the subject must still exist in the store,
// otherwise the request is rejected as unauthorized.
func BearerAuth(verifier TokenVerifier, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return apperr.Unauthorizedf("missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			return err
		}

		user, err := repo.FindByID(c.UserContext(), userID)
		if err != nil {
			// Only a missing subject is an auth failure; store outages
			// propagate untouched.
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Unauthorizedf("unknown subject")
			}
			return err
		}
		if !user.IsActive {
			return apperr.Unauthorizedf("account disabled")
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the user resolved by BearerAuth for this request.
func UserFromCtx(c *fiber.Ctx) (identity.User, bool) {
	user, ok := c.Locals(currentUserKey).(identity.User)
	return user, ok
}
