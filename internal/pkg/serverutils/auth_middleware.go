package serverutils

import (
	"context"

	"campus-connect-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token into the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware extracts the token from the Authorization header (or the
// token query parameter as a fallback for browser clients) and stores the
// resolved principal in Locals.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := ""
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		} else {
			token = ctx.Query("token")
		}
		if token == "" {
			return ErrInvalidToken
		}

		user, err := auth.Authenticate(ctx.UserContext(), token)
		if err != nil {
			return err
		}

		ctx.Locals("principal", user)
		ctx.Locals("user_id", user.Id)
		return ctx.Next()
	}
}

// Principal returns the authenticated user stored by AuthMiddleware.
func Principal(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals("principal").(*entity.User)
	return user
}
