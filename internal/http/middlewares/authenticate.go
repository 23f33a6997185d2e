package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
	model "task-manager.com/task-manager/internal/models"
)

const currentUserKey = "current_user"

type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (*model.User, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header that
// resolves to an existing user.
func Authenticate(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scheme, token, ok := strings.Cut(c.Request().Header.Get(echo.HeaderAuthorization), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return apperrors.ErrUnauthenticated
			}

			user, err := resolver.ResolveCurrentUser(c.Request().Context(), strings.TrimSpace(token))
			if err != nil {
				return apperrors.Translate(err)
			}

			c.Set(currentUserKey, user)
			return next(c)
		}
	}
}

func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(currentUserKey).(*model.User)
	return user
}
