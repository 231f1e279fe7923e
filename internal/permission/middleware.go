package permission

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"events-cms/internal/model"
)

const contextKey = "permission.session"

// Attach resolves the request session and stores it on the echo context.
func Attach(resolver *Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(contextKey, resolver.Resolve(c.Request()))
			return next(c)
		}
	}
}

// FromContext returns the session stored by Attach, or an anonymous one.
func FromContext(c echo.Context) Session {
	if s, ok := c.Get(contextKey).(Session); ok {
		return s
	}
	return Anonymous()
}

// RequireAdmin answers 401/403 envelopes unless the session is an admin.
func RequireAdmin(resolver *Resolver) echo.MiddlewareFunc {
	return RequireRole(resolver, RoleAdmin)
}

// RequireRole answers 401 for anonymous requests and 403 unless the session
// holds one of roles.
func RequireRole(resolver *Resolver, roles ...string) echo.MiddlewareFunc {
	denied := strings.Join(roles, " or ") + " role required"
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := resolver.Resolve(c.Request())
			if !session.Authenticated() {
				return c.JSON(http.StatusUnauthorized, model.Failure("authentication required"))
			}
			if !session.HasAnyRole(roles...) {
				return c.JSON(http.StatusForbidden, model.Failure(denied))
			}
			c.Set(contextKey, session)
			return next(c)
		}
	}
}
