package pages

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"events-cms/internal/permission"
)

const permissionsPolicy = "camera=(), microphone=(), geolocation=(), payment=()"

// SecureHeaders sets the browser hardening headers on every response.
func SecureHeaders(hstsMaxAge int) echo.MiddlewareFunc {
	secure := middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            hstsMaxAge,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' https: data:; style-src 'self' 'unsafe-inline'",
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		h := secure(next)
		return func(c echo.Context) error {
			c.Response().Header().Set("Permissions-Policy", permissionsPolicy)
			return h(c)
		}
	}
}

// CSRF protects form posts with a double submit cookie.
func CSRF(secureCookie bool) echo.MiddlewareFunc {
	return middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secureCookie,
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// requireLogin sends anonymous visitors to the login page.
func requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !permission.FromContext(c).Authenticated() {
			return redirect(c, "/login")
		}
		return next(c)
	}
}

// ErrorHandler renders failures as an HTML page.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong."
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}
	if code >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("uri", c.Request().RequestURI), slog.Any("error", err))
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}
	if rerr := render(c, code, "error.html", http.StatusText(code), message, nil); rerr != nil {
		c.String(code, message)
	}
}
