package pages

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"events-cms/internal/dashboard"
)

const flashCookie = "events_flash"

// setFlash carries notifications across a redirect.
func setFlash(c echo.Context, notes []dashboard.Notification) {
	if len(notes) == 0 {
		return
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash returns pending notifications and clears the cookie.
func takeFlash(c echo.Context) []dashboard.Notification {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var notes []dashboard.Notification
	if err := json.Unmarshal(raw, &notes); err != nil {
		return nil
	}
	return notes
}
