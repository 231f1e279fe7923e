package pages

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"events-cms/internal/dashboard"
	"events-cms/internal/permission"
)

const invalidLogin = "Invalid username or password"

// Account is a user allowed to sign in to the admin pages.
type Account struct {
	Username     string
	PasswordHash string
	Roles        []string
}

type AuthPages struct {
	accounts     map[string]Account
	issuer       *permission.Issuer
	secureCookie bool
}

func NewAuthPages(accounts []Account, issuer *permission.Issuer, secureCookie bool) *AuthPages {
	byName := make(map[string]Account, len(accounts))
	for _, account := range accounts {
		if account.Username == "" || account.PasswordHash == "" {
			continue
		}
		byName[account.Username] = account
	}
	return &AuthPages{
		accounts:     byName,
		issuer:       issuer,
		secureCookie: secureCookie,
	}
}

func (p *AuthPages) Setup(g *echo.Group) {
	g.GET("/login", p.loginForm)
	g.POST("/login", p.login)
	g.POST("/logout", p.logout)
}

type loginPage struct {
	Username string
}

func (p *AuthPages) loginForm(c echo.Context) error {
	if permission.FromContext(c).Authenticated() {
		return redirect(c, "/admin/events")
	}
	return render(c, http.StatusOK, "login.html", "Sign in", loginPage{}, nil)
}

func (p *AuthPages) login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	account, ok := p.accounts[username]
	if ok {
		ok, _ = permission.VerifyPassword(password, account.PasswordHash)
	}
	if !ok {
		slog.Warn("login rejected", slog.String("username", username), slog.String("remote_ip", c.RealIP()))
		return render(c, http.StatusUnauthorized, "login.html", "Sign in", loginPage{Username: username}, []dashboard.Notification{
			{Level: dashboard.LevelError, Message: invalidLogin},
		})
	}

	token, err := p.issuer.Issue(account.Username, account.Roles)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     permission.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(p.issuer.TTL().Seconds()),
		HttpOnly: true,
		Secure:   p.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	slog.Info("login", slog.String("username", account.Username))
	return redirect(c, "/admin/events")
}

func (p *AuthPages) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     permission.CookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return redirect(c, "/")
}
