package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"events-cms/cmd/events-admin/pages"
	"events-cms/internal/logging"
	"events-cms/internal/permission"
	"events-cms/internal/service"
)

const envPrefix = "EVENTS_ADMIN"

type EnvCfg struct {
	APIURL             string        `envconfig:"API_URL" default:"http://localhost:8080"`
	APITimeout         time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
	Port               int           `envconfig:"PORT" default:"8081"`
	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	AdminUser          string        `envconfig:"ADMIN_USER" default:"admin"`
	AdminPasswordHash  string        `envconfig:"ADMIN_PASSWORD_HASH" required:"true"`
	EditorUser         string        `envconfig:"EDITOR_USER"`
	EditorPasswordHash string        `envconfig:"EDITOR_PASSWORD_HASH"`
	Timezone           string        `envconfig:"TIMEZONE" default:"UTC"`
	CookieSecure       bool          `envconfig:"COOKIE_SECURE" default:"true"`
	HSTSMaxAge         int           `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat          string        `envconfig:"LOG_FORMAT" default:"json"`
}

// Accounts lists the users allowed to sign in. The editor account is optional
// and cannot delete events.
func (c EnvCfg) Accounts() []pages.Account {
	accounts := []pages.Account{
		{Username: c.AdminUser, PasswordHash: c.AdminPasswordHash, Roles: []string{permission.RoleAdmin}},
	}
	if c.EditorUser != "" && c.EditorPasswordHash != "" {
		accounts = append(accounts, pages.Account{Username: c.EditorUser, PasswordHash: c.EditorPasswordHash, Roles: []string{permission.RoleEditor}})
	}
	return accounts
}

func loadConfig() (EnvCfg, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	var cfg EnvCfg
	err := envconfig.Process(envPrefix, &cfg)
	return cfg, err
}

func newServer(cfg EnvCfg, client *service.Client, log *slog.Logger, now func() time.Time) (*echo.Echo, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	renderer, err := pages.NewRenderer(loc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = pages.ErrorHandler

	resolver := permission.NewResolver(cfg.JWTSecret)
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(pages.SecureHeaders(cfg.HSTSMaxAge))
	e.Use(pages.CSRF(cfg.CookieSecure))
	e.Use(permission.Attach(resolver))

	rootg := e.Group("")

	pages.
		NewPublicPages(client, now).
		Setup(rootg)

	pages.
		NewAuthPages(cfg.Accounts(), permission.NewIssuer(cfg.JWTSecret, cfg.SessionTTL), cfg.CookieSecure).
		Setup(rootg)

	pages.
		NewAdminPages(func(token string) pages.AdminService {
			return client.WithToken(token)
		}, loc, now).
		Setup(rootg.Group("/admin"))

	return e, nil
}

func main() {

	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		os.Exit(hashPasswordCommand(os.Args[2:], stdinPasswordReader(), os.Stdout, os.Stderr))
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	client := service.NewClient(cfg.APIURL, cfg.APITimeout, nil)
	e, err := newServer(cfg, client, log, time.Now)
	if err != nil {
		log.Error("build server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("events admin listening", slog.String("addr", addr), slog.String("api", cfg.APIURL))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", slog.Any("error", err))
	}
}
