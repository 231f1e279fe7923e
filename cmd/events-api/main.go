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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"events-cms/cmd/events-api/apis"
	"events-cms/cmd/events-api/repository"
	"events-cms/internal/logging"
	"events-cms/internal/permission"
)

const envPrefix = "EVENTS_API"

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	JWTSecret  string `envconfig:"JWT_SECRET" required:"true"`
	Port       int    `envconfig:"PORT" default:"8080"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
	SeedFile   string `envconfig:"SEED_FILE"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat  string `envconfig:"LOG_FORMAT" default:"json"`
	BodyLimit  string `envconfig:"BODY_LIMIT" default:"4M"`
}

func (c EnvCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost,
		c.DBPort,
		c.DBUser,
		c.DBPassword,
		c.DBName,
	)
}

func (c EnvCfg) GormConfig() *gorm.Config {
	level := logger.Warn
	if c.Debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
}

func loadConfig() (EnvCfg, error) {
	if err := godotenv.Overload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
	}

	var cfg EnvCfg
	err := envconfig.Process(envPrefix, &cfg)
	return cfg, err
}

// newServer wires the routes onto a fresh echo instance.
func newServer(db *gorm.DB, cfg EnvCfg, log *slog.Logger) *echo.Echo {
	limit := cfg.BodyLimit
	if limit == "" {
		limit = "4M"
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apis.ErrorHandler
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.BodyLimit(limit))

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1")

	apis.
		NewHealthCheckAPI(db).
		Setup(rootg)

	resolver := permission.NewResolver(cfg.JWTSecret)

	apis.
		NewEventAPI(repository.NewEventRepo(db), cfg.Debug).
		Setup(
			v1g,
			permission.RequireRole(resolver, permission.RoleAdmin, permission.RoleEditor),
			permission.RequireAdmin(resolver),
		)

	apis.
		NewContentAPI(repository.NewContentRepo(db)).
		Setup(v1g)

	return e
}

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log := logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := gorm.Open(postgres.Open(cfg.DSN()), cfg.GormConfig())
	if err != nil {
		log.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := repository.Migrate(db); err != nil {
		log.Error("migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedFile != "" {
		seed, err := repository.LoadSeed(cfg.SeedFile)
		if err == nil {
			err = repository.Seed(ctx, db, seed, time.Now().UTC())
		}
		if err != nil {
			log.Error("seed database", slog.String("file", cfg.SeedFile), slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("seed applied", slog.String("file", cfg.SeedFile))
	}

	e := newServer(db, cfg, log)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("events api listening", slog.String("addr", addr))
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
