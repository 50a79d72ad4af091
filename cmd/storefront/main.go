package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/storefront/db"
	"github.com/monocle-dev/storefront/internal/auth"
	"github.com/monocle-dev/storefront/internal/config"
	"github.com/monocle-dev/storefront/internal/handlers"
	"github.com/monocle-dev/storefront/internal/logger"
	"github.com/monocle-dev/storefront/internal/router"
	"github.com/monocle-dev/storefront/internal/services"
	"github.com/monocle-dev/storefront/internal/store"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

const (
	shutdownTimeout     = 10 * time.Second
	defaultCookieMaxAge = 7 * 24 * time.Hour
)

func main() {
	app := &cli.App{
		Name:  "storefront",
		Usage: "shopping cart and identity API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create or update the database schema",
				Action: migrate,
			},
			{
				Name:  "users",
				Usage: "manage principals",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "create a principal with a password",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "email", Required: true},
							&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"STOREFRONT_PASSWORD"}},
							&cli.StringFlag{Name: "first-name"},
							&cli.StringFlag{Name: "last-name"},
							&cli.BoolFlag{Name: "admin"},
						},
						Action: createUser,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("storefront exited")
	}
}

// bootstrap loads configuration, sets up logging and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()

	if err != nil {
		return nil, nil, err
	}

	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, nil, errors.Wrap(err, "configure logging")
	}

	database, err := db.ConnectDatabase(cfg.DatabaseURL)

	if err != nil {
		return nil, nil, err
	}

	return cfg, database, nil
}

func serve(c *cli.Context) error {
	cfg, database, err := bootstrap()

	if err != nil {
		return err
	}

	defer func() {
		if err := db.CloseDatabase(database); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}()

	codec, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)

	if err != nil {
		return err
	}

	sqlDB, err := database.DB()

	if err != nil {
		return errors.Wrap(err, "access connection pool")
	}

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	users := store.NewUserStore(database)
	hub := handlers.NewCartHub(cfg.Origins())
	identity := services.NewIdentityService(users, hasher, codec)

	cookieMaxAge := defaultCookieMaxAge
	if cfg.TokenTTL > 0 {
		cookieMaxAge = cfg.TokenTTL
	}

	h := handlers.New(handlers.Services{
		Identity: identity,
		Users:    services.NewUserService(users, hasher),
		Carts:    services.NewCartService(store.NewCartStore(database), hub),
		Catalog:  services.NewCatalogService(store.NewCatalogStore(database)),
		Orders:   services.NewOrderService(store.NewOrderStore(database)),
	}, hub, sqlDB, handlers.CookieConfig{
		Domain: cfg.CookieDomain,
		MaxAge: cookieMaxAge,
	})

	gin.SetMode(cfg.GinMode)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(h, identity, cfg.Origins()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.WithField("port", cfg.Port).Info("Storefront listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func migrate(c *cli.Context) error {
	_, database, err := bootstrap()

	if err != nil {
		return err
	}

	defer db.CloseDatabase(database)

	if err := db.MigrateDatabase(database.WithContext(c.Context)); err != nil {
		return err
	}

	log.Info("Database migrated")

	return nil
}

func createUser(c *cli.Context) error {
	cfg, database, err := bootstrap()

	if err != nil {
		return err
	}

	defer db.CloseDatabase(database)

	users := services.NewUserService(store.NewUserStore(database), auth.NewBcryptHasher(cfg.BcryptCost))

	user, err := users.Create(c.Context, services.NewUser{
		Email:     c.String("email"),
		Password:  c.String("password"),
		FirstName: c.String("first-name"),
		LastName:  c.String("last-name"),
		IsAdmin:   c.Bool("admin"),
	})

	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"id":    user.ID,
		"email": user.Email,
		"admin": user.IsAdmin,
	}).Info("User created")

	return nil
}
