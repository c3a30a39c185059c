package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/pariney/saree-storefront/api/routes"
	"github.com/pariney/saree-storefront/internal/auth"
	"github.com/pariney/saree-storefront/internal/cart"
	"github.com/pariney/saree-storefront/internal/categories"
	"github.com/pariney/saree-storefront/internal/dashboard"
	"github.com/pariney/saree-storefront/internal/heroslides"
	"github.com/pariney/saree-storefront/internal/orders"
	"github.com/pariney/saree-storefront/internal/products"
	"github.com/pariney/saree-storefront/internal/profiles"
	"github.com/pariney/saree-storefront/internal/users"
	"github.com/pariney/saree-storefront/internal/wishlist"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	"github.com/pariney/saree-storefront/pkg/db"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/metrics"
	"github.com/pariney/saree-storefront/pkg/migrate"
	"github.com/pariney/saree-storefront/pkg/redis"
	"github.com/pariney/saree-storefront/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	services, err := buildServices(cfg, logg, dbClient, sessionManager, registry)
	if err != nil {
		return err
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			RateLimiter: redisClient,
			Idempotency: redisClient,
			HTTPMetrics: metrics.NewHTTPMetrics(registry),
			Gatherer:    registry,
			Services:    services,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager, reg prometheus.Registerer) (routes.Services, error) {
	conn := dbClient.DB()
	productRepo := products.NewRepository(conn)
	profileRepo := profiles.NewRepository(conn)
	cartRepo := cart.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)

	var (
		out  routes.Services
		errs error
		err  error
	)

	out.Products, err = products.NewService(productRepo)
	errs = multierr.Append(errs, err)
	out.Categories, err = categories.NewService(categories.NewRepository(conn))
	errs = multierr.Append(errs, err)
	out.HeroSlides, err = heroslides.NewService(heroslides.NewRepository(conn))
	errs = multierr.Append(errs, err)
	out.Cart, err = cart.NewService(cartRepo)
	errs = multierr.Append(errs, err)
	out.Wishlist, err = wishlist.NewService(wishlist.NewRepository(conn))
	errs = multierr.Append(errs, err)
	out.Profiles, err = profiles.NewService(profileRepo)
	errs = multierr.Append(errs, err)
	out.Orders, err = orders.NewService(orders.ServiceParams{
		Orders:  orderRepo,
		Cart:    cartRepo,
		Metrics: metrics.NewCheckoutMetrics(reg),
		Logger:  logg,
	})
	errs = multierr.Append(errs, err)
	out.Dashboard, err = dashboard.NewService(dashboard.ServiceParams{
		Products: productRepo,
		Profiles: profileRepo,
		Orders:   orderRepo,
	})
	errs = multierr.Append(errs, err)
	out.Auth, err = auth.NewService(auth.ServiceParams{
		DB:             dbClient,
		UserRepo:       users.NewRepository(conn),
		ProfileRepo:    profileRepo,
		SessionManager: sessions,
		Hasher:         security.NewHasher(cfg.Password),
		JWTConfig:      cfg.JWT,
	})
	errs = multierr.Append(errs, err)

	return out, errs
}
