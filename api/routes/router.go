package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pariney/saree-storefront/api/controllers"
	"github.com/pariney/saree-storefront/api/middleware"
	"github.com/pariney/saree-storefront/api/responses"
	"github.com/pariney/saree-storefront/internal/auth"
	"github.com/pariney/saree-storefront/internal/cart"
	"github.com/pariney/saree-storefront/internal/categories"
	"github.com/pariney/saree-storefront/internal/dashboard"
	"github.com/pariney/saree-storefront/internal/heroslides"
	"github.com/pariney/saree-storefront/internal/orders"
	"github.com/pariney/saree-storefront/internal/products"
	"github.com/pariney/saree-storefront/internal/profiles"
	"github.com/pariney/saree-storefront/internal/wishlist"
	"github.com/pariney/saree-storefront/pkg/auth/session"
	"github.com/pariney/saree-storefront/pkg/config"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/pariney/saree-storefront/pkg/logger"
	"github.com/pariney/saree-storefront/pkg/metrics"
	"github.com/pariney/saree-storefront/pkg/redis"
)

// Services are the resource services the routes dispatch to.
type Services struct {
	Auth       auth.Service
	Products   products.Service
	Categories categories.Service
	HeroSlides heroslides.Service
	Cart       cart.Service
	Wishlist   wishlist.Service
	Orders     orders.Service
	Profiles   profiles.Service
	Dashboard  dashboard.Service
}

// RouterParams groups what NewRouter wires together. Nil Redis-backed
// collaborators disable throttling and replay protection.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Sessions    session.AccessSessionChecker
	RateLimiter redis.RateLimiter
	Idempotency redis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer
	Services    Services
}

func NewRouter(p RouterParams) http.Handler {
	cfg, logg, svc := p.Config, p.Logger, p.Services

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Recoverer(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not found"))
	})

	gatherer := p.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": p.DB,
			"redis":    p.Redis,
		}))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	identity := middleware.Auth(cfg.JWT, p.Sessions, logg)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(svc.Products, logg))
		r.Get("/products/{id}", controllers.GetProduct(svc.Products, logg))
		r.Get("/categories", controllers.ListCategories(svc.Categories, logg))
		r.Get("/hero-slides", controllers.ListHeroSlides(svc.HeroSlides, logg))
		r.Get("/shipping-quote", controllers.ShippingQuote(logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, p.RateLimiter, logg)).Post("/register", controllers.AuthRegister(svc.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, p.RateLimiter, logg)).Post("/login", controllers.AuthLogin(svc.Auth, logg))
			r.With(middleware.AuthAllowExpired(cfg.JWT, logg)).Post("/logout", controllers.AuthLogout(svc.Auth, logg))
			r.With(middleware.AuthAllowExpired(cfg.JWT, logg)).Post("/refresh", controllers.AuthRefresh(svc.Auth, logg))
			r.With(identity).Get("/me", controllers.AuthMe(svc.Auth, logg))
		})

		// Inline middleware runs after routing, so the idempotency rules see
		// the full route pattern.
		r.Group(func(r chi.Router) {
			r.Use(identity)

			r.Get("/cart", controllers.GetCart(svc.Cart, logg))
			r.Post("/cart", controllers.AddCartItem(svc.Cart, logg))
			r.Put("/cart", controllers.UpdateCartItem(svc.Cart, logg))
			r.Delete("/cart", controllers.RemoveCartItem(svc.Cart, logg))

			r.Get("/wishlist", controllers.GetWishlist(svc.Wishlist, logg))
			r.Post("/wishlist", controllers.ToggleWishlist(svc.Wishlist, logg))

			r.Get("/orders", controllers.ListMyOrders(svc.Orders, logg))
			r.With(middleware.Idempotency(p.Idempotency, logg)).Post("/orders", controllers.CreateOrder(svc.Orders, logg))
		})

		// Identity first, role second: an anonymous caller gets 401, never 403.
		r.Route("/admin", func(r chi.Router) {
			r.Use(identity)
			r.Use(middleware.RequireAdmin(svc.Profiles, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(svc.Products, logg))
				r.Post("/", controllers.AdminCreateProduct(svc.Products, logg))
				r.Put("/", controllers.AdminUpdateProduct(svc.Products, logg))
				r.Delete("/", controllers.AdminDeleteProduct(svc.Products, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", controllers.ListCategories(svc.Categories, logg))
				r.Post("/", controllers.AdminCreateCategory(svc.Categories, logg))
				r.Put("/", controllers.AdminUpdateCategory(svc.Categories, logg))
				r.Delete("/", controllers.AdminDeleteCategory(svc.Categories, logg))
			})
			r.Route("/hero-slides", func(r chi.Router) {
				r.Get("/", controllers.ListHeroSlides(svc.HeroSlides, logg))
				r.Post("/", controllers.AdminCreateHeroSlide(svc.HeroSlides, logg))
				r.Put("/", controllers.AdminUpdateHeroSlide(svc.HeroSlides, logg))
				r.Delete("/", controllers.AdminDeleteHeroSlide(svc.HeroSlides, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(svc.Orders, logg))
				r.Put("/", controllers.AdminUpdateOrderStatus(svc.Orders, logg))
			})
			r.Get("/users", controllers.AdminListUsers(svc.Profiles, logg))
			r.Get("/dashboard", controllers.AdminDashboard(svc.Dashboard, logg))
		})
	})

	return r
}
