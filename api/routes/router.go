package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carzuiliam/shopping-api/api/controllers"
	"github.com/carzuiliam/shopping-api/api/middleware"
	"github.com/carzuiliam/shopping-api/internal/cart"
	"github.com/carzuiliam/shopping-api/internal/catalog"
	"github.com/carzuiliam/shopping-api/internal/products"
	"github.com/carzuiliam/shopping-api/internal/users"
	"github.com/carzuiliam/shopping-api/pkg/config"
	"github.com/carzuiliam/shopping-api/pkg/db"
	"github.com/carzuiliam/shopping-api/pkg/logger"
	"github.com/carzuiliam/shopping-api/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	userService users.Service,
	catalogService catalog.Service,
	productService products.Service,
	cartService cart.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.HTTP.CORSAllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if httpMetrics != nil {
		r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(userService, logg))
			r.Get("/{userID}", controllers.GetUser(userService, logg))
			r.Get("/{userID}/cart", controllers.ResolveCart(cartService, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.ListBrands(catalogService, logg))
			r.Get("/{brandID}", controllers.GetBrand(catalogService, logg))
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", controllers.ListDepartments(catalogService, logg))
			r.Get("/{departmentID}", controllers.GetDepartment(catalogService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{productID}", controllers.GetProduct(productService, logg))
		})

		r.Route("/carts/{cartID}", func(r chi.Router) {
			r.Route("/products", func(r chi.Router) {
				r.Delete("/", controllers.ClearCartProducts(cartService, logg))
				r.Post("/{productID}", controllers.AddCartProduct(cartService, logg))
				r.Put("/{productID}", controllers.ChangeCartQuantity(cartService, logg))
				r.Delete("/{productID}", controllers.RemoveCartProduct(cartService, logg))
			})
			r.Route("/coupon", func(r chi.Router) {
				r.Post("/", controllers.ApplyCartCoupon(cartService, logg))
				r.Delete("/", controllers.ClearCartCoupon(cartService, logg))
			})
		})
	})

	return r
}
