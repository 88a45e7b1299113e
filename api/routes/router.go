package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/glowshop-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/glowshop-backend/api/controllers/cart"
	ordercontrollers "github.com/angelmondragon/glowshop-backend/api/controllers/orders"
	wishlistcontrollers "github.com/angelmondragon/glowshop-backend/api/controllers/wishlist"
	"github.com/angelmondragon/glowshop-backend/api/middleware"
	"github.com/angelmondragon/glowshop-backend/internal/cart"
	checkoutsvc "github.com/angelmondragon/glowshop-backend/internal/checkout"
	"github.com/angelmondragon/glowshop-backend/internal/orders"
	products "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/internal/wishlist"
	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

// Services bundles the domain services exposed over HTTP.
type Services struct {
	Products products.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	Wishlist wishlist.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	svcs Services,
	readiness map[string]controllers.Pinger,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(svcs.Products, logg))
			r.Get("/facets", controllers.ProductFacets(svcs.Products, logg))
			r.Get("/ingredients", controllers.ProductIngredients(svcs.Products, logg))
			r.Get("/home", controllers.ProductHome(svcs.Products, logg))
			r.Get("/search", controllers.ProductSearch(svcs.Products, logg))
			r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))
			r.Get("/{productId}/related", controllers.ProductRelated(svcs.Products, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartcontrollers.CartFetch(svcs.Cart, logg))
				r.Delete("/", cartcontrollers.CartClear(svcs.Cart, logg))
				r.Post("/items", cartcontrollers.CartAddItem(svcs.Cart, logg))
				r.Patch("/items/{productId}", cartcontrollers.CartUpdateItem(svcs.Cart, logg))
				r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(svcs.Cart, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", controllers.CheckoutBegin(svcs.Checkout, logg))
				r.Get("/summary", controllers.CheckoutSummary(svcs.Checkout, logg))
				r.Post("/shipping", controllers.CheckoutShipping(svcs.Checkout, logg))
				r.Post("/payment", controllers.CheckoutPayment(svcs.Checkout, logg))
				r.Post("/confirm", controllers.CheckoutConfirm(svcs.Checkout, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordercontrollers.OrderList(svcs.Orders, logg))
				r.Get("/{orderId}", ordercontrollers.OrderDetail(svcs.Orders, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistcontrollers.WishlistFetch(svcs.Wishlist, logg))
				r.Get("/ids", wishlistcontrollers.WishlistIDs(svcs.Wishlist, logg))
				r.Put("/items/{productId}", wishlistcontrollers.WishlistAddItem(svcs.Wishlist, logg))
				r.Delete("/items/{productId}", wishlistcontrollers.WishlistRemoveItem(svcs.Wishlist, logg))
			})
		})
	})

	return r
}
