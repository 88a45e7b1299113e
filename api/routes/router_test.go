package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/glowshop-backend/api/middleware"
	"github.com/angelmondragon/glowshop-backend/internal/cart"
	checkoutsvc "github.com/angelmondragon/glowshop-backend/internal/checkout"
	"github.com/angelmondragon/glowshop-backend/internal/orders"
	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/internal/wishlist"
	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/angelmondragon/glowshop-backend/pkg/metrics"
	"github.com/angelmondragon/glowshop-backend/pkg/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	logg := logger.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)

	catalog, err := product.LoadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	productSvc, err := product.NewService(catalog, m, logg)
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	cartSvc, err := cart.NewService(cart.ServiceParams{Store: storage.NewMemory(), Products: productSvc, Metrics: m, Logger: logg})
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	orderSvc, err := orders.NewService(orders.NewRepository())
	if err != nil {
		t.Fatalf("orders service: %v", err)
	}
	checkout, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{Carts: cartSvc, Orders: orderSvc, Metrics: m, Logger: logg})
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	wishlistSvc, err := wishlist.NewService(wishlist.ServiceParams{Repo: wishlist.NewRepository(storage.NewMemory(), ""), Products: productSvc, Logger: logg})
	if err != nil {
		t.Fatalf("wishlist service: %v", err)
	}

	router := NewRouter(cfg, logg, Services{
		Products: productSvc,
		Cart:     cartSvc,
		Checkout: checkout,
		Orders:   orderSvc,
		Wishlist: wishlistSvc,
	}, nil, reg)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouterHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health/live")
	if err != nil {
		t.Fatalf("live: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}

	if _, err := http.Get(srv.URL + "/api/v1/products?category=Serums"); err != nil {
		t.Fatalf("products: %v", err)
	}
	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "catalog_filter_results") {
		t.Fatalf("expected catalog metric in output")
	}
}

func TestRouterIssuesCartSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/cart/items", "application/json", strings.NewReader(`{"product_id":"1"}`))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	resp.Body.Close()
	session := resp.Header.Get(middleware.CartSessionHeader)
	if resp.StatusCode != http.StatusOK || session == "" {
		t.Fatalf("expected 200 with session header, got %d %q", resp.StatusCode, session)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/cart", nil)
	req.Header.Set(middleware.CartSessionHeader, session)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), `"count":1`) {
		t.Fatalf("expected cart to survive across requests: %s", body)
	}
}

func TestRouterProductsDoNotRequireSession(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/products/home")
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.StatusCode)
	}
	if resp.Header.Get(middleware.CartSessionHeader) != "" {
		t.Fatal("catalog routes should not mint cart sessions")
	}
}
