package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/pkg/config"
	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

func newProductService(t *testing.T) product.Service {
	t.Helper()
	catalog, err := product.LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc, err := product.NewService(catalog, nil, logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}}))
	if err != nil {
		t.Fatalf("product service: %v", err)
	}
	return svc
}

func productRouter(svc product.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", ProductList(svc, nil))
	r.Get("/products/search", ProductSearch(svc, nil))
	r.Get("/products/{productId}", ProductGet(svc, nil))
	r.Get("/products/{productId}/related", ProductRelated(svc, nil))
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestProductListFiltersAndSorts(t *testing.T) {
	h := productRouter(newProductService(t))
	resp := get(h, "/products?skin_type=Sensible&ingredient=Centella%20Asi%C3%A1tica&sort=price-asc")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data product.ListResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Matches != 2 || envelope.Data.Total != 12 {
		t.Fatalf("unexpected counts %d/%d", envelope.Data.Matches, envelope.Data.Total)
	}
	if envelope.Data.Products[0].ID != "2" || envelope.Data.Products[1].ID != "9" {
		t.Fatalf("unexpected order %s, %s", envelope.Data.Products[0].ID, envelope.Data.Products[1].ID)
	}
}

func TestProductListZeroMatchesIsOK(t *testing.T) {
	h := productRouter(newProductService(t))
	resp := get(h, "/products?category=Perfumes")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["matches"].(float64) != 0 {
		t.Fatalf("expected zero matches, got %v", envelope.Data["matches"])
	}
	if list, ok := envelope.Data["products"].([]any); !ok || len(list) != 0 {
		t.Fatalf("expected empty product array, got %v", envelope.Data["products"])
	}
}

func TestProductListRejectsUnknownSort(t *testing.T) {
	h := productRouter(newProductService(t))
	if resp := get(h, "/products?sort=rating"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProductGetDecorates(t *testing.T) {
	h := productRouter(newProductService(t))
	resp := get(h, "/products/7")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			ID              string            `json:"id"`
			DiscountPercent int               `json:"discountPercent"`
			StockStatus     enums.StockStatus `json:"stockStatus"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.ID != "7" || envelope.Data.DiscountPercent != 19 || envelope.Data.StockStatus != enums.StockStatusLowStock {
		t.Fatalf("unexpected detail %+v", envelope.Data)
	}
	if resp := get(h, "/products/404"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestProductRelatedAndSearch(t *testing.T) {
	h := productRouter(newProductService(t))
	if resp := get(h, "/products/1/related?limit=2"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp := get(h, "/products/1/related?limit=100"); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	resp := get(h, "/products/search?q=")
	var envelope struct {
		Data struct {
			Matches int `json:"matches"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Matches != 0 {
		t.Fatalf("expected blank search to match nothing, got %d", envelope.Data.Matches)
	}
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}

	resp := httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"redis": stubPinger{}, "db": nil}).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get(envHeader) != "dev" {
		t.Fatalf("expected env header")
	}

	resp = httptest.NewRecorder()
	HealthReady(cfg, nil, map[string]Pinger{"redis": stubPinger{err: errors.New("down")}}).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
