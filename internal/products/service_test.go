package product

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/angelmondragon/glowshop-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

type stubObserver struct {
	observed []int
}

func (s *stubObserver) ObserveCatalogResults(n int) {
	s.observed = append(s.observed, n)
}

func newTestService(t *testing.T) (Service, *stubObserver) {
	t.Helper()
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	observer := &stubObserver{}
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &bytes.Buffer{}})
	svc, err := NewService(catalog, observer, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, observer
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, nil, logger.New(logger.Options{})); err == nil {
		t.Fatal("expected error without catalog")
	}
	catalog, _ := NewCatalog(nil)
	if _, err := NewService(catalog, nil, nil); err == nil {
		t.Fatal("expected error without logger")
	}
}

func TestServiceListRecordsMatches(t *testing.T) {
	svc, observer := newTestService(t)
	res, err := svc.List(context.Background(), Selection{Category: "Limpiadores"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Matches != 2 || res.Total != 12 {
		t.Fatalf("unexpected result %d/%d", res.Matches, res.Total)
	}
	if len(observer.observed) != 1 || observer.observed[0] != 2 {
		t.Fatalf("expected one observation of 2, got %v", observer.observed)
	}
}

func TestServiceListZeroMatches(t *testing.T) {
	svc, _ := newTestService(t)
	res, err := svc.List(context.Background(), Selection{Category: "Cremas", Ingredients: []string{"Retinol"}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Matches != 0 || res.Products == nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestServiceListRejectsUnknownSort(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.List(context.Background(), Selection{Sort: enums.SortKey("rating")})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetAndRelated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Get(ctx, "nope"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	p, err := svc.Get(ctx, "2")
	if err != nil || p.ID != "2" {
		t.Fatalf("expected product 2, got %v %v", p, err)
	}
	related, err := svc.Related(ctx, "2", 2)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if len(related) != 2 {
		t.Fatalf("expected 2 related, got %d", len(related))
	}
	if _, err := svc.Related(ctx, "nope", 4); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
