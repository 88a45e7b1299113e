package product

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

// Service exposes read-only catalog queries.
type Service interface {
	List(ctx context.Context, sel Selection) (*ListResult, error)
	Get(ctx context.Context, id string) (*Product, error)
	Related(ctx context.Context, id string, limit int) ([]Product, error)
	Search(ctx context.Context, term string) []Product
	Home(ctx context.Context) HomeSections
	Facets(ctx context.Context) FacetSummary
	IngredientGroups(ctx context.Context) []IngredientGroup
}

// ListResult carries a filtered view of the catalog.
type ListResult struct {
	Products []Product `json:"products"`
	Matches  int       `json:"matches"`
	Total    int       `json:"total"`
}

// HomeSections groups the flagged products shown on the landing page.
type HomeSections struct {
	BestSellers []Product `json:"best_sellers"`
	Featured    []Product `json:"featured"`
	NewArrivals []Product `json:"new_arrivals"`
}

type resultObserver interface {
	ObserveCatalogResults(n int)
}

type service struct {
	catalog *Catalog
	metrics resultObserver
	logg    *logger.Logger
}

// NewService constructs a catalog service.
func NewService(catalog *Catalog, metrics resultObserver, logg *logger.Logger) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{catalog: catalog, metrics: metrics, logg: logg}, nil
}

func (s *service) List(ctx context.Context, sel Selection) (*ListResult, error) {
	if !sel.Sort.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort").WithDetails(map[string]string{"sort": sel.Sort.String()})
	}
	all := s.catalog.All()
	matched := Apply(all, sel)
	if s.metrics != nil {
		s.metrics.ObserveCatalogResults(len(matched))
	}
	if len(matched) == 0 && !sel.IsEmpty() {
		s.logg.Debug(s.logg.WithFields(ctx, map[string]any{
			"category":    sel.Category,
			"function":    sel.Function,
			"skin_type":   sel.SkinType,
			"ingredients": strings.Join(sel.Ingredients, ","),
		}), "catalog filter matched nothing")
	}
	return &ListResult{Products: matched, Matches: len(matched), Total: len(all)}, nil
}

func (s *service) Get(_ context.Context, id string) (*Product, error) {
	p, ok := s.catalog.Find(id)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (s *service) Related(ctx context.Context, id string, limit int) ([]Product, error) {
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Related(s.catalog.All(), *target, limit), nil
}

func (s *service) Search(_ context.Context, term string) []Product {
	return Search(s.catalog.All(), term)
}

func (s *service) Home(_ context.Context) HomeSections {
	all := s.catalog.All()
	return HomeSections{
		BestSellers: BestSellers(all),
		Featured:    Featured(all),
		NewArrivals: NewArrivals(all),
	}
}

func (s *service) Facets(_ context.Context) FacetSummary {
	return Facets(s.catalog.All())
}

func (s *service) IngredientGroups(_ context.Context) []IngredientGroup {
	return IngredientGroups()
}
