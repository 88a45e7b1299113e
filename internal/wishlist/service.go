package wishlist

import (
	"context"
	"strings"
	"sync"
	"time"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

type productFinder interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo     *Repository
	Products productFinder
	Logger   *logger.Logger
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, sessionID string) (PageDTO, error)
	GetWishlistIDs(ctx context.Context, sessionID string) (IDsDTO, error)
	AddItem(ctx context.Context, sessionID, productID string) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
}

type service struct {
	repo     *Repository
	products productFinder
	logg     *logger.Logger
	now      func() time.Time

	// writes are read-modify-write on one document per session
	mu sync.Mutex
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product lookup is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		logg:     params.Logger,
		now:      time.Now,
	}, nil
}

// GetWishlist returns the liked products for a session. Entries whose product left the
// catalog are skipped.
func (s *service) GetWishlist(ctx context.Context, sessionID string) (PageDTO, error) {
	entries, err := s.entries(ctx, sessionID)
	if err != nil {
		return PageDTO{}, err
	}
	items := make([]ItemDTO, 0, len(entries))
	for _, entry := range entries {
		p, err := s.products.Get(ctx, entry.ProductID)
		if err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				if s.logg != nil {
					s.logg.Debug(s.logg.WithField(ctx, "product_id", entry.ProductID), "skipping wishlist entry for unknown product")
				}
				continue
			}
			return PageDTO{}, err
		}
		items = append(items, ItemDTO{Product: *p, CreatedAt: entry.AddedAt})
	}
	return PageDTO{Items: items, Total: len(items)}, nil
}

// GetWishlistIDs returns all liked product ids for the session.
func (s *service) GetWishlistIDs(ctx context.Context, sessionID string) (IDsDTO, error) {
	entries, err := s.entries(ctx, sessionID)
	if err != nil {
		return IDsDTO{}, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}
	return IDsDTO{ProductIDs: ids}, nil
}

// AddItem ensures the product exists and adds it to the wishlist.
func (s *service) AddItem(ctx context.Context, sessionID, productID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.products.Get(ctx, productID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.repo.AddItem(ctx, sessionID, productID, s.now()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist")
	}
	return nil
}

// RemoveItem drops the wishlist entry regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.RemoveItem(ctx, sessionID, strings.TrimSpace(productID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist")
	}
	return nil
}

func (s *service) entries(ctx context.Context, sessionID string) ([]Entry, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListEntries(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return entries, nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
