package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
	pkgerrors "github.com/angelmondragon/glowshop-backend/pkg/errors"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
	"github.com/angelmondragon/glowshop-backend/pkg/storage"
)

// DefaultKeyPrefix namespaces snapshot keys when none is configured.
const DefaultKeyPrefix = "cart"

// DefaultIdleTTL is how long an untouched session stays in memory.
const DefaultIdleTTL = 30 * time.Minute

type productFinder interface {
	Get(ctx context.Context, id string) (*product.Product, error)
}

// Service resolves cart sessions and applies shopper operations to them.
type Service interface {
	Session(ctx context.Context, sessionID string) (*Session, error)
	View(ctx context.Context, sessionID string) (View, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int) (AddResult, View, error)
	SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (View, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (View, error)
	Clear(ctx context.Context, sessionID string) (View, error)
}

// ServiceParams wires the cart service.
type ServiceParams struct {
	Store     storage.KeyValue
	Products  productFinder
	KeyPrefix string
	Metrics   mutationRecorder
	Logger    *logger.Logger
	// IdleTTL evicts sessions untouched for longer. Evicted carts are re-read from the
	// store on next use.
	IdleTTL time.Duration
	Now     func() time.Time
}

type liveSession struct {
	sess     *Session
	lastUsed time.Time
}

type service struct {
	mu        sync.Mutex
	sessions  map[string]*liveSession
	lastSweep time.Time
	store     storage.KeyValue
	products  productFinder
	keyPrefix string
	idleTTL   time.Duration
	now       func() time.Time
	metrics   mutationRecorder
	logg      *logger.Logger
}

func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	store := params.Store
	if store == nil {
		store = storage.Discard{}
	}
	prefix := strings.TrimSpace(params.KeyPrefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	idleTTL := params.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		sessions:  make(map[string]*liveSession),
		lastSweep: now(),
		store:     store,
		products:  params.Products,
		keyPrefix: prefix,
		idleTTL:   idleTTL,
		now:       now,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// SnapshotKey is the store key for a session's cart.
func SnapshotKey(prefix, sessionID string) string {
	return prefix + ":" + sessionID
}

func normalizeSessionID(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session id required")
	}
	return sessionID, nil
}

// Session returns the live session, restoring its snapshot on first use. The session
// stays registered until it has been idle for longer than the idle TTL.
func (s *service) Session(ctx context.Context, sessionID string) (*Session, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	if live, ok := s.sessions[sessionID]; ok {
		live.lastUsed = now
		return live.sess, nil
	}
	sess := s.open(ctx, sessionID)
	s.sessions[sessionID] = &liveSession{sess: sess, lastUsed: now}
	return sess, nil
}

func (s *service) open(ctx context.Context, sessionID string) *Session {
	persister := NewPersister(s.store, SnapshotKey(s.keyPrefix, sessionID))
	return openSession(ctx, sessionID, persister, s.metrics, s.logg)
}

// sweepLocked drops idle sessions at most once per quarter TTL. mu must be held.
func (s *service) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.idleTTL/4 {
		return
	}
	s.lastSweep = now
	for id, live := range s.sessions {
		if now.Sub(live.lastUsed) > s.idleTTL {
			delete(s.sessions, id)
		}
	}
}

// View reads the cart without registering a session, so anonymous reads do not grow
// the in-memory registry.
func (s *service) View(ctx context.Context, sessionID string) (View, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return View{}, err
	}
	s.mu.Lock()
	live, ok := s.sessions[sessionID]
	if ok {
		live.lastUsed = s.now()
	}
	s.mu.Unlock()
	if ok {
		live.sess.Sync(ctx)
		return live.sess.View(), nil
	}
	return s.open(ctx, sessionID).View(), nil
}

func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int) (AddResult, View, error) {
	if quantity < 1 {
		return AddResult{}, View{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return AddResult{}, View{}, err
	}
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return AddResult{}, View{}, err
	}
	res := sess.AddTimes(ctx, *p, quantity)
	return res, sess.View(), nil
}

func (s *service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (View, error) {
	if quantity < 1 {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	// A product outside the cart leaves it unchanged.
	sess.SetQuantity(ctx, productID, quantity)
	return sess.View(), nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (View, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.Remove(ctx, productID)
	return sess.View(), nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (View, error) {
	sess, err := s.Session(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	sess.Clear(ctx)
	return sess.View(), nil
}
