package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	product "github.com/angelmondragon/glowshop-backend/internal/products"
	"github.com/angelmondragon/glowshop-backend/pkg/logger"
)

const (
	opAdd         = "add"
	opSetQuantity = "set_quantity"
	opRemove      = "remove"
	opClear       = "clear"
	opLoad        = "load"
	opSave        = "save"
)

type mutationRecorder interface {
	IncCartMutation(op, outcome string)
	IncSnapshotFailure(op string)
}

// View is a point-in-time copy of a cart with its derived totals.
type View struct {
	SessionID  string          `json:"session_id"`
	Items      []Item          `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	ItemCount  int             `json:"item_count"`
	Persistent bool            `json:"persistent"`
}

// Session owns one cart and writes its snapshot after every mutation. When the store
// fails the session keeps working from memory and reports Persistent() == false until a
// later write succeeds. A session whose snapshot could not be read never writes: every
// mutation first retries the read and merges the stored lines ahead of the in-memory ones.
type Session struct {
	mu         sync.Mutex
	id         string
	cart       *Cart
	persister  *Persister
	persistent bool
	loaded     bool
	metrics    mutationRecorder
	logg       *logger.Logger
}

func openSession(ctx context.Context, id string, persister *Persister, metrics mutationRecorder, logg *logger.Logger) *Session {
	s := &Session{
		id:         id,
		persister:  persister,
		persistent: true,
		metrics:    metrics,
		logg:       logg,
	}
	items, err := persister.Load(ctx)
	if err != nil {
		s.degrade(ctx, opLoad, err)
	} else {
		s.loaded = true
	}
	s.cart = New(items)
	return s
}

// Sync retries a failed snapshot read. It is a no-op once the snapshot has been read.
func (s *Session) Sync(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
}

// reconcile must be called with mu held.
func (s *Session) reconcile(ctx context.Context) {
	if s.loaded {
		return
	}
	stored, err := s.persister.Load(ctx)
	if err != nil {
		s.degrade(ctx, opLoad, err)
		return
	}
	s.cart = New(append(stored, s.cart.Items()...))
	s.loaded = true
	s.persistent = true
	if s.logg != nil && len(stored) > 0 {
		logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, s.id), map[string]any{
			"snapshot_key": s.persister.Key(),
			"stored_lines": len(stored),
		})
		s.logg.Info(logCtx, "cart snapshot recovered, merged with session lines")
	}
}

func (s *Session) ID() string {
	return s.id
}

// Persistent reports whether the last snapshot read or write reached the store.
func (s *Session) Persistent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistent
}

func (s *Session) Add(ctx context.Context, p product.Product) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
	res := s.cart.Add(p)
	s.record(opAdd, res.Outcome.String())
	s.save(ctx)
	return res
}

// AddTimes adds p n times, persisting after each add. The result is the last add's.
func (s *Session) AddTimes(ctx context.Context, p product.Product, n int) AddResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
	var res AddResult
	for i := 0; i < n; i++ {
		res = s.cart.Add(p)
		s.record(opAdd, res.Outcome.String())
		s.save(ctx)
	}
	return res
}

// SetQuantity reports false when the product is not in the cart.
func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
	if !s.cart.SetQuantity(productID, quantity) {
		s.record(opSetQuantity, "noop")
		return false
	}
	s.record(opSetQuantity, "updated")
	s.save(ctx)
	return true
}

func (s *Session) Remove(ctx context.Context, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
	removed := s.cart.Remove(productID)
	if removed {
		s.record(opRemove, "removed")
	} else {
		s.record(opRemove, "noop")
	}
	s.save(ctx)
	return removed
}

func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconcile(ctx)
	s.cart.Clear()
	s.record(opClear, "cleared")
	s.save(ctx)
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		SessionID:  s.id,
		Items:      s.cart.Items(),
		Total:      s.cart.Total(),
		Count:      s.cart.Count(),
		ItemCount:  s.cart.ItemCount(),
		Persistent: s.persistent,
	}
}

// save must be called with mu held. Writes are withheld until the snapshot has been read
// so a transient read failure cannot overwrite the stored cart.
func (s *Session) save(ctx context.Context) {
	if !s.loaded {
		s.persistent = false
		return
	}
	if err := s.persister.Save(ctx, s.cart.Items()); err != nil {
		s.degrade(ctx, opSave, err)
		return
	}
	s.persistent = true
}

func (s *Session) degrade(ctx context.Context, op string, err error) {
	s.persistent = false
	if s.metrics != nil {
		s.metrics.IncSnapshotFailure(op)
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(s.logg.WithSessionID(ctx, s.id), map[string]any{
			"snapshot_op":  op,
			"snapshot_key": s.persister.Key(),
			"error":        err.Error(),
		})
		s.logg.Warn(logCtx, "cart snapshot unavailable, continuing session-only")
	}
}

func (s *Session) record(op, outcome string) {
	if s.metrics != nil {
		s.metrics.IncCartMutation(op, outcome)
	}
}
