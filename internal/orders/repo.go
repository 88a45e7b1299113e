package orders

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Repository keeps order history in process memory, keyed by cart session.
type Repository struct {
	mu        sync.RWMutex
	bySession map[string][]Order
}

func NewRepository() *Repository {
	return &Repository{bySession: make(map[string][]Order)}
}

func (r *Repository) Create(_ context.Context, order Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bySession[order.SessionID] = append(r.bySession[order.SessionID], cloneOrder(order))
	return nil
}

// ListBySession returns the session's orders newest first.
func (r *Repository) ListBySession(_ context.Context, sessionID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.bySession[sessionID]
	out := make([]Order, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, cloneOrder(stored[i]))
	}
	return out, nil
}

// FindByID returns nil when the order does not exist for the session.
func (r *Repository) FindByID(_ context.Context, sessionID string, id uuid.UUID) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.bySession[sessionID] {
		if o.ID == id {
			found := cloneOrder(o)
			return &found, nil
		}
	}
	return nil, nil
}

func cloneOrder(o Order) Order {
	o.Lines = slices.Clone(o.Lines)
	return o
}
