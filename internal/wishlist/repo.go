package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/glowshop-backend/pkg/storage"
)

// DefaultKeyPrefix namespaces wishlist entries in the shared snapshot store.
const DefaultKeyPrefix = "favorites"

// Repository keeps each session's liked products as one JSON document.
type Repository struct {
	store  storage.KeyValue
	prefix string
}

// NewRepository constructs a wishlist repository over the provided store.
func NewRepository(store storage.KeyValue, prefix string) *Repository {
	if store == nil {
		store = storage.NewMemory()
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repository{store: store, prefix: prefix}
}

func (r *Repository) key(sessionID string) string {
	return r.prefix + ":" + sessionID
}

// ListEntries returns the stored entries newest first. Unreadable documents count as empty.
func (r *Repository) ListEntries(ctx context.Context, sessionID string) ([]Entry, error) {
	raw, err := r.store.Get(ctx, r.key(sessionID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []Entry{}, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []Entry{}, nil
	}
	entries = slices.DeleteFunc(entries, func(e Entry) bool { return e.ProductID == "" })
	slices.SortStableFunc(entries, func(a, b Entry) int { return b.AddedAt.Compare(a.AddedAt) })
	return entries, nil
}

// AddItem records a like and ignores duplicates. It reports whether a new entry was written.
func (r *Repository) AddItem(ctx context.Context, sessionID, productID string, now time.Time) (bool, error) {
	entries, err := r.ListEntries(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if slices.ContainsFunc(entries, func(e Entry) bool { return e.ProductID == productID }) {
		return false, nil
	}
	entries = append([]Entry{{ProductID: productID, AddedAt: now.UTC()}}, entries...)
	return true, r.write(ctx, sessionID, entries)
}

// RemoveItem deletes the like if it exists.
func (r *Repository) RemoveItem(ctx context.Context, sessionID, productID string) error {
	entries, err := r.ListEntries(ctx, sessionID)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(entries, func(e Entry) bool { return e.ProductID == productID })
	if len(kept) == 0 {
		return r.store.Delete(ctx, r.key(sessionID))
	}
	return r.write(ctx, sessionID, kept)
}

func (r *Repository) write(ctx context.Context, sessionID string, entries []Entry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, r.key(sessionID), raw)
}
