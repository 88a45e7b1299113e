package cart

import (
	"context"
	"errors"

	"github.com/angelmondragon/glowshop-backend/pkg/storage"
)

// Persister reads and writes one session's snapshot under a fixed key.
type Persister struct {
	store storage.KeyValue
	key   string
}

func NewPersister(store storage.KeyValue, key string) *Persister {
	if store == nil {
		store = storage.Discard{}
	}
	return &Persister{store: store, key: key}
}

func (p *Persister) Key() string {
	return p.key
}

// Load returns the stored lines. A missing or malformed snapshot yields no lines and no
// error; only store failures are returned.
func (p *Persister) Load(ctx context.Context) ([]Item, error) {
	raw, err := p.store.Get(ctx, p.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	items, ok := DecodeSnapshot(raw)
	if !ok {
		return nil, nil
	}
	return items, nil
}

// Save overwrites the snapshot with the full line list.
func (p *Persister) Save(ctx context.Context, items []Item) error {
	raw, err := EncodeSnapshot(items)
	if err != nil {
		return err
	}
	return p.store.Set(ctx, p.key, raw)
}
