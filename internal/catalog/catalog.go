// internal/catalog/catalog.go

// Package catalog loads the normalized card dataset into memory. The catalog
// is built once at process start and read-only afterwards, so it is safe for
// concurrent readers.
package catalog

import (
	"context"

	"card-advisor/internal/models"
)

// Store loads the full set of catalog records from a backing source.
type Store interface {
	Load(ctx context.Context) ([]models.CardRecord, error)
}

// Catalog is the in-memory, read-only card collection. Card order matches
// the source order; the recommender's stable sort relies on it for
// deterministic tie-breaking.
type Catalog struct {
	cards []models.CardRecord
}

// New builds a Catalog, restoring the never-empty reward-rate invariant on
// records coming from sources that predate the normalizer fallback.
func New(cards []models.CardRecord) *Catalog {
	for i := range cards {
		if len(cards[i].RewardRate) == 0 {
			cards[i].RewardRate = []float64{0.0}
		}
	}
	return &Catalog{cards: cards}
}

// Open loads the store and wraps the result in a Catalog.
func Open(ctx context.Context, store Store) (*Catalog, error) {
	cards, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(cards), nil
}

// Cards returns the records in load order. Callers must not mutate them.
func (c *Catalog) Cards() []models.CardRecord {
	return c.cards
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.cards)
}
