package cache

import (
	"context"
	"time"

	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// Entry is a stored weather record together with the moment it was fetched.
type Entry struct {
	Record    *models.WeatherRecord `json:"record"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Store is the backing storage of a WeatherCache. Get returns nil, nil on a
// miss. Freshness is decided by the WeatherCache, not the store.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// Sweeper is implemented by stores that need stale entries removed
// explicitly.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}
