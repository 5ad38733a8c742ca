package admin

import (
	"sync"

	"github.com/rs/zerolog"
)

// Invalidator receives the "this list view is stale" signal the dispatcher
// fires exactly once per affected view on every successful mutation.
type Invalidator interface {
	Invalidate(view string)
}

// ViewCache tracks a version counter per named view. Consumers compare
// versions to decide whether a cached projection is still usable.
type ViewCache struct {
	mu       sync.Mutex
	versions map[string]uint64
	log      zerolog.Logger
}

func NewViewCache(log zerolog.Logger) *ViewCache {
	return &ViewCache{
		versions: make(map[string]uint64),
		log:      log,
	}
}

func (c *ViewCache) Invalidate(view string) {
	c.mu.Lock()
	c.versions[view]++
	version := c.versions[view]
	c.mu.Unlock()
	c.log.Debug().Str("view", view).Uint64("version", version).Msg("view invalidated")
}

// Version returns the current version of a view (zero if never invalidated).
func (c *ViewCache) Version(view string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[view]
}
