package history

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/lotofacil/lotto"
)

// DefaultTTL is how long a fetched history is served before refreshing
const DefaultTTL = time.Hour

// Cache serves a history from its source, refreshing it once the TTL has
// elapsed on the injected clock. A Cache is itself a Source.
type Cache struct {
	source Source
	ttl    time.Duration
	clock  quartz.Clock
	logger zerolog.Logger

	mu        sync.Mutex
	history   lotto.History
	fetchedAt time.Time
	valid     bool
}

// NewCache wraps source. A non-positive ttl uses DefaultTTL.
func NewCache(source Source, ttl time.Duration, clock quartz.Clock, logger zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		ttl:    ttl,
		clock:  clock,
		logger: logger,
	}
}

// Fetch returns the cached history, refreshing it when missing or expired.
// A failed refresh leaves the previous entry invalid and returns the error.
func (c *Cache) Fetch(ctx context.Context) (lotto.History, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.valid && now.Sub(c.fetchedAt) < c.ttl {
		c.logger.Debug().Dur("age", now.Sub(c.fetchedAt)).Msg("Draw history cache hit")
		return c.history, nil
	}

	h, err := c.source.Fetch(ctx)
	if err != nil {
		c.valid = false
		return lotto.History{}, err
	}

	c.history = h
	c.fetchedAt = now
	c.valid = true
	c.logger.Info().Int("draws", h.Len()).Dur("ttl", c.ttl).Msg("Draw history refreshed")
	return h, nil
}

// Invalidate forces the next Fetch to refresh
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}
