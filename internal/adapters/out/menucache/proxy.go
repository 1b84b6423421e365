// Package menucache fronts the slow menu source with a TTL cache. A single
// load is in flight at any moment regardless of how many requests miss at
// once, and an expired copy is served stale when the source is down.
package menucache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"

	"golang.org/x/sync/singleflight"
)

// ErrSourceUnavailable is returned when the menu source fails and no
// previously loaded copy exists to serve stale.
var ErrSourceUnavailable = errors.New("menu source unavailable")

const defaultTTL = 5 * time.Minute

// Proxy is a caching ports.MenuProvider over a ports.MenuSource.
//
// Behavior:
//   - A fresh cached copy answers without touching the source
//   - Concurrent misses collapse into one source load via singleflight
//   - When the source fails and an expired copy exists, the expired copy
//     is served with its Stale flag set and the failure only logged
//   - When the source fails and nothing was ever loaded, callers get
//     ErrSourceUnavailable wrapping the cause
type Proxy struct {
	source ports.MenuSource
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group

	mu       sync.RWMutex
	cached   menu.Menu
	cachedAt time.Time

	hits        atomic.Int64
	misses      atomic.Int64
	staleServes atomic.Int64
	refreshes   atomic.Int64
}

// NewProxy creates a caching provider. A non-positive ttl falls back to
// the default of five minutes.
func NewProxy(source ports.MenuSource, ttl time.Duration, logger *slog.Logger) *Proxy {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Proxy{
		source: source,
		ttl:    ttl,
		logger: logger.With("component", "menu_cache"),
	}
}

// Menu returns the cached menu, loading from the source when the copy is
// missing or older than the TTL.
func (p *Proxy) Menu(ctx context.Context) (menu.Menu, error) {
	p.mu.RLock()
	cached, cachedAt := p.cached, p.cachedAt
	p.mu.RUnlock()

	if !cached.IsZero() && time.Since(cachedAt) < p.ttl {
		p.hits.Add(1)
		return cached, nil
	}

	p.misses.Add(1)
	return p.load(ctx)
}

// Search answers from the same cached menu Menu serves.
func (p *Proxy) Search(ctx context.Context, query string) ([]menu.Product, error) {
	m, err := p.Menu(ctx)
	if err != nil {
		return nil, err
	}
	return m.Search(query), nil
}

// Invalidate discards the cached copy so the next call reloads.
func (p *Proxy) Invalidate() {
	p.mu.Lock()
	p.cached = menu.Menu{}
	p.cachedAt = time.Time{}
	p.mu.Unlock()
}

// Refresh forces a source load regardless of the cached copy's age. The
// cached copy is kept as the stale fallback when the load fails, so a
// forced refresh during an outage degrades instead of erroring. Used by
// the scheduled refresh job and the forced-refresh API path.
func (p *Proxy) Refresh(ctx context.Context) error {
	_, err := p.load(ctx)
	return err
}

// Stats reports the counters accumulated since construction.
func (p *Proxy) Stats() ports.MenuCacheStats {
	return ports.MenuCacheStats{
		Hits:        p.hits.Load(),
		Misses:      p.misses.Load(),
		StaleServes: p.staleServes.Load(),
		Refreshes:   p.refreshes.Load(),
	}
}

// load collapses concurrent callers into a single source fetch. Every
// caller of one flight shares the same result.
func (p *Proxy) load(ctx context.Context) (menu.Menu, error) {
	result, err, _ := p.group.Do("menu", func() (any, error) {
		loaded, loadErr := p.source.Load(ctx)
		if loadErr != nil {
			p.mu.RLock()
			stale := p.cached
			p.mu.RUnlock()

			if !stale.IsZero() {
				stale.Stale = true
				p.staleServes.Add(1)
				p.logger.WarnContext(ctx, "Menu source failed, serving stale copy",
					"error", loadErr, "loadedAt", stale.LoadedAt)
				return stale, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, loadErr)
		}

		p.mu.Lock()
		p.cached = loaded
		p.cachedAt = time.Now()
		p.mu.Unlock()
		p.refreshes.Add(1)

		return loaded, nil
	})
	if err != nil {
		return menu.Menu{}, err
	}

	return result.(menu.Menu), nil
}
