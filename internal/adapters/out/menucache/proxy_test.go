package menucache_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant/internal/adapters/out/menucache"
	"restaurant/internal/core/domain/model/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource counts loads and can be told to fail or stall.
type countingSource struct {
	mu    sync.Mutex
	loads atomic.Int64
	fail  error
	delay time.Duration
	menu  menu.Menu
}

func (s *countingSource) Load(_ context.Context) (menu.Menu, error) {
	s.loads.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return menu.Menu{}, s.fail
	}
	return s.menu, nil
}

func (s *countingSource) setFail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func newSource() *countingSource {
	return &countingSource{menu: menu.Menu{
		LoadedAt: time.Now(),
		Categories: []menu.Category{
			{Name: "BEBIDAS", Products: []menu.Product{
				{ID: 1, Name: "Limonada", Category: "BEBIDAS", PriceCents: 350, Available: true},
			}},
		},
	}}
}

func TestProxy_CachesWithinTTL(t *testing.T) {
	source := newSource()
	p := menucache.NewProxy(source, time.Minute, slog.Default())

	for i := 0; i < 5; i++ {
		m, err := p.Menu(t.Context())
		require.NoError(t, err)
		assert.Len(t, m.Categories, 1)
		assert.False(t, m.Stale)
	}

	assert.Equal(t, int64(1), source.loads.Load())

	stats := p.Stats()
	assert.Equal(t, int64(4), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Refreshes)
}

func TestProxy_ConcurrentMissesCollapseToOneLoad(t *testing.T) {
	source := newSource()
	source.delay = 50 * time.Millisecond
	p := menucache.NewProxy(source, time.Minute, slog.Default())

	const callers = 20
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Menu(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), source.loads.Load(), "stampede must collapse into one load")
}

func TestProxy_ServesStaleWhenSourceDown(t *testing.T) {
	source := newSource()
	p := menucache.NewProxy(source, time.Minute, slog.Default())

	_, err := p.Menu(t.Context())
	require.NoError(t, err)

	source.setFail(errors.New("source down"))
	p.Invalidate()

	// Invalidate dropped the copy entirely, so the failure surfaces.
	_, err = p.Menu(t.Context())
	require.ErrorIs(t, err, menucache.ErrSourceUnavailable)
}

func TestProxy_ExpiredCopyServedStaleOnFailure(t *testing.T) {
	source := newSource()
	p := menucache.NewProxy(source, time.Nanosecond, slog.Default())

	_, err := p.Menu(t.Context())
	require.NoError(t, err)

	source.setFail(errors.New("source down"))
	time.Sleep(time.Millisecond)

	m, err := p.Menu(t.Context())
	require.NoError(t, err)
	assert.Len(t, m.Categories, 1)
	assert.True(t, m.Stale, "expired copy served during an outage must be flagged")
	assert.Positive(t, p.Stats().StaleServes)
}

func TestProxy_RefreshDuringOutageKeepsStaleCopy(t *testing.T) {
	source := newSource()
	p := menucache.NewProxy(source, time.Hour, slog.Default())

	_, err := p.Menu(t.Context())
	require.NoError(t, err)

	source.setFail(errors.New("source down"))

	// The forced load falls back to the cached copy instead of erroring.
	require.NoError(t, p.Refresh(t.Context()))

	m, err := p.Menu(t.Context())
	require.NoError(t, err)
	assert.Len(t, m.Categories, 1)
	assert.False(t, m.Stale, "copy inside the TTL stays fresh")

	stats := p.Stats()
	assert.Positive(t, stats.StaleServes)
}

func TestProxy_ConcurrentRefreshesCollapseToOneLoad(t *testing.T) {
	source := newSource()
	source.delay = 50 * time.Millisecond
	p := menucache.NewProxy(source, time.Minute, slog.Default())

	const callers = 20
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Refresh(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), source.loads.Load(), "forced refreshes must share one flight")
}

func TestProxy_NeverLoadedAndSourceDown(t *testing.T) {
	source := newSource()
	source.setFail(errors.New("source down"))
	p := menucache.NewProxy(source, time.Minute, slog.Default())

	_, err := p.Menu(t.Context())
	require.ErrorIs(t, err, menucache.ErrSourceUnavailable)
}

func TestProxy_Refresh(t *testing.T) {
	source := newSource()
	p := menucache.NewProxy(source, time.Hour, slog.Default())

	require.NoError(t, p.Refresh(t.Context()))
	require.NoError(t, p.Refresh(t.Context()))

	assert.Equal(t, int64(2), source.loads.Load())

	// Refreshed copy answers without another load.
	_, err := p.Menu(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(2), source.loads.Load())
}

func TestProxy_Search(t *testing.T) {
	p := menucache.NewProxy(newSource(), time.Minute, slog.Default())

	products, err := p.Search(t.Context(), "limo")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
}
