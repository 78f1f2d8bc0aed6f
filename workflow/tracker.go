package workflow

import (
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultSeenTTL is how long a request path is remembered after it was first seen.
const DefaultSeenTTL = 1 * time.Hour

type requestState int

const (
	statePending requestState = iota + 1
	stateProcessed
)

// tracker remembers request paths so duplicate create events (atomic saves,
// editors that recreate the file) do not trigger a second completion.
// A path moves pending -> processed and never back while it is remembered.
// Entries expire after the TTL to bound memory for long-running watchers, so a
// request file created again at the same path after expiry is processed again.
type tracker struct {
	cache     *ttlcache.Cache[string, requestState]
	closeOnce sync.Once
}

func newTracker(ttl time.Duration) *tracker {
	if ttl <= 0 {
		ttl = DefaultSeenTTL
	}
	c := ttlcache.New[string, requestState](
		ttlcache.WithTTL[string, requestState](ttl),
		ttlcache.WithDisableTouchOnHit[string, requestState](),
	)
	go c.Start()
	return &tracker{cache: c}
}

// claim marks path pending and reports whether the caller is the first to see it.
func (t *tracker) claim(path string) bool {
	_, found := t.cache.GetOrSet(path, statePending)
	return !found
}

// done marks path processed.
func (t *tracker) done(path string) {
	t.cache.Set(path, stateProcessed, ttlcache.DefaultTTL)
}

// state returns the recorded state for path, or 0 when unseen.
func (t *tracker) state(path string) requestState {
	item := t.cache.Get(path)
	if item == nil {
		return 0
	}
	return item.Value()
}

func (t *tracker) close() {
	t.closeOnce.Do(t.cache.Stop)
}
