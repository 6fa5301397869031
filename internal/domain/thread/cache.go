package thread

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Cache maps a pull-request URL to the timestamp of its root chat message.
// The in-memory map is authoritative for the process lifetime; the optional
// Store adds durability across restarts. Critical sections are brief and
// never span a store call.
//
// Known race: two concurrent first events for the same URL can both observe
// absence, both post a root message, and then race RecordIfAbsent. Exactly
// one record wins, but two chat threads exist. Closing this would require
// serializing first-posts per URL before the external post returns the
// thread id; the current design accepts it.
type Cache struct {
	mu    sync.Mutex
	byURL map[string]string

	store Store
	log   *zap.Logger
}

// NewCache builds a cache. store may be nil for in-memory-only operation.
func NewCache(store Store, log *zap.Logger) *Cache {
	return &Cache{
		byURL: make(map[string]string),
		store: store,
		log:   log,
	}
}

// Lookup reports the existing thread for a pull-request URL. A store read
// error is treated as absence: better a duplicate thread than a dropped
// notification.
func (c *Cache) Lookup(ctx context.Context, pullRequestURL string) (string, bool) {
	c.mu.Lock()
	ts, ok := c.byURL[pullRequestURL]
	c.mu.Unlock()
	if ok {
		return ts, true
	}

	if c.store == nil {
		return "", false
	}

	ts, found, err := c.store.GetByURL(ctx, pullRequestURL)
	if err != nil {
		c.log.Error("thread store read failed, treating as absent",
			zap.String("pull_request_url", pullRequestURL),
			zap.Error(err),
		)
		return "", false
	}
	if !found {
		return "", false
	}

	c.mu.Lock()
	// Another event may have recorded this URL while we were at the store;
	// the first record wins.
	if existing, ok := c.byURL[pullRequestURL]; ok {
		ts = existing
	} else {
		c.byURL[pullRequestURL] = ts
	}
	c.mu.Unlock()

	return ts, true
}

// RecordIfAbsent records the thread for a URL unless one is already known,
// and reports whether this call's insert won. A winning insert is written
// through to the store; store write errors are logged and swallowed, the
// in-memory record stands either way.
func (c *Cache) RecordIfAbsent(ctx context.Context, pullRequestURL, threadTS string) bool {
	c.mu.Lock()
	if _, ok := c.byURL[pullRequestURL]; ok {
		c.mu.Unlock()
		return false
	}
	c.byURL[pullRequestURL] = threadTS
	c.mu.Unlock()

	if c.store != nil {
		if _, err := c.store.InsertIfAbsent(ctx, pullRequestURL, threadTS); err != nil {
			c.log.Error("thread store write failed, record kept in memory only",
				zap.String("pull_request_url", pullRequestURL),
				zap.String("thread_ts", threadTS),
				zap.Error(err),
			)
		}
	}

	return true
}
