package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Status is the state of a cached read.
type Status int

const (
	Pending Status = iota
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is a snapshot of one cache entry.
type Result struct {
	Status    Status
	Data      any
	Err       error
	UpdatedAt time.Time
}

// Loader performs the read for a key.
type Loader func(ctx context.Context) (any, error)

type entry struct {
	key     Key
	result  Result
	stale   bool
	loading bool
	gen     uint64
}

// Options configures a [Cache].
type Options struct {
	// KeepPreviousData keeps the last successful data on an entry that later
	// fails or is invalidated. Off by default, so an errored entry carries no data.
	KeepPreviousData bool

	Now func() time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
	opts    Options
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{entries: map[string]*entry{}, opts: opts}
}

// Fetch returns the cached result for key, running load when the entry is
// missing or stale. Concurrent calls for the same key share one load.
//
// A fresh Success or Error entry is returned without calling load.
func (c *Cache) Fetch(ctx context.Context, key Key, load Loader) Result {
	id := key.String()

	c.mu.Lock()
	e, ok := c.entries[id]
	if ok && !e.stale && e.result.Status != Pending {
		r := e.result
		c.mu.Unlock()
		return r
	}
	if !ok {
		e = &entry{key: key, result: Result{Status: Pending}}
		c.entries[id] = e
	}
	e.loading = true
	gen := e.gen
	c.mu.Unlock()

	flight := fmt.Sprintf("%s@%d", id, gen)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		return load(ctx)
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	r := Result{Status: Success, Data: v, UpdatedAt: c.opts.Now()}
	if err != nil {
		r = Result{Status: Error, Err: err, UpdatedAt: r.UpdatedAt}
		if c.opts.KeepPreviousData {
			r.Data = e.result.Data
		}
	}

	// An invalidation during the load bumped gen; the newer read owns the entry.
	if cur, ok := c.entries[id]; ok && cur == e && e.gen == gen {
		e.result = r
		e.stale = false
		e.loading = false
	}
	return r
}

// Peek returns the current result for key without loading. Missing and stale
// entries report Pending.
func (c *Cache) Peek(key Key) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return Result{Status: Pending}
	}
	if e.stale {
		r := Result{Status: Pending}
		if c.opts.KeepPreviousData {
			r.Data = e.result.Data
		}
		return r
	}
	return e.result
}

// NeedsFetch reports whether a read of key should be started: the entry is
// missing or stale and no load for it is in flight.
func (c *Cache) NeedsFetch(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok {
		return true
	}
	return (e.stale || e.result.Status == Pending) && !e.loading
}

// Invalidate marks every entry whose key starts with prefix as stale and
// returns how many were marked. In-flight loads for those keys still return
// to their callers but no longer update the entry.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.gen++
		e.stale = true
		e.loading = false
		if !c.opts.KeepPreviousData {
			e.result.Data = nil
		}
		n++
	}
	return n
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
