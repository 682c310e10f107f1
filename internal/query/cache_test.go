package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func counting(calls *atomic.Int32, data any, err error) Loader {
	return func(context.Context) (any, error) {
		calls.Add(1)
		return data, err
	}
}

func seed(c *Cache, key Key, data any) {
	c.Fetch(context.Background(), key, func(context.Context) (any, error) { return data, nil })
}

func TestCacheFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("second fetch is served from cache", func(t *testing.T) {
		c := New(Options{})
		var calls atomic.Int32
		key := RecipeKey("https://example.com/recipe")

		first := c.Fetch(ctx, key, counting(&calls, "pancakes", nil))
		second := c.Fetch(ctx, key, counting(&calls, "waffles", nil))

		if first.Status != Success || first.Data != "pancakes" {
			t.Fatalf("unexpected first result %+v", first)
		}
		if second.Data != "pancakes" {
			t.Errorf("expected cached data, got %v", second.Data)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 load, got %d", calls.Load())
		}
	})

	t.Run("concurrent fetches share one load", func(t *testing.T) {
		c := New(Options{})
		key := RecipeKey("https://example.com/slow")

		var calls atomic.Int32
		started := make(chan struct{})
		release := make(chan struct{})
		load := func(context.Context) (any, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			<-release
			return "done", nil
		}

		var wg sync.WaitGroup
		results := make([]Result, 5)
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[0] = c.Fetch(ctx, key, load)
		}()
		<-started

		for i := 1; i < len(results); i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = c.Fetch(ctx, key, load)
			}(i)
		}

		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		if calls.Load() != 1 {
			t.Errorf("expected 1 load, got %d", calls.Load())
		}
		for i, r := range results {
			if r.Status != Success || r.Data != "done" {
				t.Errorf("result %d: unexpected %+v", i, r)
			}
		}
	})

	t.Run("distinct keys load independently", func(t *testing.T) {
		c := New(Options{})
		var calls atomic.Int32

		c.Fetch(ctx, RecipeKey("https://a"), counting(&calls, 1, nil))
		c.Fetch(ctx, RecipeKey("https://b"), counting(&calls, 2, nil))

		if calls.Load() != 2 {
			t.Errorf("expected 2 loads, got %d", calls.Load())
		}
		if got := c.Peek(RecipeKey("https://b")).Data; got != 2 {
			t.Errorf("expected data 2 for b, got %v", got)
		}
	})

	t.Run("errors are cached without data and not retried", func(t *testing.T) {
		c := New(Options{})
		key := ListKey("/api/recents?count=10")
		boom := errors.New("boom")

		seed(c, key, []string{"old"})
		c.Invalidate(key)

		var calls atomic.Int32
		r := c.Fetch(ctx, key, counting(&calls, nil, boom))
		if r.Status != Error || !errors.Is(r.Err, boom) {
			t.Fatalf("expected error result, got %+v", r)
		}
		if r.Data != nil {
			t.Errorf("errored entry should not keep previous data, got %v", r.Data)
		}

		again := c.Fetch(ctx, key, counting(&calls, "new", nil))
		if again.Status != Error || calls.Load() != 1 {
			t.Errorf("errored entry should not refetch until invalidated: %+v calls=%d", again, calls.Load())
		}
		if c.NeedsFetch(key) {
			t.Error("errored entry should not need a fetch")
		}
	})

	t.Run("KeepPreviousData retains data on error", func(t *testing.T) {
		c := New(Options{KeepPreviousData: true})
		key := RecipeKey("https://a")
		seed(c, key, "old")
		c.Invalidate(key)

		if got := c.Peek(key); got.Status != Pending || got.Data != "old" {
			t.Errorf("stale entry should expose previous data, got %+v", got)
		}

		var calls atomic.Int32
		r := c.Fetch(ctx, key, counting(&calls, nil, errors.New("x")))
		if r.Status != Error || r.Data != "old" {
			t.Errorf("expected error with previous data, got %+v", r)
		}
	})
}

func TestCacheInvalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("forces the next read to refetch", func(t *testing.T) {
		c := New(Options{})
		var calls atomic.Int32
		key := ListKey("/api/favorites?count=10")

		c.Fetch(ctx, key, counting(&calls, "v1", nil))
		if n := c.Invalidate(ListsPrefix()); n != 1 {
			t.Errorf("expected 1 invalidated entry, got %d", n)
		}
		if !c.NeedsFetch(key) {
			t.Error("invalidated entry should need a fetch")
		}
		if got := c.Peek(key); got.Status != Pending {
			t.Errorf("invalidated entry should read as pending, got %v", got.Status)
		}

		r := c.Fetch(ctx, key, counting(&calls, "v2", nil))
		if r.Data != "v2" || calls.Load() != 2 {
			t.Errorf("expected refetch, got %+v calls=%d", r, calls.Load())
		}
	})

	t.Run("only matches prefix", func(t *testing.T) {
		c := New(Options{})
		seed(c, RecipeKey("https://a"), 1)
		seed(c, ListKey("/api/recents?count=10"), 2)

		c.Invalidate(RecipesPrefix())

		if c.Peek(RecipeKey("https://a")).Status != Pending {
			t.Error("recipe entry should be stale")
		}
		if c.Peek(ListKey("/api/recents?count=10")).Status != Success {
			t.Error("list entry should be untouched")
		}
	})

	t.Run("in-flight load does not overwrite newer state", func(t *testing.T) {
		c := New(Options{})
		key := RecipeKey("https://a")

		started := make(chan struct{})
		release := make(chan struct{})
		done := make(chan Result)
		go func() {
			done <- c.Fetch(ctx, key, func(context.Context) (any, error) {
				close(started)
				<-release
				return "old", nil
			})
		}()

		<-started
		c.Invalidate(key)
		close(release)

		if r := <-done; r.Data != "old" {
			t.Errorf("caller should still receive its result, got %+v", r)
		}
		if got := c.Peek(key); got.Status != Pending {
			t.Errorf("entry should stay stale after superseded load, got %+v", got)
		}

		var calls atomic.Int32
		if r := c.Fetch(ctx, key, counting(&calls, "new", nil)); r.Data != "new" {
			t.Errorf("expected fresh load, got %+v", r)
		}
	})
}

func TestCachePeek(t *testing.T) {
	c := New(Options{})
	if r := c.Peek(RecipeKey("https://missing")); r.Status != Pending {
		t.Errorf("missing entry should be pending, got %v", r.Status)
	}
	if !c.NeedsFetch(RecipeKey("https://missing")) {
		t.Error("missing entry should need a fetch")
	}
	if c.Len() != 0 {
		t.Error("peek should not create entries")
	}
	if Success.String() != "success" || Status(9).String() != "Status(9)" {
		t.Error("unexpected status strings")
	}
}
