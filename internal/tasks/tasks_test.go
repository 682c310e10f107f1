package tasks

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	tu "github.com/desertthunder/recipes/internal/testing"
)

type blockingSender struct {
	mu      sync.Mutex
	release chan struct{}
	urls    []string
}

func (b *blockingSender) Hit(ctx context.Context, url string) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.urls = append(b.urls, url)
	return nil
}

func TestHitNotifier(t *testing.T) {
	t.Run("sends queued clicks", func(t *testing.T) {
		client := tu.NewMockRecipeClient()
		n := NewHitNotifier(client, HitOpts{Rate: 1000})
		n.Start(context.Background())

		n.Notify("https://a.com")
		n.Notify("https://b.com")
		n.Close(context.Background())

		want := []string{"https://a.com", "https://b.com"}
		if got := client.HitCalls(); !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Notify never blocks", func(t *testing.T) {
		sender := &blockingSender{release: make(chan struct{})}
		n := NewHitNotifier(sender, HitOpts{QueueSize: 1, Rate: 1000})
		n.Start(context.Background())

		done := make(chan int)
		go func() {
			accepted := 0
			for range 10 {
				if n.Notify("https://a.com") {
					accepted++
				}
			}
			done <- accepted
		}()

		select {
		case accepted := <-done:
			if accepted >= 10 {
				t.Errorf("expected some clicks to be dropped, accepted %d", accepted)
			}
		case <-time.After(time.Second):
			t.Fatal("Notify blocked")
		}

		close(sender.release)
		n.Close(context.Background())
	})

	t.Run("failures are swallowed", func(t *testing.T) {
		client := tu.NewMockRecipeClient()
		client.Err = errors.New("offline")
		n := NewHitNotifier(client, HitOpts{Rate: 1000})
		n.Start(context.Background())

		if !n.Notify("https://a.com") {
			t.Error("click should be accepted")
		}
		n.Close(context.Background())

		if len(client.HitCalls()) != 1 {
			t.Errorf("expected one attempt, got %v", client.HitCalls())
		}
	})

	t.Run("closed notifier drops clicks", func(t *testing.T) {
		n := NewHitNotifier(tu.NewMockRecipeClient(), HitOpts{})
		n.Start(context.Background())
		n.Close(context.Background())
		n.Close(context.Background())

		if n.Notify("https://a.com") {
			t.Error("closed notifier should drop clicks")
		}
	})

	t.Run("Close gives up when context ends", func(t *testing.T) {
		sender := &blockingSender{release: make(chan struct{})}
		n := NewHitNotifier(sender, HitOpts{Rate: 1000})
		n.Start(context.Background())
		n.Notify("https://a.com")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		go func() {
			<-ctx.Done()
			close(sender.release)
		}()
		n.Close(ctx)
	})
}

func TestSummarizeAll(t *testing.T) {
	t.Run("keeps input order", func(t *testing.T) {
		client := tu.NewMockRecipeClient()
		client.Summaries["https://a.com"] = tu.Summary("A", []string{"x"}, []string{"y"})
		client.Errs["https://b.com"] = errors.New("boom")

		urls := []string{"https://a.com", "https://b.com", "https://c.com"}
		prog := make(chan ProgressUpdate, 16)

		results, err := SummarizeAll(context.Background(), client, urls, BatchOpts{NumWorkers: 2, RateLimit: 1000}, prog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for i, r := range results {
			if r.URL != urls[i] {
				t.Errorf("result %d: expected %s, got %s", i, urls[i], r.URL)
			}
		}
		if results[0].Result.Summary.Title != "A" {
			t.Error("expected summary for a")
		}
		if results[1].Err == nil {
			t.Error("expected error for b")
		}
		if results[2].Result == nil || results[2].Result.Summary != nil {
			t.Error("expected empty result for c")
		}

		close(prog)
		var done, failed int
		for u := range prog {
			switch u.Phase {
			case Done:
				done++
			case Failed:
				failed++
			}
		}
		if done != 2 || failed != 1 {
			t.Errorf("expected 2 done and 1 failed updates, got %d and %d", done, failed)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results, err := SummarizeAll(ctx, tu.NewMockRecipeClient(), []string{"https://a.com"}, BatchOpts{}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(results) != 1 || results[0].Result != nil {
			t.Errorf("unexpected results %+v", results)
		}
	})

	t.Run("nil client", func(t *testing.T) {
		if _, err := SummarizeAll(context.Background(), nil, nil, BatchOpts{}, nil); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("Phase strings", func(t *testing.T) {
		if Done.String() != "done" || Phase(42).String() != "unknown" {
			t.Error("unexpected phase strings")
		}
	})
}

var _ Summarizer = (*tu.MockRecipeClient)(nil)
var _ HitSender = (*tu.MockRecipeClient)(nil)
