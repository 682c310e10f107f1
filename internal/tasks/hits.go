package tasks

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/time/rate"
)

// HitSender records one click.
type HitSender interface {
	Hit(ctx context.Context, url string) error
}

// HitOpts configures a [HitNotifier].
type HitOpts struct {
	QueueSize int     // Buffered clicks (default: 16)
	Rate      float64 // Notifications per second (default: 2)
	Logger    *log.Logger
}

// HitNotifier sends click notifications in the background.
type HitNotifier struct {
	sender  HitSender
	limiter *rate.Limiter
	queue   chan string
	logger  *log.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewHitNotifier creates a notifier. Call [HitNotifier.Start] before use.
func NewHitNotifier(sender HitSender, opts HitOpts) *HitNotifier {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 16
	}
	if opts.Rate <= 0 {
		opts.Rate = 2
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &HitNotifier{
		sender:  sender,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), 1),
		queue:   make(chan string, opts.QueueSize),
		logger:  opts.Logger,
	}
}

// Start launches the worker. It stops when ctx is done or Close is called.
func (n *HitNotifier) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	n.mu.Lock()
	n.cancel = cancel
	n.mu.Unlock()

	n.wg.Add(1)
	go n.run(ctx)
}

func (n *HitNotifier) run(ctx context.Context) {
	defer n.wg.Done()

	for url := range n.queue {
		if err := n.limiter.Wait(ctx); err != nil {
			n.logger.Debug("dropping click", "url", url, "error", err)
			continue
		}

		if err := n.sender.Hit(ctx, url); err != nil {
			if errors.Is(err, context.Canceled) {
				continue
			}
			n.logger.Warn("failed to record click", "url", url, "error", err)
		}
	}
}

// Notify queues a click on url. It reports false when the click was dropped
// because the queue is full or the notifier is closed.
func (n *HitNotifier) Notify(url string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return false
	}
	select {
	case n.queue <- url:
		return true
	default:
		n.logger.Debug("click queue full", "url", url)
		return false
	}
}

// Close stops accepting clicks and waits for queued ones to be sent.
// Pending clicks are abandoned when ctx is done first.
func (n *HitNotifier) Close(ctx context.Context) {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.queue)
	cancel := n.cancel
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if cancel != nil {
			cancel()
		}
		<-done
	}

	if cancel != nil {
		cancel()
	}
}
