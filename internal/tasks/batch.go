package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/recipes/internal/models"
	"github.com/desertthunder/recipes/internal/shared"
	"golang.org/x/time/rate"
)

// Summarizer requests one summary.
type Summarizer interface {
	Summarize(ctx context.Context, url, titleHint string) (*models.SummaryResult, error)
}

// BatchOpts configures [SummarizeAll].
type BatchOpts struct {
	NumWorkers int     // Concurrent requests (default: 3, max: 8)
	RateLimit  float64 // Requests per second (default: 2)
}

// BatchResult is the outcome for one URL.
type BatchResult struct {
	URL    string
	Result *models.SummaryResult
	Err    error
}

type batchJob struct {
	index int
	url   string
}

// SummarizeAll summarizes urls concurrently. The returned slice has one
// entry per URL in input order; per-URL failures are reported in
// [BatchResult.Err]. The error is non-nil only when ctx ends early.
func SummarizeAll(
	ctx context.Context,
	client Summarizer,
	urls []string,
	opts BatchOpts,
	prog chan<- ProgressUpdate,
) ([]BatchResult, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: summarizer not initialized", shared.ErrServiceUnavailable)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}

	results := make([]BatchResult, len(urls))
	for i, u := range urls {
		results[i].URL = u
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan batchJob)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	finish := func(i int, res *models.SummaryResult, err error) {
		mu.Lock()
		defer mu.Unlock()
		completed++
		results[i].Result, results[i].Err = res, err

		if err != nil {
			sendProgress(prog, failedUpdate(completed, len(urls), urls[i], err))
			return
		}
		title := ""
		if res.Summary != nil {
			title = res.Summary.Title
		}
		sendProgress(prog, doneUpdate(completed, len(urls), urls[i], title))
	}

	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				res, err := client.Summarize(ctx, job.url, "")
				finish(job.index, res, err)
			}
		}()
	}

	sendProgress(prog, queuedUpdate(len(urls)))

	var runErr error
feed:
	for i, u := range urls {
		if err := limiter.Wait(ctx); err != nil {
			runErr = err
			break
		}
		sendProgress(prog, summarizingUpdate(i+1, len(urls), u))

		select {
		case jobs <- batchJob{index: i, url: u}:
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		return results, fmt.Errorf("batch interrupted: %w", runErr)
	}
	return results, nil
}
