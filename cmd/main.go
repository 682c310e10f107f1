package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/recipes/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.App().Run(ctx, os.Args); err != nil {
		if errors.Is(err, shared.ErrUnauthorized) {
			logger.Error("not signed in", "hint", "run `recipes auth login`", "error", err)
			stop()
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
