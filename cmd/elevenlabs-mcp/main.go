package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0   // All checks passed / command succeeded
	ExitCheckFailed = 1   // One or more setup checks failed
	ExitError       = 2   // Configuration or runtime error
	ExitInterrupted = 130 // SIGINT or SIGTERM
)

// CheckFailureError indicates that the setup checks ran to completion but
// one or more of them failed.
type CheckFailureError struct {
	Failed int
	Total  int
}

func (e *CheckFailureError) Error() string {
	return fmt.Sprintf("%d of %d setup checks failed", e.Failed, e.Total)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var checkErr *CheckFailureError
	switch {
	case errors.As(err, &checkErr):
		// The report has already been printed.
		return ExitCheckFailed
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "interrupted")
		return ExitInterrupted
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return ExitError
	}
}
