// Command studytrack is a spaced-repetition study tracker: it reviews
// flashcards with FSRS, logs solved practice problems, tracks study plan
// progress and exports or imports backups.
//
// Configuration is read from config.yaml (or CONFIG_PATH) and environment
// variables; see internal/config.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
