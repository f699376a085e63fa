package database

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithSignalCancel derives a context from parent that is canceled on SIGTERM
// or SIGINT, so a slow document query can be abandoned from the terminal.
// Calling stop releases the signal registration, after which signals get
// their default behavior again.
func WithSignalCancel(parent context.Context, callback func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if callback != nil {
				callback(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
