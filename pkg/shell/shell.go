package shell

import (
	"context"
	"os/signal"
	"syscall"
)

// WithSignal cancels the context on SIGINT or SIGTERM
func WithSignal(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}
