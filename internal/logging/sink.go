package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/commandbar/pkg/intent"
	"github.com/aretw0/commandbar/pkg/ports"
)

// SinkMiddleware wraps an IntentSink and logs every dispatch with its outcome.
func SinkMiddleware(logger *slog.Logger, next ports.IntentSink) ports.IntentSink {
	return ports.SinkFunc(func(ctx context.Context, in intent.Intent) error {
		start := time.Now()
		err := next.Dispatch(ctx, in)
		if err != nil {
			logger.Error("Intent dispatch failed", "intent", in.Type(), "duration", time.Since(start), "err", err)
			return err
		}
		logger.Debug("Intent dispatched", "intent", in.Type(), "duration", time.Since(start))
		return nil
	})
}
