package ports

import (
	"context"

	"github.com/aretw0/commandbar/pkg/intent"
)

// IntentSink defines how activation results leave the engine.
// The engine produces intents; the host implements this interface to perform them.
type IntentSink interface {
	Dispatch(ctx context.Context, in intent.Intent) error
}

// SinkFunc adapts a function to IntentSink.
type SinkFunc func(ctx context.Context, in intent.Intent) error

// Dispatch calls f.
func (f SinkFunc) Dispatch(ctx context.Context, in intent.Intent) error {
	return f(ctx, in)
}

// DiscardSink drops every intent.
var DiscardSink IntentSink = SinkFunc(func(context.Context, intent.Intent) error { return nil })
