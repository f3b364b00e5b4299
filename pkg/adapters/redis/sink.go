package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/commandbar/pkg/intent"
	backend "github.com/redis/go-redis/v9"
)

// ErrQueueEmpty is returned by Next when no intent arrived before the timeout.
var ErrQueueEmpty = errors.New("intent queue empty")

// Sink implements ports.IntentSink by pushing encoded intents onto a Redis list.
// An out-of-process worker (see Next) performs the side effects: gist calls, login exchanges.
type Sink struct {
	client *backend.Client
	key    string
}

// NewSink creates a sink writing to the list at key.
func NewSink(client *backend.Client, key string) *Sink {
	return &Sink{client: client, key: key}
}

// Dispatch encodes in as an envelope and appends it to the queue.
func (s *Sink) Dispatch(ctx context.Context, in intent.Intent) error {
	data, err := intent.Marshal(in)
	if err != nil {
		return err
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue intent: %w", err)
	}
	return nil
}

// Len reports how many intents are waiting.
func (s *Sink) Len(ctx context.Context) (int64, error) {
	return s.client.LLen(ctx, s.key).Result()
}

// Next pops the oldest intent, waiting up to timeout. It returns ErrQueueEmpty on timeout.
func (s *Sink) Next(ctx context.Context, timeout time.Duration) (intent.Intent, intent.Envelope, error) {
	res, err := s.client.BLPop(ctx, timeout, s.key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, intent.Envelope{}, ErrQueueEmpty
		}
		return nil, intent.Envelope{}, fmt.Errorf("failed to pop intent: %w", err)
	}
	// BLPOP replies with [key, value].
	if len(res) != 2 {
		return nil, intent.Envelope{}, fmt.Errorf("unexpected BLPOP reply: %v", res)
	}
	return intent.Unmarshal(json.RawMessage(res[1]))
}
