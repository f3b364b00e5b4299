package memory

import (
	"context"
	"sync"

	"github.com/aretw0/commandbar/pkg/intent"
)

// Sink implements ports.IntentSink by recording every intent it receives.
// It is the sink of choice for tests and dry runs.
type Sink struct {
	mu      sync.Mutex
	intents []intent.Intent
}

// NewSink creates an empty recording sink.
func NewSink() *Sink {
	return &Sink{}
}

// Dispatch records in.
func (s *Sink) Dispatch(ctx context.Context, in intent.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = append(s.intents, in)
	return nil
}

// Intents returns a copy of everything recorded so far.
func (s *Sink) Intents() []intent.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]intent.Intent(nil), s.intents...)
}

// Last returns the most recent intent, or nil.
func (s *Sink) Last() intent.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.intents) == 0 {
		return nil
	}
	return s.intents[len(s.intents)-1]
}

// Reset forgets every recorded intent.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = nil
}
