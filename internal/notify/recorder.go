package notify

import (
	"context"
	"sync"
)

// Recorder is an in-memory Notifier for tests.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// NewRecorder returns a new Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Notify records the message.
func (r *Recorder) Notify(_ context.Context, msg Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// ByEvent returns recorded messages with the given event type.
func (r *Recorder) ByEvent(eventType string) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Message
	for _, m := range r.msgs {
		if m.EventType == eventType {
			out = append(out, m)
		}
	}
	return out
}

var _ Notifier = (*Recorder)(nil)
