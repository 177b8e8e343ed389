// Package notify provides implementations of domain.Notifier. Message
// delivery (SMS) happens outside this process; LogNotifier records the
// outgoing message so an operator or gateway can pick it up.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"weighttrack/internal/domain"
)

// LogNotifier writes each message to a zap logger.
type LogNotifier struct {
	log *zap.Logger
}

var _ domain.Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log.Named("notify")}
}

// Notify logs the message addressed to to.
func (n *LogNotifier) Notify(ctx context.Context, to, message string) error {
	n.log.Info("sms", zap.String("to", to), zap.String("message", message))
	return nil
}

// Message is one notification captured by a Recorder.
type Message struct {
	To   string
	Body string
}

// Recorder keeps notifications in memory and optionally forwards them.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
	next domain.Notifier
}

var _ domain.Notifier = (*Recorder)(nil)

// NewRecorder creates a Recorder that forwards to next when non-nil.
func NewRecorder(next domain.Notifier) *Recorder {
	return &Recorder{next: next}
}

// Notify records the message, then forwards it.
func (r *Recorder) Notify(ctx context.Context, to, message string) error {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{To: to, Body: message})
	r.mu.Unlock()

	if r.next != nil {
		return r.next.Notify(ctx, to, message)
	}
	return nil
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}
