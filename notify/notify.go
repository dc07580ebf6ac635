package notify

import (
	"context"
	"errors"
	"time"
)

const (
	EventOrderAccepted = "order.accepted"
	EventSignupCreated = "signup.created"
)

// Event is a domain notification published after a committed write.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEvent(eventType string, payload any) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Fanout delivers an event to every notifier and joins their errors.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
