package contact

import (
	"context"
	"errors"
	"fmt"
)

// Deliverer hands a validated form to an external message delivery service.
type Deliverer interface {
	Deliver(ctx context.Context, form Form) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, form Form) error

func (f DelivererFunc) Deliver(ctx context.Context, form Form) error { return f(ctx, form) }

// DeliveryError is a rejection reported by the delivery service itself.
type DeliveryError struct {
	Status int
	Text   string
	Err    error
}

func (e *DeliveryError) Unwrap() error { return e.Err }

func (e *DeliveryError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("delivery rejected with status %d", e.Status)
	}
	return fmt.Sprintf("delivery rejected with status %d: %s", e.Status, e.Text)
}

// ReportedText returns the human readable text the delivery service attached
// to err, or "" when err carries none (transport failures, timeouts).
func ReportedText(err error) string {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Text
	}
	return ""
}
