package notify

import (
	"context"
	"errors"
	"fmt"
)

// Notifier delivers one composed digest message. Delivery failure is
// the caller's problem only as far as logging it; it never fails a run.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Console just prints the message, the fallback when no delivery
// channel is configured.
type Console struct{}

func (Console) Send(ctx context.Context, message string) error {
	_, err := fmt.Println(message)
	return err
}

// Multi fans one message out to several notifiers, attempting all of
// them even when earlier ones fail.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, message string) error {
	var errlist []error
	for _, n := range m {
		if err := n.Send(ctx, message); err != nil {
			errlist = append(errlist, err)
		}
	}
	return errors.Join(errlist...)
}
