package party

import (
	"fmt"

	"github.com/MKhiriev/go-party-swipe/models"
)

// Sender is the outbound half of the socket the session writes to. The
// connection is a long-lived handle injected from outside; the session never
// owns its lifecycle.
type Sender interface {
	Send(msg models.Message) error
}

// Dispatcher serializes user and system intents into outbound protocol
// messages. Every send is optimistic: at most once, no retries, no
// acknowledgment awaited.
type Dispatcher struct {
	sender Sender
}

// NewDispatcher creates a dispatcher writing to sender.
func NewDispatcher(sender Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// SwipeRight reports approval of the given restaurant. The card stays in
// the local queue; consumption is the caller's concern.
func (d *Dispatcher) SwipeRight(restaurantID string) error {
	if err := d.sender.Send(models.NewSwipeRight(restaurantID)); err != nil {
		return fmt.Errorf("send swipe-right: %w", err)
	}
	return nil
}

// RequestMore asks for the next candidate batch. Callers must only invoke
// it while the session is active.
func (d *Dispatcher) RequestMore() error {
	if err := d.sender.Send(models.NewRequestMore()); err != nil {
		return fmt.Errorf("send request-more: %w", err)
	}
	return nil
}

// Quit signals voluntary departure. Legal in every phase.
func (d *Dispatcher) Quit() error {
	if err := d.sender.Send(models.NewQuit()); err != nil {
		return fmt.Errorf("send quit: %w", err)
	}
	return nil
}
