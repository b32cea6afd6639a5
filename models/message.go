package models

// MessageType discriminates outbound socket messages.
type MessageType string

const (
	// SwipeRight signals the local user approved a candidate.
	SwipeRight MessageType = "swipe-right"

	// RequestMore asks the server for the next candidate batch.
	RequestMore MessageType = "request-more"

	// Quit signals voluntary party departure.
	Quit MessageType = "quit"
)

// Message is a single outbound command sent over the socket.
// Dispatch is fire-and-forget: no acknowledgment is awaited.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload *MessagePayload `json:"payload,omitempty"`
}

// MessagePayload carries the optional payload of an outbound command.
type MessagePayload struct {
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// NewSwipeRight builds a swipe-right command for the given restaurant.
func NewSwipeRight(restaurantID string) Message {
	return Message{
		Type:    SwipeRight,
		Payload: &MessagePayload{RestaurantID: restaurantID},
	}
}

// NewRequestMore builds a request-more command.
func NewRequestMore() Message {
	return Message{Type: RequestMore}
}

// NewQuit builds a quit command.
func NewQuit() Message {
	return Message{Type: Quit}
}
