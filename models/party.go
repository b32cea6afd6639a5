package models

// PartyStatus is the server-assigned lifecycle status of a party.
type PartyStatus string

const (
	// StatusWaiting means fewer than the minimum member count has joined.
	StatusWaiting PartyStatus = "waiting"

	// StatusActive means the party is swiping through candidates.
	StatusActive PartyStatus = "active"

	// StatusMatched means every member approved the same restaurant.
	StatusMatched PartyStatus = "matched"
)

// Party is the authoritative snapshot pushed by the server over the socket.
// The client never mutates it field by field; every push replaces the whole
// value.
type Party struct {
	// ID is the short shareable invite code, stable for the party lifetime.
	ID string `json:"id"`

	// Status is the server-assigned party status.
	Status PartyStatus `json:"status"`

	// Members lists the display names of everyone currently in the party.
	Members []Member `json:"members,omitempty"`

	// Restaurants is the initial full ordered candidate sequence.
	// Set once by the server, immutable after first delivery.
	Restaurants []Restaurant `json:"restaurants,omitempty"`

	// Current is the most recent incremental batch appended by the server
	// in response to a request-more command. Empty when no batch is pending.
	Current []Restaurant `json:"current,omitempty"`

	// Total is the candidate count known to the server.
	// Zero signals exhaustion.
	Total int `json:"total"`

	// Match is the winning restaurant, set only when Status is matched.
	Match *Restaurant `json:"match,omitempty"`

	// Error is a human-readable message. Presence signals a terminal
	// party-level fault.
	Error string `json:"error,omitempty"`
}

// Member is a single party participant.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsZero reports whether the snapshot is the empty value, i.e. no push has
// been applied since the party was created or reset.
func (p Party) IsZero() bool {
	return p.ID == "" && p.Status == "" && p.Error == "" &&
		len(p.Restaurants) == 0 && len(p.Current) == 0
}
