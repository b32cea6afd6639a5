package models

// JoinRequest is the body of the create-party and join-party HTTP calls.
type JoinRequest struct {
	// Name is the display name the member joins under.
	Name string `json:"name"`
}

// JoinResponse is returned by the create-party and join-party HTTP calls.
// Code and MemberID together identify the websocket session to open.
type JoinResponse struct {
	Code     string `json:"code"`
	MemberID string `json:"member_id"`
}

// APIError is the JSON error body returned by the party API.
type APIError struct {
	Error string `json:"error"`
}
