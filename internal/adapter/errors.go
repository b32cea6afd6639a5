package adapter

import "errors"

var (
	// ErrPartyNotFound means the invite code does not name a live party.
	ErrPartyNotFound = errors.New("party not found")

	// ErrPartyFull means the party stopped accepting members.
	ErrPartyFull = errors.New("party full")

	// ErrBadRequest covers malformed join requests (empty name, bad code).
	ErrBadRequest = errors.New("bad request")
)
