// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrPartyNotFound is returned when the invite code does not resolve to
	// a live party room.
	ErrPartyNotFound = errors.New("party not found")

	// ErrPartyFull is returned when a join would exceed the room capacity.
	ErrPartyFull = errors.New("party is full")

	// ErrMemberNotFound is returned when a member id is not part of the room.
	ErrMemberNotFound = errors.New("member not found")

	// ErrEmptyName is returned when a create or join request carries no
	// display name.
	ErrEmptyName = errors.New("empty member name")

	errNoServersAreCreated = errors.New("no servers are created")
)
