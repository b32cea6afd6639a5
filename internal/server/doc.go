// Package server implements the development party server: HTTP endpoints for
// creating and joining parties, the websocket endpoint carrying snapshot
// pushes and inbound commands, and the in-memory hub of party rooms.
//
// The server is authoritative: every mutation of a room produces a fresh
// Party snapshot broadcast to all connected members.
package server
