package tui

import (
	"github.com/MKhiriev/go-party-swipe/models"
)

// NavigateTo switches the root router to another page.
type NavigateTo struct {
	Page string
}

// JoinDone finishes the create-or-join flow. On success the root router
// quits the program with the handshake result.
type JoinDone struct {
	Resp models.JoinResponse
	Err  error
}

// snapshotMsg delivers the next server push from the transport channel.
// ok mirrors the channel receive: false means the transport shut down.
type snapshotMsg struct {
	party models.Party
	ok    bool
}

type copiedMsg struct{}

type clearStatusMsg struct{}
