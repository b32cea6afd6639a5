package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

// fakeCatalog is an in-memory Catalog stand-in.
type fakeCatalog struct {
	deck []models.Restaurant
	err  error
}

func (f *fakeCatalog) DrawDeck(_ context.Context, n int) ([]models.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if n > len(f.deck) {
		n = len(f.deck)
	}
	return f.deck[:n], nil
}

func (f *fakeCatalog) Count(context.Context) (int, error) {
	return len(f.deck), f.err
}

func (f *fakeCatalog) Close() error { return nil }

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(testPartyConfig(), &fakeCatalog{deck: testDeck(7)}, logger.Nop())
}

func TestHub_CreateReturnsCodeAndMember(t *testing.T) {
	hub := newTestHub(t)

	resp, err := hub.Create(context.Background(), "Ann")

	require.NoError(t, err)
	assert.Len(t, resp.Code, codeLength)
	assert.NotEmpty(t, resp.MemberID)

	room, err := hub.Room(resp.Code)
	require.NoError(t, err)
	assert.Len(t, room.Snapshot().Members, 1)
}

func TestHub_CreateRejectsEmptyName(t *testing.T) {
	hub := newTestHub(t)

	_, err := hub.Create(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestHub_CreatePropagatesCatalogError(t *testing.T) {
	hub := NewHub(testPartyConfig(), &fakeCatalog{err: assert.AnError}, logger.Nop())

	_, err := hub.Create(context.Background(), "Ann")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestHub_JoinExistingParty(t *testing.T) {
	hub := newTestHub(t)
	created, err := hub.Create(context.Background(), "Ann")
	require.NoError(t, err)

	joined, err := hub.Join(created.Code, "Bob")

	require.NoError(t, err)
	assert.Equal(t, created.Code, joined.Code)
	assert.NotEqual(t, created.MemberID, joined.MemberID)

	room, err := hub.Room(created.Code)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, room.Snapshot().Status)
}

func TestHub_JoinNormalizesCode(t *testing.T) {
	hub := newTestHub(t)
	created, err := hub.Create(context.Background(), "Ann")
	require.NoError(t, err)

	_, err = hub.Join("  "+created.Code+" ", "Bob")

	assert.NoError(t, err)
}

func TestHub_JoinUnknownCode(t *testing.T) {
	hub := newTestHub(t)

	_, err := hub.Join("NOSUCH", "Bob")

	assert.ErrorIs(t, err, ErrPartyNotFound)
}

func TestHub_SweepRemovesIdleAndEmptyRooms(t *testing.T) {
	hub := newTestHub(t)

	idle, err := hub.Create(context.Background(), "Ann")
	require.NoError(t, err)
	emptied, err := hub.Create(context.Background(), "Bob")
	require.NoError(t, err)

	emptyRoom, err := hub.Room(emptied.Code)
	require.NoError(t, err)
	emptyRoom.HandleMessage(emptied.MemberID, models.NewQuit())

	removed := hub.Sweep(time.Now())
	assert.Equal(t, 1, removed, "only the emptied room goes on the first sweep")
	_, err = hub.Room(idle.Code)
	require.NoError(t, err)

	removed = hub.Sweep(time.Now().Add(time.Hour))
	assert.Equal(t, 1, removed, "the idle room goes once past the TTL")
	_, err = hub.Room(idle.Code)
	assert.ErrorIs(t, err, ErrPartyNotFound)
}

func TestHub_SweepKeepsActiveRooms(t *testing.T) {
	hub := newTestHub(t)

	created, err := hub.Create(context.Background(), "Ann")
	require.NoError(t, err)

	removed := hub.Sweep(time.Now())

	assert.Zero(t, removed)
	_, err = hub.Room(created.Code)
	assert.NoError(t, err)
}
