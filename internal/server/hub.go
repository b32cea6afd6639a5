package server

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-party-swipe/internal/config"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/internal/store"
	"github.com/MKhiriev/go-party-swipe/models"
)

// codeAlphabet excludes look-alike characters so invite codes survive being
// read aloud.
const (
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
)

// Hub owns every live party room, keyed by invite code.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	cfg     config.Party
	catalog store.Catalog
	log     *logger.Logger
}

// NewHub creates an empty hub drawing party decks from the given catalog.
func NewHub(cfg config.Party, catalog store.Catalog, log *logger.Logger) *Hub {
	log.Info().Msg("party hub created")
	return &Hub{
		rooms:   make(map[string]*Room),
		cfg:     cfg,
		catalog: catalog,
		log:     log,
	}
}

// Create opens a new party room and joins the caller as its first member.
func (h *Hub) Create(ctx context.Context, name string) (models.JoinResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.JoinResponse{}, ErrEmptyName
	}

	deck, err := h.catalog.DrawDeck(ctx, h.cfg.DeckSize)
	if err != nil {
		return models.JoinResponse{}, fmt.Errorf("draw party deck: %w", err)
	}

	h.mu.Lock()
	code := h.nextCode()
	room := newRoom(code, deck, h.cfg, h.log)
	h.rooms[code] = room
	h.mu.Unlock()

	member := models.Member{ID: uuid.NewString(), Name: name}
	if err := room.AddMember(member); err != nil {
		return models.JoinResponse{}, err
	}

	h.log.Info().Str("party", code).Int("deck", len(deck)).Msg("party created")
	return models.JoinResponse{Code: code, MemberID: member.ID}, nil
}

// Join adds a member to an existing party by invite code.
func (h *Hub) Join(code, name string) (models.JoinResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.JoinResponse{}, ErrEmptyName
	}

	room, err := h.Room(code)
	if err != nil {
		return models.JoinResponse{}, err
	}

	member := models.Member{ID: uuid.NewString(), Name: name}
	if err := room.AddMember(member); err != nil {
		return models.JoinResponse{}, err
	}

	h.log.Info().Str("party", room.code).Str("member", member.Name).Msg("member joined")
	return models.JoinResponse{Code: room.code, MemberID: member.ID}, nil
}

// Room resolves an invite code to a live room.
func (h *Hub) Room(code string) (*Room, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, ErrPartyNotFound
	}
	return room, nil
}

// Sweep expires rooms idle past the TTL and collects emptied ones.
// It returns the number of rooms removed.
func (h *Hub) Sweep(now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := 0
	for code, room := range h.rooms {
		switch {
		case room.Empty():
			delete(h.rooms, code)
			removed++
		case now.Sub(room.IdleSince()) > h.cfg.IdleTTL:
			room.Expire("party expired due to inactivity")
			delete(h.rooms, code)
			removed++
		}
	}

	if removed > 0 {
		h.log.Info().Int("removed", removed).Int("live", len(h.rooms)).Msg("swept party rooms")
	}
	return removed
}

// nextCode generates an invite code not yet in use. Runs under the hub
// mutex.
func (h *Hub) nextCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := h.rooms[code]; !taken {
			return code
		}
	}
}

// Sweeper periodically collects idle and empty party rooms. It implements
// the background worker contract.
type Sweeper struct {
	hub      *Hub
	interval time.Duration
	log      *logger.Logger
}

// NewSweeper builds a sweeper ticking at the configured interval.
func NewSweeper(hub *Hub, interval time.Duration, log *logger.Logger) *Sweeper {
	return &Sweeper{hub: hub, interval: interval, log: log}
}

// Run starts the sweep loop in its own goroutine and returns immediately.
func (s *Sweeper) Run() {
	s.log.Info().Dur("interval", s.interval).Msg("party sweeper started")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for range ticker.C {
			s.hub.Sweep(time.Now())
		}
	}()
}
