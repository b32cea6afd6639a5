// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-party-swipe/internal/config"
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

// maxMembers caps a single party room. Parties are small groups deciding on
// dinner, not broadcast channels.
const maxMembers = 8

// Room is one party: its members, its candidate deck and the swipe ledger.
// All mutations happen under the room mutex and end with a snapshot
// broadcast to every attached connection.
type Room struct {
	mu sync.Mutex

	code string
	cfg  config.Party
	log  *logger.Logger

	members []models.Member
	conns   map[string]*wsClient

	// deck is the full ordered candidate draw for this party. delivered is
	// the count of cards handed out so far; the next batch starts there.
	// batchStart marks where the most recent incremental batch begins.
	deck       []models.Restaurant
	delivered  int
	batchStart int
	exhausted  bool

	// swipes maps restaurant id to the set of member ids that approved it.
	swipes map[string]map[string]struct{}

	status  models.PartyStatus
	match   *models.Restaurant
	fault   string
	touched time.Time
	closed  bool
}

func newRoom(code string, deck []models.Restaurant, cfg config.Party, log *logger.Logger) *Room {
	return &Room{
		code:    code,
		cfg:     cfg,
		log:     log,
		conns:   make(map[string]*wsClient),
		deck:    deck,
		swipes:  make(map[string]map[string]struct{}),
		status:  models.StatusWaiting,
		touched: time.Now(),
	}
}

// AddMember registers a new member and broadcasts the updated snapshot.
// When the member count reaches the minimum the party activates and the
// initial batch is dealt.
func (r *Room) AddMember(member models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrPartyNotFound
	}
	if len(r.members) >= maxMembers {
		return ErrPartyFull
	}

	r.members = append(r.members, member)
	r.touch()

	if r.status == models.StatusWaiting && len(r.members) >= r.cfg.MinMembers {
		r.activate()
	}

	r.broadcastLocked()
	return nil
}

// activate deals the initial batch and flips the party to active.
// Runs under the room mutex.
func (r *Room) activate() {
	if len(r.deck) == 0 {
		r.fault = "no restaurants available"
		r.log.Error().Str("party", r.code).Msg("activation failed: empty deck")
		return
	}

	initial := r.cfg.InitialBatch
	if initial > len(r.deck) {
		initial = len(r.deck)
	}

	r.delivered = initial
	r.batchStart = initial
	r.status = models.StatusActive
	r.log.Info().Str("party", r.code).Int("members", len(r.members)).Msg("party activated")
}

// Attach binds a live websocket client to a member id, replacing any
// previous connection for that member. The current snapshot is pushed
// immediately so a reconnecting client catches up without waiting for the
// next mutation.
func (r *Room) Attach(memberID string, c *wsClient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrPartyNotFound
	}
	if !r.hasMember(memberID) {
		return ErrMemberNotFound
	}

	if prev, ok := r.conns[memberID]; ok {
		prev.shutdown()
	}
	r.conns[memberID] = c
	r.touch()

	c.push(r.snapshotLocked())
	return nil
}

// Detach drops the connection for a member without removing the member.
// The member keeps their place so an automatic reconnect can resume.
func (r *Room) Detach(memberID string, c *wsClient) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.conns[memberID]; ok && current == c {
		delete(r.conns, memberID)
	}
}

// HandleMessage applies one inbound command from a member.
func (r *Room) HandleMessage(memberID string, msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || !r.hasMember(memberID) {
		return
	}
	r.touch()

	switch msg.Type {
	case models.SwipeRight:
		if msg.Payload == nil || msg.Payload.RestaurantID == "" {
			r.log.Warn().Str("party", r.code).Msg("swipe-right without restaurant id")
			return
		}
		r.swipeRight(memberID, msg.Payload.RestaurantID)
	case models.RequestMore:
		r.dealBatch()
	case models.Quit:
		r.removeMember(memberID)
	default:
		r.log.Warn().Str("party", r.code).Str("type", string(msg.Type)).Msg("unknown message type")
	}
}

// swipeRight records one approval and checks for unanimity. Runs under the
// room mutex.
func (r *Room) swipeRight(memberID, restaurantID string) {
	if r.status != models.StatusActive {
		return
	}

	approvals, ok := r.swipes[restaurantID]
	if !ok {
		approvals = make(map[string]struct{})
		r.swipes[restaurantID] = approvals
	}
	approvals[memberID] = struct{}{}

	if len(approvals) >= len(r.members) {
		if winner := r.findCard(restaurantID); winner != nil {
			r.status = models.StatusMatched
			r.match = winner
			r.log.Info().Str("party", r.code).Str("restaurant", restaurantID).Msg("party matched")
		}
	}

	r.broadcastLocked()
}

// dealBatch hands out the next incremental batch, or marks the deck
// exhausted when nothing is left. Runs under the room mutex.
func (r *Room) dealBatch() {
	if r.status != models.StatusActive {
		return
	}

	if r.delivered >= len(r.deck) {
		r.exhausted = true
		r.log.Info().Str("party", r.code).Msg("deck exhausted")
		r.broadcastLocked()
		return
	}

	next := r.delivered + r.cfg.BatchSize
	if next > len(r.deck) {
		next = len(r.deck)
	}
	r.batchStart = r.delivered
	r.delivered = next

	r.broadcastLocked()
}

// removeMember drops a member and their connection. The last member leaving
// closes the room. Runs under the room mutex.
func (r *Room) removeMember(memberID string) {
	for i, m := range r.members {
		if m.ID == memberID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	for _, approvals := range r.swipes {
		delete(approvals, memberID)
	}
	if c, ok := r.conns[memberID]; ok {
		delete(r.conns, memberID)
		c.shutdown()
	}

	if len(r.members) == 0 {
		r.closeLocked("")
		return
	}

	r.broadcastLocked()
}

// Expire pushes a party-level error to every member and closes the room.
func (r *Room) Expire(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked(reason)
}

// closeLocked marks the room closed, pushing a final error snapshot when a
// reason is given. Runs under the room mutex.
func (r *Room) closeLocked(reason string) {
	if r.closed {
		return
	}

	if reason != "" {
		r.fault = reason
		r.broadcastLocked()
	}

	r.closed = true
	for id, c := range r.conns {
		delete(r.conns, id)
		c.shutdown()
	}
}

// Empty reports whether the room has no members left.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0 || r.closed
}

// IdleSince returns the time of the last member activity.
func (r *Room) IdleSince() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touched
}

// Snapshot returns the current authoritative Party value.
func (r *Room) Snapshot() models.Party {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// snapshotLocked assembles the wire snapshot. Runs under the room mutex.
//
// Restaurants always carries the initial batch: it is immutable after first
// delivery and clients only seed from it once. Current carries the most
// recent incremental batch. Total is the cumulative delivered count until
// exhaustion, after which it is pinned to zero.
func (r *Room) snapshotLocked() models.Party {
	p := models.Party{
		ID:      r.code,
		Status:  r.status,
		Members: append([]models.Member(nil), r.members...),
		Match:   r.match,
		Error:   r.fault,
	}

	if r.delivered > 0 {
		initial := r.cfg.InitialBatch
		if initial > r.delivered {
			initial = r.delivered
		}
		p.Restaurants = append([]models.Restaurant(nil), r.deck[:initial]...)
		if r.delivered > r.batchStart {
			p.Current = append([]models.Restaurant(nil), r.deck[r.batchStart:r.delivered]...)
		}
	}

	if !r.exhausted {
		p.Total = r.delivered
	}

	return p
}

// broadcastLocked pushes the current snapshot to every attached connection.
// Runs under the room mutex.
func (r *Room) broadcastLocked() {
	snapshot := r.snapshotLocked()
	for _, c := range r.conns {
		c.push(snapshot)
	}
}

func (r *Room) hasMember(memberID string) bool {
	for _, m := range r.members {
		if m.ID == memberID {
			return true
		}
	}
	return false
}

func (r *Room) findCard(restaurantID string) *models.Restaurant {
	for i := range r.deck {
		if r.deck[i].ID == restaurantID {
			card := r.deck[i]
			return &card
		}
	}
	return nil
}

func (r *Room) touch() {
	r.touched = time.Now()
}
