package party

import (
	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/models"
)

// lowWater is the remaining-card count at which the session prefetches the
// next batch, early enough for the round trip to finish before the visible
// cards run out.
const lowWater = 3

// Session ties the snapshot store, local queue, reconciler, and dispatcher
// into the client-side party state machine. It is driven from a single event
// loop: snapshots via ApplySnapshot in server order, user actions in
// between.
type Session struct {
	store      *Store
	queue      *Queue
	reconciler *Reconciler
	dispatcher *Dispatcher
	log        *logger.Logger

	finished    bool
	confirmQuit bool
	closed      bool
}

// NewSession creates a session sending outbound commands through sender.
func NewSession(sender Sender, log *logger.Logger) *Session {
	store := NewStore()
	queue := NewQueue()
	return &Session{
		store:      store,
		queue:      queue,
		reconciler: NewReconciler(store, queue),
		dispatcher: NewDispatcher(sender),
		log:        log,
	}
}

// ApplySnapshot merges a server push. Late pushes arriving after the session
// closed (quit confirmed, error acknowledged) are dropped: no queue mutation
// and no command dispatch happens against a stale party.
func (s *Session) ApplySnapshot(p models.Party) MergeResult {
	if s.closed {
		s.log.Debug().Str("party", p.ID).Msg("snapshot dropped after session close")
		return MergeResult{}
	}

	res := s.reconciler.Apply(p)
	if res.Seeded || res.Appended > 0 {
		s.log.Debug().
			Str("party", p.ID).
			Bool("seeded", res.Seeded).
			Int("appended", res.Appended).
			Int("remaining", s.queue.Remaining()).
			Msg("snapshot merged")
	}
	return res
}

// Phase derives the current lifecycle phase.
func (s *Session) Phase() Phase {
	return derivePhase(s.store.Party(), s.queue, s.finished, s.confirmQuit)
}

// Party returns the latest authoritative snapshot.
func (s *Session) Party() models.Party {
	return s.store.Party()
}

// CurrentCard returns the card on top of the queue, if any.
func (s *Session) CurrentCard() (models.Restaurant, bool) {
	return s.queue.Current()
}

// Remaining returns the number of swipeable cards left locally.
func (s *Session) Remaining() int {
	return s.queue.Remaining()
}

// SwipeRight approves the top card, then consumes it. Only legal while
// active; anywhere else it is a no-op.
func (s *Session) SwipeRight() {
	if s.Phase() != PhaseActive {
		return
	}
	card, ok := s.queue.Current()
	if !ok {
		return
	}
	if err := s.dispatcher.SwipeRight(card.ID); err != nil {
		s.log.Error().Err(err).Str("restaurant", card.ID).Msg("swipe-right dispatch failed")
	}
	s.consume()
}

// SwipeLeft rejects the top card locally. Rejection is not part of the wire
// protocol; only the consumption is recorded.
func (s *Session) SwipeLeft() {
	if s.Phase() != PhaseActive {
		return
	}
	s.consume()
}

// consume advances the cursor and runs the edge-triggered low-queue check:
// exactly one request-more per transition into lowWater remaining, never a
// duplicate while the count sits there across re-renders.
func (s *Session) consume() {
	before := s.queue.Remaining()
	if !s.queue.Advance() {
		return
	}
	after := s.queue.Remaining()
	if after == 0 {
		s.finished = true
	}
	if after == lowWater && before > lowWater {
		s.requestMore()
	}
}

func (s *Session) requestMore() {
	// Pointless once the server has reported exhaustion.
	if s.store.Party().Total == 0 {
		return
	}
	if s.Phase() != PhaseActive {
		return
	}
	if err := s.dispatcher.RequestMore(); err != nil {
		s.log.Error().Err(err).Msg("request-more dispatch failed")
		return
	}
	s.log.Debug().Int("remaining", s.queue.Remaining()).Msg("requested next batch")
}

// StartOver resets the queue to exactly the party's initial restaurant set
// and clears the finished flag. Available from the exhausted phase.
func (s *Session) StartOver() {
	if s.closed {
		return
	}
	s.queue.Reset(s.store.Party().Restaurants)
	s.finished = false
}

// RequestQuit opens the exit-confirmation dialog.
func (s *Session) RequestQuit() {
	if s.closed || s.Phase() == PhaseError {
		return
	}
	s.confirmQuit = true
}

// CancelQuit dismisses the exit-confirmation dialog with no state change.
func (s *Session) CancelQuit() {
	s.confirmQuit = false
}

// ConfirmQuit sends quit and closes the session. After this no command is
// dispatched and no snapshot is merged.
func (s *Session) ConfirmQuit() {
	if s.closed {
		return
	}
	if err := s.dispatcher.Quit(); err != nil {
		s.log.Error().Err(err).Msg("quit dispatch failed")
	}
	s.confirmQuit = false
	s.close()
}

// AcknowledgeError dismisses a party-level fault: the party state is
// discarded and the session closes without sending anything. The caller is
// expected to navigate back to the join flow.
func (s *Session) AcknowledgeError() {
	s.store.Reset()
	s.close()
}

// Closed reports whether the session has ended.
func (s *Session) Closed() bool {
	return s.closed
}

func (s *Session) close() {
	s.closed = true
	s.store.Reset()
}
