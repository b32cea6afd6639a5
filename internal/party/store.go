package party

import "github.com/MKhiriev/go-party-swipe/models"

// Store holds the latest authoritative party snapshot pushed by the server,
// plus the incremental batch observed at the previous tick. Every write is a
// full-value replace; callers must pass a complete next value.
type Store struct {
	party     models.Party
	prevBatch []models.Restaurant
}

// NewStore creates an empty Store. The zero snapshot stays in place until
// the first server push.
func NewStore() *Store {
	return &Store{}
}

// Party returns the latest snapshot.
func (s *Store) Party() models.Party {
	return s.party
}

// PreviousBatch returns the `current` batch captured at the previous
// reconciliation tick. The reconciler diffs new pushes against it.
func (s *Store) PreviousBatch() []models.Restaurant {
	return s.prevBatch
}

// Replace installs p as the new snapshot, remembering the outgoing
// snapshot's incremental batch as the previous-tick value.
func (s *Store) Replace(p models.Party) {
	s.prevBatch = s.party.Current
	s.party = p
}

// Reset discards the snapshot and the previous-tick batch. Used on exit,
// error acknowledgment, and start over of the join flow.
func (s *Store) Reset() {
	s.party = models.Party{}
	s.prevBatch = nil
}
