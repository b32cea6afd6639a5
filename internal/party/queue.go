package party

import "github.com/MKhiriev/go-party-swipe/models"

// Queue is the client-owned consumption buffer of swipeable restaurants.
//
// Invariants: a restaurant id appears at most once, ids keep first-seen
// order, and cards are never removed or reordered. Consumption advances a
// cursor instead of mutating the backing slice.
type Queue struct {
	cards  []models.Restaurant
	seen   map[string]struct{}
	cursor int
	seeded bool
}

// NewQueue creates an empty, unseeded queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Seeded reports whether the queue has received its initial card set.
func (q *Queue) Seeded() bool {
	return q.seeded
}

// Seed installs the initial card set. It is a no-op after the first call;
// seeding happens once, outside the batch reconciliation diff.
func (q *Queue) Seed(cards []models.Restaurant) {
	if q.seeded {
		return
	}
	q.seeded = true
	q.appendUnique(cards)
}

// Append merges a new batch onto the end of the queue, skipping ids already
// present. Returns the number of cards actually appended.
func (q *Queue) Append(batch []models.Restaurant) int {
	if !q.seeded {
		return 0
	}
	return q.appendUnique(batch)
}

// Current returns the card under the cursor, if any.
func (q *Queue) Current() (models.Restaurant, bool) {
	if q.cursor >= len(q.cards) {
		return models.Restaurant{}, false
	}
	return q.cards[q.cursor], true
}

// Peek returns the card at offset positions past the cursor, if any.
func (q *Queue) Peek(offset int) (models.Restaurant, bool) {
	i := q.cursor + offset
	if i < 0 || i >= len(q.cards) {
		return models.Restaurant{}, false
	}
	return q.cards[i], true
}

// Advance consumes the card under the cursor. Reports whether a card was
// actually consumed.
func (q *Queue) Advance() bool {
	if q.cursor >= len(q.cards) {
		return false
	}
	q.cursor++
	return true
}

// Remaining returns the number of cards still consumable.
func (q *Queue) Remaining() int {
	return len(q.cards) - q.cursor
}

// Len returns the total number of cards ever appended.
func (q *Queue) Len() int {
	return len(q.cards)
}

// Reset rebuilds the queue from cards and rewinds the cursor. Used by the
// start-over action, which deliberately reuses already-delivered data
// instead of fetching a fresh catalog.
func (q *Queue) Reset(cards []models.Restaurant) {
	q.cards = nil
	q.seen = make(map[string]struct{})
	q.cursor = 0
	q.seeded = true
	q.appendUnique(cards)
}

func (q *Queue) appendUnique(batch []models.Restaurant) int {
	appended := 0
	for _, r := range batch {
		if _, dup := q.seen[r.ID]; dup {
			continue
		}
		q.seen[r.ID] = struct{}{}
		q.cards = append(q.cards, r)
		appended++
	}
	return appended
}
