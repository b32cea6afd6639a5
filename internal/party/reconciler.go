package party

import "github.com/MKhiriev/go-party-swipe/models"

// MergeResult describes what a single snapshot application did to the queue.
type MergeResult struct {
	// Seeded is true when this push provided the queue's initial card set.
	Seeded bool

	// Appended is the number of new cards merged from the push's
	// incremental batch.
	Appended int
}

// Reconciler merges server pushes into the local queue exactly once each.
//
// A push's incremental batch is appended only when it differs from the batch
// captured at the previous tick. The comparison runs over the batch's
// restaurant id sequence, not the whole snapshot, so an unrelated field
// change (total, members) re-sent alongside an unchanged batch is a no-op
// merge, and a changed batch is never missed because the rest of the
// snapshot happened to stay equal.
type Reconciler struct {
	store *Store
	queue *Queue
}

// NewReconciler wires a reconciler over the given store and queue.
func NewReconciler(store *Store, queue *Queue) *Reconciler {
	return &Reconciler{store: store, queue: queue}
}

// Apply installs p as the authoritative snapshot and merges its cards into
// the queue. The first push carrying restaurants seeds the queue; every
// later push may append a genuinely new incremental batch.
func (r *Reconciler) Apply(p models.Party) MergeResult {
	prev := r.store.Party().Current
	r.store.Replace(p)

	var res MergeResult
	if !r.queue.Seeded() {
		if len(p.Restaurants) > 0 {
			r.queue.Seed(p.Restaurants)
			res.Seeded = true
		}
		return res
	}

	if len(p.Current) > 0 && !models.BatchEqual(p.Current, prev) {
		res.Appended = r.queue.Append(p.Current)
	}
	return res
}
