// SPDX-License-Identifier: Apache-2.0

package party

import (
	"testing"

	"github.com/MKhiriev/go-party-swipe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReconcilerUnderTest() (*Reconciler, *Store, *Queue) {
	store := NewStore()
	queue := NewQueue()
	return NewReconciler(store, queue), store, queue
}

func TestReconciler_FirstPushSeedsFromRestaurants(t *testing.T) {
	r, store, queue := newReconcilerUnderTest()

	res := r.Apply(models.Party{
		ID:          "AB12",
		Status:      models.StatusActive,
		Restaurants: rst("r1", "r2", "r3"),
		Total:       3,
	})

	assert.True(t, res.Seeded)
	assert.Zero(t, res.Appended)
	assert.Equal(t, 3, queue.Remaining())
	assert.Equal(t, "AB12", store.Party().ID)
}

func TestReconciler_WaitingPushDoesNotSeed(t *testing.T) {
	r, store, queue := newReconcilerUnderTest()

	res := r.Apply(models.Party{ID: "AB12", Status: models.StatusWaiting})

	assert.False(t, res.Seeded)
	assert.False(t, queue.Seeded())
	assert.Equal(t, models.StatusWaiting, store.Party().Status)
}

func TestReconciler_CurrentBatchIgnoredBeforeSeed(t *testing.T) {
	r, _, queue := newReconcilerUnderTest()

	// a push carrying only an incremental batch must not create the queue
	res := r.Apply(models.Party{ID: "AB12", Current: rst("r1")})

	assert.False(t, res.Seeded)
	assert.Zero(t, res.Appended)
	assert.False(t, queue.Seeded())
}

func TestReconciler_NewBatchAppendsOnce(t *testing.T) {
	r, _, queue := newReconcilerUnderTest()
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Restaurants: rst("r1", "r2"), Total: 2})

	res := r.Apply(models.Party{
		ID:      "AB12",
		Status:  models.StatusActive,
		Current: rst("r3", "r4"),
		Total:   4,
	})

	require.Equal(t, 2, res.Appended)
	assert.Equal(t, 4, queue.Remaining())
}

func TestReconciler_RedundantPushIsNoOp(t *testing.T) {
	r, _, queue := newReconcilerUnderTest()
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Restaurants: rst("r1", "r2"), Total: 2})

	batch := models.Party{ID: "AB12", Status: models.StatusActive, Current: rst("r3"), Total: 3}
	first := r.Apply(batch)
	second := r.Apply(batch)

	assert.Equal(t, 1, first.Appended)
	assert.Zero(t, second.Appended, "re-sending the same batch must not re-append")
	assert.Equal(t, 3, queue.Remaining())
}

func TestReconciler_UnrelatedFieldChangeWithSameBatch(t *testing.T) {
	r, store, queue := newReconcilerUnderTest()
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Restaurants: rst("r1"), Total: 1})
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Current: rst("r2"), Total: 2})

	// same batch, different total: batch content decides, so no re-append
	res := r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Current: rst("r2"), Total: 9})

	assert.Zero(t, res.Appended)
	assert.Equal(t, 2, queue.Remaining())
	assert.Equal(t, 9, store.Party().Total)
}

func TestReconciler_ChangedBatchWithOverlapDeduplicates(t *testing.T) {
	r, _, queue := newReconcilerUnderTest()
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Restaurants: rst("r1"), Total: 1})
	r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Current: rst("r2", "r3"), Total: 3})

	// overlapping next batch: only the genuinely new id lands
	res := r.Apply(models.Party{ID: "AB12", Status: models.StatusActive, Current: rst("r3", "r4"), Total: 4})

	assert.Equal(t, 1, res.Appended)
	assert.Equal(t, 4, queue.Remaining())
}

func TestReconciler_IDsAppearOnceInFirstSeenOrder(t *testing.T) {
	r, _, queue := newReconcilerUnderTest()

	pushes := []models.Party{
		{ID: "P", Status: models.StatusActive, Restaurants: rst("r1", "r2", "r3"), Total: 3},
		{ID: "P", Status: models.StatusActive, Current: rst("r4", "r2"), Total: 4},
		{ID: "P", Status: models.StatusActive, Current: rst("r4", "r2"), Total: 4},
		{ID: "P", Status: models.StatusActive, Current: rst("r5", "r1", "r6"), Total: 6},
	}
	for _, p := range pushes {
		r.Apply(p)
	}

	assert.Equal(t, []string{"r1", "r2", "r3", "r4", "r5", "r6"}, ids(queue.cards))
}

func TestStore_ReplaceTracksPreviousBatch(t *testing.T) {
	s := NewStore()

	s.Replace(models.Party{ID: "P", Current: rst("r1")})
	assert.Nil(t, s.PreviousBatch())

	s.Replace(models.Party{ID: "P", Current: rst("r2")})
	assert.Equal(t, []string{"r1"}, ids(s.PreviousBatch()))

	s.Reset()
	assert.True(t, s.Party().IsZero())
	assert.Nil(t, s.PreviousBatch())
}
