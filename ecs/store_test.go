package ecs_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddGet(t *testing.T) {
	store := ecs.NewStore[Position]()

	err := store.Add(7, Position{X: 1.5, Y: 2.5})
	require.NoError(t, err)

	got, err := store.Get(7)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 1.5, Y: 2.5}, *got)
	assert.Equal(t, 1, store.Len())
}

func TestStoreDuplicateAdd(t *testing.T) {
	store := ecs.NewStore[Position]()

	require.NoError(t, store.Add(3, Position{X: 1, Y: 1}))
	err := store.Add(3, Position{X: 2, Y: 2})
	assert.ErrorIs(t, err, ecs.ErrDuplicateComponent)

	// Failed add leaves the store untouched
	got, err := store.Get(3)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 1, Y: 1}, *got)
	assert.Equal(t, 1, store.Len())
}

func TestStoreGetMissing(t *testing.T) {
	store := ecs.NewStore[Position]()

	_, err := store.Get(42)
	assert.ErrorIs(t, err, ecs.ErrNotFound)
}

func TestStorePendingUntilPromote(t *testing.T) {
	store := ecs.NewStore[Position]()

	require.NoError(t, store.Add(1, Position{X: 1, Y: 0}))
	require.NoError(t, store.Add(2, Position{X: 2, Y: 0}))

	assert.Equal(t, []ecs.EntityID{1, 2}, store.Pending())
	assert.Empty(t, store.Active())

	store.Promote()

	assert.Empty(t, store.Pending())
	assert.Equal(t, []ecs.EntityID{1, 2}, store.Active())
}

// Promoting twice in a row yields the same partition as promoting once.
func TestStorePromoteIdempotent(t *testing.T) {
	store := ecs.NewStore[Score]()

	require.NoError(t, store.Add(5, Score(10)))
	store.Promote()

	active, pending := store.Active(), store.Pending()
	store.Promote()

	assert.Equal(t, active, store.Active())
	assert.Equal(t, pending, store.Pending())
}

func TestStorePromoteEmpty(t *testing.T) {
	store := ecs.NewStore[Score]()
	store.Promote()
	assert.Empty(t, store.Active())
	assert.Empty(t, store.Pending())
}

// Removing a middle slot compacts the dense slice: survivors before the hole
// keep their values, survivors after it shift down, and the removed identity
// resolves to nothing.
func TestStoreRemoveCompacts(t *testing.T) {
	store := ecs.NewStore[Position]()

	require.NoError(t, store.Add(1, Position{X: 1, Y: 0}))
	require.NoError(t, store.Add(2, Position{X: 2, Y: 0}))
	require.NoError(t, store.Add(3, Position{X: 3, Y: 0}))

	require.NoError(t, store.Remove(2))

	got1, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, float32(1), got1.X)

	got3, err := store.Get(3)
	require.NoError(t, err)
	assert.Equal(t, float32(3), got3.X)

	_, err = store.Get(2)
	assert.ErrorIs(t, err, ecs.ErrNotFound)

	assert.Equal(t, 2, store.Len())
}

func TestStoreRemoveMissing(t *testing.T) {
	store := ecs.NewStore[Position]()

	err := store.Remove(9)
	assert.ErrorIs(t, err, ecs.ErrNotFound)
}

// Remove scrubs the identity from both partitions, whether promoted or not.
func TestStoreRemoveScrubsSets(t *testing.T) {
	store := ecs.NewStore[Position]()

	require.NoError(t, store.Add(1, Position{}))
	store.Promote()
	require.NoError(t, store.Add(2, Position{}))

	require.NoError(t, store.Remove(1))
	require.NoError(t, store.Remove(2))

	assert.Empty(t, store.Active())
	assert.Empty(t, store.Pending())
}

// After any sequence of adds and removes, every surviving identity still
// resolves to its own value and the store size matches the survivor count.
func TestStoreIndexConsistency(t *testing.T) {
	store := ecs.NewStore[Score]()
	model := make(map[ecs.EntityID]Score)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		id := ecs.EntityID(rng.Intn(200))
		if _, held := model[id]; !held {
			v := Score(rng.Int31())
			require.NoError(t, store.Add(id, v))
			model[id] = v
		} else if rng.Intn(2) == 0 {
			require.NoError(t, store.Remove(id))
			delete(model, id)
		}
	}

	assert.Equal(t, len(model), store.Len())
	for id, want := range model {
		got, err := store.Get(id)
		require.NoError(t, err, "id %d", id)
		assert.Equal(t, want, *got, "id %d", id)
	}
}

// Query results are snapshots: mutating the store while ranging over one must
// not fault, and entries removed mid-iteration just stop resolving.
func TestStoreSnapshotIteration(t *testing.T) {
	store := ecs.NewStore[Position]()
	for i := 0; i < 10; i++ {
		require.NoError(t, store.Add(ecs.EntityID(i), Position{X: float32(i)}))
	}
	store.Promote()

	seen := 0
	for _, id := range store.Active() {
		if id == 3 {
			require.NoError(t, store.Remove(5))
		}
		if _, err := store.Get(id); err != nil {
			continue // removed mid-iteration, skip not fault
		}
		seen++
	}

	assert.Equal(t, 9, seen)
	assert.Equal(t, 9, store.Len())
}

func TestStoreValuesSurviveGrowth(t *testing.T) {
	store := ecs.NewStore[Name]()

	const n = 300 // push past the initial capacity
	for i := 0; i < n; i++ {
		require.NoError(t, store.Add(ecs.EntityID(i), Name{Value: fmt.Sprintf("e%d", i)}))
	}

	for i := 0; i < n; i++ {
		got, err := store.Get(ecs.EntityID(i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("e%d", i), got.Value)
	}
}
