package ecs_test

import (
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreForLazyCreation(t *testing.T) {
	registry := ecs.NewRegistry()
	assert.Equal(t, 0, registry.TypeCount())

	positions := ecs.StoreFor[Position](registry)
	require.NotNil(t, positions)
	assert.Equal(t, 1, registry.TypeCount())

	// Same type resolves to the same store instance
	assert.Same(t, positions, ecs.StoreFor[Position](registry))
	assert.Equal(t, 1, registry.TypeCount())

	// A different type gets its own store
	velocities := ecs.StoreFor[Velocity](registry)
	require.NotNil(t, velocities)
	assert.Equal(t, 2, registry.TypeCount())
}

// Two registries must not share stores even for the same component type.
func TestRegistriesAreIndependent(t *testing.T) {
	a := ecs.NewRegistry()
	b := ecs.NewRegistry()

	require.NoError(t, ecs.StoreFor[Position](a).Add(1, Position{X: 1}))

	_, err := ecs.StoreFor[Position](b).Get(1)
	assert.ErrorIs(t, err, ecs.ErrNotFound)
}

// Fan-out removal treats stores that never held the identity as no-ops.
func TestRemoveEntityFanOut(t *testing.T) {
	registry := ecs.NewRegistry()

	require.NoError(t, ecs.StoreFor[Position](registry).Add(1, Position{X: 1}))
	require.NoError(t, ecs.StoreFor[Velocity](registry).Add(1, Velocity{DX: 1}))
	require.NoError(t, ecs.StoreFor[Health](registry).Add(2, Health{Current: 10, Max: 10}))

	removed := registry.RemoveEntity(1)
	assert.Equal(t, 2, removed)

	assert.False(t, ecs.StoreFor[Position](registry).Has(1))
	assert.False(t, ecs.StoreFor[Velocity](registry).Has(1))
	assert.True(t, ecs.StoreFor[Health](registry).Has(2))
}

func TestRemoveEntityNeverHeld(t *testing.T) {
	registry := ecs.NewRegistry()
	ecs.StoreFor[Position](registry)
	ecs.StoreFor[Velocity](registry)

	// Identity 99 never held anything anywhere; the fan-out must not fail.
	assert.Equal(t, 0, registry.RemoveEntity(99))
}
