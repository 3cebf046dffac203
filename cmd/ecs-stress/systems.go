package main

import (
	"math/rand"

	"github.com/plus3/worldkit/ecs"
)

// Stress components
type Position struct {
	X, Y float64
}

type Velocity struct {
	DX, DY float64
}

type Health struct {
	Current int
	Max     int
}

// WorldClock is a world-global singleton tracking simulated time and frames.
type WorldClock struct {
	Elapsed float64
	Frames  int
}

type entityExpired struct {
	Entity ecs.EntityID
}

func spawnEntity(w *ecs.World, rng *rand.Rand) (ecs.EntityID, error) {
	return w.CreateEntityWith(func(w *ecs.World, id ecs.EntityID) error {
		if err := ecs.AddComponent(w, id, Position{X: rng.Float64() * 100, Y: rng.Float64() * 100}); err != nil {
			return err
		}
		if err := ecs.AddComponent(w, id, Velocity{DX: rng.Float64() - 0.5, DY: rng.Float64() - 0.5}); err != nil {
			return err
		}
		return ecs.AddComponent(w, id, Health{Current: 100, Max: 100})
	})
}

// PromoteSystem drains the pending partitions each tick so everything spawned
// in the previous tick becomes visible to the steady-state systems.
type PromoteSystem struct{}

func (s *PromoteSystem) Init(w *ecs.World) {}

func (s *PromoteSystem) Update(w *ecs.World, dt float64) {
	ecs.Promote[Position](w)
	ecs.Promote[Velocity](w)
	ecs.Promote[Health](w)
}

// MovementSystem integrates velocities over positions.
type MovementSystem struct{}

func (s *MovementSystem) Init(w *ecs.World) {}

func (s *MovementSystem) Update(w *ecs.World, dt float64) {
	for _, id := range ecs.QueryActive[Position](w) {
		pos, err := ecs.GetComponent[Position](w, id)
		if err != nil {
			continue
		}
		vel, err := ecs.GetComponent[Velocity](w, id)
		if err != nil {
			continue
		}
		pos.X += vel.DX * dt
		pos.Y += vel.DY * dt
	}
}

// DecaySystem wears entities down and publishes an expiry event for each one
// that hits zero health. Destruction is deferred to end of sweep.
type DecaySystem struct {
	rng *rand.Rand
}

func (s *DecaySystem) Init(w *ecs.World) {}

func (s *DecaySystem) Update(w *ecs.World, dt float64) {
	for _, id := range ecs.QueryActive[Health](w) {
		hp, err := ecs.GetComponent[Health](w, id)
		if err != nil {
			continue
		}
		hp.Current -= s.rng.Intn(3)
		if hp.Current <= 0 {
			ecs.Publish(w, entityExpired{Entity: id})
			expired := id
			w.Defer(func(w *ecs.World) {
				if w.Alive(expired) {
					_ = w.DestroyEntity(expired)
				}
			})
		}
	}
}

// ChurnSystem destroys a random slice of the population and respawns as many,
// keeping the identity allocator's recycle path hot.
type ChurnSystem struct {
	rng  *rand.Rand
	rate float64
}

func (s *ChurnSystem) Init(w *ecs.World) {}

func (s *ChurnSystem) Update(w *ecs.World, dt float64) {
	active := ecs.QueryActive[Position](w)
	churn := int(float64(len(active)) * s.rate)
	for i := 0; i < churn && len(active) > 0; i++ {
		victim := active[s.rng.Intn(len(active))]
		if victim == w.Self() || !w.Alive(victim) {
			continue
		}
		_ = w.DestroyEntity(victim)
		_, _ = spawnEntity(w, s.rng)
	}
}

// ClockSystem accrues simulated time on the world clock singleton.
type ClockSystem struct{}

func (s *ClockSystem) Init(w *ecs.World) {
	if _, err := ecs.GetWorldComponent[WorldClock](w); err != nil {
		_ = ecs.AddWorldComponent(w, WorldClock{})
		ecs.Promote[WorldClock](w)
	}
}

func (s *ClockSystem) Update(w *ecs.World, dt float64) {
	if clock, err := ecs.GetWorldComponent[WorldClock](w); err == nil {
		clock.Elapsed += dt
	}
}

// FrameCounterSystem stands in for a draw pass: its render hook only counts
// frames.
type FrameCounterSystem struct{}

func (s *FrameCounterSystem) Init(w *ecs.World)               {}
func (s *FrameCounterSystem) Update(w *ecs.World, dt float64) {}

func (s *FrameCounterSystem) Render(w *ecs.World) {
	if clock, err := ecs.GetWorldComponent[WorldClock](w); err == nil {
		clock.Frames++
	}
}
