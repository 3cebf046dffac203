package ecs

// System is a behavioral unit driven by the scheduler. Implementations are
// stateless by convention; any state they do carry persists between sweeps.
// Hooks receive the World as context rather than holding a back-reference.
type System interface {
	// Init runs once when the system is registered, and again on every
	// World.Init sweep.
	Init(w *World)

	// Update runs once per World.Update sweep, in registration order.
	Update(w *World, dt float64)
}

// RenderSystem is a System that additionally draws. Whether a system lands in
// the logic or render roster is decided at registration time by whether it
// satisfies this interface.
type RenderSystem interface {
	System

	// Render runs once per World.Render sweep, in registration order.
	Render(w *World)
}
