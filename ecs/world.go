package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option configures a World at construction time.
type Option func(*World)

// WithLogger injects a logger for mutation and lifecycle events. Worlds log
// nowhere by default.
func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		w.log = log
	}
}

// World is the facade composing identity allocation, component storage, and
// system scheduling behind one API. Systems receive it as context on every
// hook call and use it to read and write components; they never hold a
// back-reference of their own.
//
// A World is single-threaded: one Init/Update/Render call drives all systems
// to completion before returning.
type World struct {
	id       string
	log      *zap.Logger
	table    *EntityTable
	registry *Registry
	sched    *Scheduler
	events   *EventBus
	named    map[string]EntityID
	self     EntityID
	deferred []func(*World)
}

// NewWorld creates a World and its sentinel self-entity, which hosts
// world-global components (see AddWorldComponent). The self-entity is created
// before anything else, so it always receives the first identity.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:       uuid.NewString(),
		log:      zap.NewNop(),
		table:    NewEntityTable(),
		registry: NewRegistry(),
		sched:    NewScheduler(),
		events:   NewEventBus(),
		named:    make(map[string]EntityID),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With(zap.String("world_id", w.id))
	w.self = w.table.Create()
	w.log.Info("world created", zap.Uint32("self_entity", uint32(w.self)))
	return w
}

// ID returns the world's instance identifier, useful for telling concurrent
// worlds apart in logs.
func (w *World) ID() string {
	return w.id
}

// Self returns the identity of the world's sentinel entity.
func (w *World) Self() EntityID {
	return w.self
}

// CreateEntity allocates a fresh entity with no components.
func (w *World) CreateEntity() EntityID {
	id := w.table.Create()
	w.log.Debug("entity created", zap.Uint32("entity", uint32(id)))
	return id
}

// CreateEntityWith creates an entity and then runs init with the entity
// already registered, so setup such as auto-attaching components sees a live
// identity. If init fails the entity is destroyed again and the error
// returned; nothing of the partial setup survives.
func (w *World) CreateEntityWith(init func(w *World, id EntityID) error) (EntityID, error) {
	id := w.CreateEntity()
	if err := init(w, id); err != nil {
		// Best effort rollback; the entity was live a moment ago.
		_ = w.table.Destroy(id, w.registry)
		return 0, fmt.Errorf("ecs: initialize entity %d: %w", id, err)
	}
	return id, nil
}

// DestroyEntity removes id's components from every store, erases the entity,
// and recycles its identity. Destroying an identity that is not live returns
// ErrInvalidOperation.
func (w *World) DestroyEntity(id EntityID) error {
	if err := w.table.Destroy(id, w.registry); err != nil {
		return err
	}
	w.log.Debug("entity destroyed", zap.Uint32("entity", uint32(id)))
	return nil
}

// Alive reports whether id currently names a live entity.
func (w *World) Alive(id EntityID) bool {
	return w.table.Live(id)
}

// EntityCount returns the number of live entities, including the self-entity.
func (w *World) EntityCount() int {
	return w.table.Len()
}

// SetNamedEntity records a name for a singleton entity so call-sites can find
// it without threading the identity around. The entity must be live.
func (w *World) SetNamedEntity(name string, id EntityID) error {
	if !w.table.Live(id) {
		return fmt.Errorf("ecs: name entity %d %q: not live: %w", id, name, ErrInvalidOperation)
	}
	w.named[name] = id
	return nil
}

// NamedEntity returns the identity registered under name, or ErrNotFound.
func (w *World) NamedEntity(name string) (EntityID, error) {
	id, ok := w.named[name]
	if !ok {
		return 0, fmt.Errorf("ecs: named entity %q: %w", name, ErrNotFound)
	}
	return id, nil
}

// RegisterSystem classifies sys into the logic or render roster, invokes its
// Init hook immediately, and appends it. Systems cannot be unregistered.
func (w *World) RegisterSystem(sys System) {
	if sys == nil {
		panic("ecs: RegisterSystem called with nil system")
	}
	w.sched.Register(w, sys)
	w.log.Info("system registered", zap.String("system", fmt.Sprintf("%T", sys)))
}

// Init sweeps every registered system's Init hook, logic roster first, in
// registration order. Call once at startup after all systems are registered.
func (w *World) Init() {
	w.sched.Init(w)
	w.flushDeferred()
}

// Update sweeps every logic system's Update hook in registration order, then
// flushes deferred work.
func (w *World) Update(dt float64) {
	w.sched.Update(w, dt)
	w.flushDeferred()
}

// Render sweeps every render system's Render hook in registration order, then
// flushes deferred work.
func (w *World) Render() {
	w.sched.Render(w)
	w.flushDeferred()
}

// Run drives Update and Render once per tick until ctx is cancelled. The
// delta passed to Update is wall-clock seconds since the previous tick.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			w.Update(dt)
			w.Render()
		}
	}
}

// Defer queues fn to run after the current sweep completes. Systems that
// would rather not rely on snapshot-skip semantics can stage structural
// changes here. Work deferred during a flush runs after the next sweep, not
// recursively.
func (w *World) Defer(fn func(w *World)) {
	w.deferred = append(w.deferred, fn)
}

// Stats returns execution statistics for every registered system.
func (w *World) Stats() *SchedulerStats {
	return w.sched.Stats()
}

func (w *World) flushDeferred() {
	if len(w.deferred) == 0 {
		return
	}
	// Anything enqueued by the flush itself waits for the next sweep.
	queue := w.deferred
	w.deferred = nil
	for _, fn := range queue {
		fn(w)
	}
}

// AddComponent attaches value to the live entity id. Each entity holds at
// most one component per type; a second Add of the same type returns
// ErrDuplicateComponent. The new component is pending until the next
// Promote[T].
func AddComponent[T any](w *World, id EntityID, value T) error {
	if !w.table.Live(id) {
		return fmt.Errorf("ecs: add component %s to entity %d: %w",
			reflect.TypeFor[T]().String(), id, ErrNotFound)
	}
	if err := StoreFor[T](w.registry).Add(id, value); err != nil {
		return err
	}
	w.log.Debug("component attached",
		zap.Uint32("entity", uint32(id)),
		zap.String("component", reflect.TypeFor[T]().String()))
	return nil
}

// AddWorldComponent attaches value to the world's self-entity, making it a
// world-global singleton component.
func AddWorldComponent[T any](w *World, value T) error {
	return AddComponent(w, w.self, value)
}

// GetComponent returns a pointer to id's component of type T, or ErrNotFound.
// The pointer stays valid until the next structural change on T's store.
func GetComponent[T any](w *World, id EntityID) (*T, error) {
	return StoreFor[T](w.registry).Get(id)
}

// GetWorldComponent returns the self-entity's component of type T.
func GetWorldComponent[T any](w *World) (*T, error) {
	return GetComponent[T](w, w.self)
}

// HasComponent reports whether id currently holds a component of type T.
func HasComponent[T any](w *World, id EntityID) bool {
	return StoreFor[T](w.registry).Has(id)
}

// QueryActive returns a snapshot of the identities whose T has been promoted.
func QueryActive[T any](w *World) []EntityID {
	return StoreFor[T](w.registry).Active()
}

// QueryPending returns a snapshot of the identities whose T was attached
// since the last Promote[T].
func QueryPending[T any](w *World) []EntityID {
	return StoreFor[T](w.registry).Pending()
}

// Promote moves every pending T into the active partition. Initialization
// systems call this after consuming QueryPending.
func Promote[T any](w *World) {
	StoreFor[T](w.registry).Promote()
	w.log.Debug("components promoted",
		zap.String("component", reflect.TypeFor[T]().String()))
}
