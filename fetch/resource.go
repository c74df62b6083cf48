// Package fetch tracks the lifecycle of data loaded from the backend. A
// Resource holds one remote value together with its load state, and a Guard
// keeps double-submitted mutations from racing each other.
package fetch

import (
	"context"
	"errors"
	"sync"
)

// Status is the lifecycle state of a Resource
type Status int

const (
	// StatusIdle means the resource was never loaded
	StatusIdle Status = iota
	// StatusLoading means a load is in flight and no earlier value exists
	StatusLoading
	// StatusReady means the value is current
	StatusReady
	// StatusFailed means the last load errored and no value is usable
	StatusFailed
)

// String returns a human-readable status name
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrStale is returned by Load when a newer load or local write superseded
// the fetch while it was in flight. The fetched value was discarded.
var ErrStale = errors.New("fetch: result superseded")

// Resource holds one remotely loaded value of type T. Every load bumps a
// generation counter and a finishing fetch only lands if its generation is
// still current, so a slow response can never overwrite a newer one.
type Resource[T any] struct {
	mu         sync.Mutex
	status     Status
	value      T
	err        error
	generation uint64

	emptyOn func(error) bool
}

// NewResource creates an idle resource
func NewResource[T any]() *Resource[T] {
	return &Resource[T]{}
}

// ResolveEmptyOn makes errors matching the predicate resolve to the zero
// value in StatusReady instead of StatusFailed. Backends that answer 404 for
// "no rows yet" are handled this way.
func (r *Resource[T]) ResolveEmptyOn(predicate func(error) bool) *Resource[T] {
	r.mu.Lock()
	r.emptyOn = predicate
	r.mu.Unlock()
	return r
}

// Load runs fn and stores its result. If another Load or Set lands while fn
// is running, the result is discarded and ErrStale is returned; the caller's
// view stays whatever superseded it.
func (r *Resource[T]) Load(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	if r.status == StatusIdle || r.status == StatusFailed {
		r.status = StatusLoading
	}
	r.mu.Unlock()

	value, err := fn(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.generation != gen {
		var zero T
		return zero, ErrStale
	}

	if err != nil {
		if r.emptyOn != nil && r.emptyOn(err) {
			var zero T
			r.value = zero
			r.status = StatusReady
			r.err = nil
			return zero, nil
		}
		r.status = StatusFailed
		r.err = err
		var zero T
		return zero, err
	}

	r.value = value
	r.status = StatusReady
	r.err = nil
	return value, nil
}

// Set writes a locally computed value, marking the resource ready and
// superseding any load in flight. Used when a mutation response already
// carries the fresh value.
func (r *Resource[T]) Set(value T) {
	r.mu.Lock()
	r.generation++
	r.value = value
	r.status = StatusReady
	r.err = nil
	r.mu.Unlock()
}

// Update applies fn to the current value in place, superseding any load in
// flight. It is a no-op unless the resource is ready.
func (r *Resource[T]) Update(fn func(T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusReady {
		return
	}
	r.generation++
	r.value = fn(r.value)
}

// Get returns the current value and status
func (r *Resource[T]) Get() (T, Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value, r.status
}

// Err returns the error from the last failed load
func (r *Resource[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Reset returns the resource to idle, superseding any load in flight
func (r *Resource[T]) Reset() {
	r.mu.Lock()
	r.generation++
	var zero T
	r.value = zero
	r.status = StatusIdle
	r.err = nil
	r.mu.Unlock()
}
