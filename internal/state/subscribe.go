package state

import (
	"fmt"
	"slices"
	"sync"
)

// Handler receives every change committed on a store, for any property.
type Handler func(Change)

// Cleanup undoes the work of a previous effect run. A nil Cleanup means
// there is nothing to undo.
type Cleanup func()

// Effect is run on every change; the returned Cleanup is invoked before the
// next run and once more on unsubscribe.
type Effect func(Change) Cleanup

// HandlerFault records a panic raised by a handler or a cleanup.
type HandlerFault struct {
	Prop  string
	Stage string
	Cause any
}

func (f *HandlerFault) Error() string {
	return fmt.Sprintf("state: %s fault on %q: %v", f.Stage, f.Prop, f.Cause)
}

// Unwrap exposes the panic value when it was an error.
func (f *HandlerFault) Unwrap() error {
	if err, ok := f.Cause.(error); ok {
		return err
	}
	return nil
}

// Subscribe registers h and returns a function removing it. The returned
// function may be called any number of times.
func (s *Store) Subscribe(h Handler) (unsubscribe func()) {
	if h == nil {
		panic("state: nil handler")
	}
	id := s.add(h)
	var once sync.Once
	return func() { once.Do(func() { s.remove(id) }) }
}

// SubscribeExclusive registers an effect with at most one live cleanup at a
// time. Unsubscribing removes the effect and runs the held cleanup.
func (s *Store) SubscribeExclusive(e Effect) (unsubscribe func()) {
	if e == nil {
		panic("state: nil effect")
	}
	x := &exclusive{effect: e, store: s}
	id := s.add(x.run)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.remove(id)
			x.final()
		})
	}
}

// Clear drops every observer without running cleanups and reports how many
// were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.observers)
	s.observers = nil
	return n
}

// Observers reports the number of registered observers.
func (s *Store) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Store) add(h Handler) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.observers = append(s.observers, observer{id: s.nextID, notify: h})
	return s.nextID
}

func (s *Store) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = slices.DeleteFunc(s.observers, func(o observer) bool { return o.id == id })
}

// snapshotLocked copies the observer set for one delivery round.
func (s *Store) snapshotLocked() []observer {
	if len(s.observers) == 0 {
		return nil
	}
	return slices.Clone(s.observers)
}

func (s *Store) deliver(round []observer, c Change) {
	for _, o := range round {
		s.invoke("handler", c.Prop, func() { o.notify(c) })
	}
}

// invoke runs fn, turning a panic into a logged HandlerFault.
func (s *Store) invoke(stage, prop string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fault := &HandlerFault{Prop: prop, Stage: stage, Cause: r}
			s.logger.Error("observer failed", "prop", prop, "stage", stage, "err", fault)
			ok = false
		}
	}()
	fn()
	return true
}

type exclusive struct {
	mu      sync.Mutex
	effect  Effect
	cleanup Cleanup
	closed  bool
	store   *Store
}

func (x *exclusive) take() Cleanup {
	x.mu.Lock()
	defer x.mu.Unlock()
	c := x.cleanup
	x.cleanup = nil
	return c
}

func (x *exclusive) run(c Change) {
	if prev := x.take(); prev != nil {
		x.store.invoke("cleanup", c.Prop, prev)
	}
	var next Cleanup
	if !x.store.invoke("effect", c.Prop, func() { next = x.effect(c) }) {
		return
	}
	x.mu.Lock()
	if x.closed {
		// Unsubscribed while this round was in flight.
		x.mu.Unlock()
		if next != nil {
			x.store.invoke("final cleanup", c.Prop, next)
		}
		return
	}
	x.cleanup = next
	x.mu.Unlock()
}

func (x *exclusive) final() {
	x.mu.Lock()
	x.closed = true
	x.mu.Unlock()
	if prev := x.take(); prev != nil {
		x.store.invoke("final cleanup", "", prev)
	}
}
