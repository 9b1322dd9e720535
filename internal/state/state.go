// Package state holds the observable route state shared by navigation
// bindings.
//
// A Store is a flat record of string properties. Every committed change is
// delivered synchronously to the registered observers before Set or Delete
// returns. Writes of an identical value and deletes of an absent property
// are no-ops.
package state

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrInvalidInitialState is returned by New when the initial record is
// missing or malformed.
var ErrInvalidInitialState = errors.New("state: invalid initial state")

// Value is a property value as seen by observers. The zero Value is Absent.
type Value struct {
	s  string
	ok bool
}

// Absent is the value of a property that is not in the record.
var Absent Value

// String wraps s as a present value.
func String(s string) Value { return Value{s: s, ok: true} }

func (v Value) Get() (string, bool) { return v.s, v.ok }

func (v Value) IsAbsent() bool { return !v.ok }

func (v Value) String() string {
	if !v.ok {
		return "<absent>"
	}
	return v.s
}

// Change describes one committed write.
type Change struct {
	Store    *Store
	Prop     string
	Value    Value
	Previous Value
}

type observer struct {
	id     uint64
	notify Handler
}

// Store is the observable record.
type Store struct {
	mu        sync.Mutex
	values    map[string]string
	observers []observer
	nextID    uint64
	logger    *log.Logger
}

type Option func(*Store)

// WithLogger sets the logger used to report handler faults.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store seeded with a copy of initial.
func New(initial map[string]string, opts ...Option) (*Store, error) {
	if initial == nil {
		return nil, fmt.Errorf("%w: nil record", ErrInvalidInitialState)
	}
	for k := range initial {
		if k == "" {
			return nil, fmt.Errorf("%w: empty property name", ErrInvalidInitialState)
		}
	}
	s := &Store{
		values: maps.Clone(initial),
		logger: log.Default().WithPrefix("state"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Get returns the current value of prop.
func (s *Store) Get(prop string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[prop]
	return v, ok
}

func (s *Store) Value(prop string) Value {
	v, ok := s.Get(prop)
	if !ok {
		return Absent
	}
	return String(v)
}

// Set commits value for prop and notifies observers, unless prop already
// holds exactly that value.
func (s *Store) Set(prop, value string) {
	s.mu.Lock()
	prev, had := s.values[prop]
	if had && prev == value {
		s.mu.Unlock()
		return
	}
	s.values[prop] = value
	round := s.snapshotLocked()
	s.mu.Unlock()

	previous := Absent
	if had {
		previous = String(prev)
	}
	s.deliver(round, Change{Store: s, Prop: prop, Value: String(value), Previous: previous})
}

// Delete removes prop. Removing an absent property succeeds without
// notifying anyone.
func (s *Store) Delete(prop string) bool {
	s.mu.Lock()
	prev, had := s.values[prop]
	if !had {
		s.mu.Unlock()
		return true
	}
	delete(s.values, prop)
	round := s.snapshotLocked()
	s.mu.Unlock()

	s.deliver(round, Change{Store: s, Prop: prop, Value: Absent, Previous: String(prev)})
	return true
}

// Snapshot returns a copy of the record.
func (s *Store) Snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.values)
}
