package dom

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrInvalidTag     = errors.New("dom: invalid custom element name")
	ErrAlreadyDefined = errors.New("dom: element already defined")
	ErrUnknownTag     = errors.New("dom: element not defined")
)

// Constructor builds a fresh element. It takes no arguments; the element
// initializes itself once connected.
type Constructor func() *Element

// Registry maps custom element names to constructors.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Define registers ctor under tag. Names are lowercase and contain a hyphen.
func (r *Registry) Define(tag string, ctor Constructor) error {
	if !validName(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	if ctor == nil {
		return fmt.Errorf("dom: nil constructor for %q", tag)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[tag]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyDefined, tag)
	}
	r.ctors[tag] = ctor
	return nil
}

func (r *Registry) Defined(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[tag]
	return ok
}

// Create builds one element for tag.
func (r *Registry) Create(tag string) (*Element, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[tag]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	el := ctor()
	if el == nil {
		return nil, fmt.Errorf("dom: constructor for %q returned nil", tag)
	}
	el.Tag = tag
	return el, nil
}

func validName(tag string) bool {
	if tag == "" || tag != strings.ToLower(tag) || !strings.Contains(tag, "-") {
		return false
	}
	if tag[0] < 'a' || tag[0] > 'z' {
		return false
	}
	return !strings.ContainsAny(tag, " \t\n<>/\"'=")
}
