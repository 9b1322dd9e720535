// Package view resolves route keys to elements, loading the defining
// module on first use.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jask/almacen/internal/dom"
)

var (
	ErrUnresolvedViewKey = errors.New("view not defined")
	ErrViewLoadFailure   = errors.New("failed to load section")
	ErrModuleNotFound    = errors.New("module not found")
)

const (
	// ErrorClass marks inline error units.
	ErrorClass = "error-visor"
	// LoadFailedMessage is shown when a module or element fails to build.
	LoadFailedMessage = "failed to load section."
)

// LoadError is a failed load or construction for one route key.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("view %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrViewLoadFailure, e.Err} }

// ErrorUnit builds the inline element shown in place of a view.
func ErrorUnit(msg string) *dom.Element {
	return dom.NewText("p", msg).AddClass(ErrorClass)
}

// Resolver mounts the element for a route key into a content region.
//
// The module load runs through Go, and the mount is handed back through
// Post; a UI loop sets Post so that every tree mutation happens on its own
// goroutine. With neither set, Resolve runs to completion on the calling
// goroutine.
type Resolver struct {
	Registry *dom.Registry
	Loader   Loader
	Logger   *log.Logger

	// Go starts the load step. Defaults to a new goroutine when Post is
	// set and to calling it in place otherwise.
	Go func(func())
	// Post runs the mount step. Defaults to calling it in place.
	Post func(func())
}

func NewResolver(reg *dom.Registry, loader Loader, logger *log.Logger) *Resolver {
	return &Resolver{Registry: reg, Loader: loader, Logger: logger}
}

// Resolve replaces the children of content with the view for key. Failures
// are rendered inline and logged; nothing is returned to the caller. A
// resolution whose ctx is done before its module finishes loading is
// dropped.
func (r *Resolver) Resolve(ctx context.Context, key string, content *dom.Element, views Collection) {
	if content == nil {
		return
	}
	entry, ok := views[key]
	if !ok || entry.Tag == "" {
		msg := fmt.Sprintf("view %q is not defined", key)
		if s, ok := views.Suggest(key); ok && s != key {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		r.logger().Warn("unresolved view key", "key", key, "err", ErrUnresolvedViewKey)
		inject(content, msg)
		return
	}
	if entry.Module == "" || r.Loader == nil {
		r.mount(key, entry, content)
		return
	}

	r.spawn(func() {
		err := r.load(ctx, entry.Module)
		r.post(func() {
			if ctx.Err() != nil {
				r.logger().Debug("stale resolution dropped", "key", key)
				return
			}
			if err != nil {
				r.fail(key, content, err)
				return
			}
			r.mount(key, entry, content)
		})
	})
}

func (r *Resolver) load(ctx context.Context, module string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("module %q panicked: %v", module, p)
		}
	}()
	return r.Loader.Load(ctx, module)
}

func (r *Resolver) mount(key string, entry Entry, content *dom.Element) {
	el, err := r.create(entry.Tag)
	if err != nil {
		r.fail(key, content, err)
		return
	}
	if err := attach(content, el); err != nil {
		r.fail(key, content, err)
	}
}

// attach mounts el, reporting a panic from its connect hook as an error.
func attach(content, el *dom.Element) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("connect %q: %v", el.Tag, p)
		}
	}()
	content.ReplaceChildren(el)
	return nil
}

func (r *Resolver) create(tag string) (el *dom.Element, err error) {
	defer func() {
		if p := recover(); p != nil {
			el, err = nil, fmt.Errorf("construct %q: %v", tag, p)
		}
	}()
	if r.Registry == nil {
		return nil, fmt.Errorf("construct %q: %w", tag, dom.ErrUnknownTag)
	}
	return r.Registry.Create(tag)
}

func (r *Resolver) fail(key string, content *dom.Element, err error) {
	lerr := &LoadError{Key: key, Err: err}
	r.logger().Error("view load failed", "key", key, "err", lerr)
	inject(content, LoadFailedMessage)
}

func inject(content *dom.Element, msg string) {
	content.ReplaceChildren(ErrorUnit(msg))
}

func (r *Resolver) spawn(fn func()) {
	if r.Go != nil {
		r.Go(fn)
		return
	}
	if r.Post == nil {
		fn()
		return
	}
	go fn()
}

func (r *Resolver) post(fn func()) {
	if r.Post != nil {
		r.Post(fn)
		return
	}
	fn()
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}
