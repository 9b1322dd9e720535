package view

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jask/almacen/internal/dom"
)

// Loader makes the module behind a locator available.
type Loader interface {
	Load(ctx context.Context, locator string) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, locator string) error

func (f LoaderFunc) Load(ctx context.Context, locator string) error { return f(ctx, locator) }

// Module defines elements into a registry. It may fetch whatever data its
// elements render.
type Module func(ctx context.Context, reg *dom.Registry) error

// ModuleLoader loads modules from a fixed catalog into a registry. Each
// module runs at most once successfully; concurrent loads of the same
// locator share one run, which is not cancelled with any single caller's
// context. Failed loads are retried on the next request.
type ModuleLoader struct {
	registry *dom.Registry
	modules  map[string]Module

	group  singleflight.Group
	mu     sync.Mutex
	loaded map[string]bool
}

func NewModuleLoader(reg *dom.Registry, modules map[string]Module) *ModuleLoader {
	return &ModuleLoader{
		registry: reg,
		modules:  modules,
		loaded:   make(map[string]bool),
	}
}

func (l *ModuleLoader) Load(ctx context.Context, locator string) error {
	if l.isLoaded(locator) {
		return nil
	}
	mod, ok := l.modules[locator]
	if !ok {
		return fmt.Errorf("module %q: %w", locator, ErrModuleNotFound)
	}
	shared := context.WithoutCancel(ctx)
	_, err, _ := l.group.Do(locator, func() (any, error) {
		if l.isLoaded(locator) {
			return nil, nil
		}
		if err := mod(shared, l.registry); err != nil {
			return nil, fmt.Errorf("module %q: %w", locator, err)
		}
		l.mu.Lock()
		l.loaded[locator] = true
		l.mu.Unlock()
		return nil, nil
	})
	return err
}

// Loaded reports whether locator has been loaded successfully.
func (l *ModuleLoader) Loaded(locator string) bool { return l.isLoaded(locator) }

func (l *ModuleLoader) isLoaded(locator string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded[locator]
}
