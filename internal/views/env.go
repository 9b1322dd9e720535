package views

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
	"github.com/jask/almacen/internal/state"
	"github.com/jask/almacen/internal/view"
)

// Env is what views need from the running application.
type Env struct {
	State    *state.Store
	Nav      *nav.Controller
	Products *repository.ProductRepo
	Sales    *repository.SaleRepo
	Currency string
	Logger   *log.Logger
	// Collections overrides entries of DefaultCollections by name.
	Collections map[string]view.Collection
	// Now is the clock used by date-bound queries.
	Now func() time.Time
	// LowStock is the stock level at or below which a product is reported.
	LowStock int
}

// Collection returns the named collection with overrides applied.
func (env *Env) Collection(name string) view.Collection {
	base := DefaultCollections()[name]
	if base == nil {
		base = view.Collection{}
	}
	return base.Merge(env.Collections[name])
}

// Modules returns the module catalog for a view.ModuleLoader.
func (env *Env) Modules() map[string]view.Module {
	mods := make(map[string]view.Module)
	for _, s := range Sections {
		mods[s.Module] = env.sectionModule(s)
	}
	for locator, leaf := range env.leaves() {
		mods[locator] = leafModule(leaf)
	}
	return mods
}

func (env *Env) logger() *log.Logger {
	if env.Logger != nil {
		return env.Logger
	}
	return log.Default()
}

func (env *Env) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

func (env *Env) lowStock() int {
	if env.LowStock > 0 {
		return env.LowStock
	}
	return 5
}

// leaf is a view whose content is built from data fetched at load time.
type leaf struct {
	tag   string
	fetch func(ctx context.Context) (func() *dom.Element, error)
}

func leafModule(l leaf) view.Module {
	return func(ctx context.Context, reg *dom.Registry) error {
		build, err := l.fetch(ctx)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", l.tag, err)
		}
		return reg.Define(l.tag, func() *dom.Element {
			el := dom.NewElement(l.tag)
			el.Append(build())
			return el
		})
	}
}
