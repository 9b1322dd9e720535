// Package nav binds a navigation region to one state property.
//
// A binding turns clicks on route links into state writes and reacts to
// writes of that property by moving the active marker and resolving the
// matching view into the content region. Clicks never render directly.
package nav

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/state"
	"github.com/jask/almacen/internal/view"
)

// ErrMissingBindingTarget is returned by Bind when there is no navigation
// region to bind.
var ErrMissingBindingTarget = errors.New("nav: navigation region not found")

const (
	// LinkAttr carries the route key of a navigation link.
	LinkAttr = "data-link"
	// ActiveClass marks the link of the current route.
	ActiveClass = "nav-link--active"
)

// Resolver mounts the view for a route key.
type Resolver interface {
	Resolve(ctx context.Context, key string, content *dom.Element, views view.Collection)
}

// Controller creates navigation bindings.
type Controller struct {
	Resolver Resolver
	Logger   *log.Logger
	// Sequenced makes a newer route cancel the in-flight resolution of the
	// previous one so that only the latest route is mounted.
	Sequenced bool
	// Context is the parent of every resolution context.
	Context context.Context
}

func NewController(r Resolver, logger *log.Logger) *Controller {
	return &Controller{Resolver: r, Logger: logger}
}

// Bind wires region and content to prop on st. The returned teardown
// removes the click listener and both reactions; it is safe to call more
// than once. When region is nil nothing is wired and the teardown is a
// no-op.
func (c *Controller) Bind(st *state.Store, prop string, content, region *dom.Element, views view.Collection) (teardown func(), err error) {
	logger := c.logger().With("prop", prop)
	if region == nil {
		logger.Error("bind aborted", "err", ErrMissingBindingTarget)
		return func() {}, ErrMissingBindingTarget
	}

	removeClick := listenClicks(region, st, prop)

	stopHighlight := st.SubscribeExclusive(func(ch state.Change) state.Cleanup {
		if ch.Prop != prop {
			return nil
		}
		highlight(region, ch.Value)
		return nil
	})

	var flight inflight
	stopRender := st.SubscribeExclusive(func(ch state.Change) state.Cleanup {
		if ch.Prop != prop {
			return nil
		}
		flight.cancel()
		if key, ok := ch.Value.Get(); ok {
			flight.set(c.render(key, content, views))
		}
		return nil
	})

	if key, ok := st.Get(prop); ok && key != "" {
		highlight(region, state.String(key))
		flight.set(c.render(key, content, views))
	}

	logger.Debug("navigation bound", "links", len(links(region)))

	var once sync.Once
	return func() {
		once.Do(func() {
			removeClick()
			stopHighlight()
			stopRender()
			flight.cancel()
			logger.Debug("navigation unbound")
		})
	}, nil
}

// inflight holds the cancel func of the latest sequenced resolution.
type inflight struct {
	mu   sync.Mutex
	stop context.CancelFunc
}

func (f *inflight) set(stop context.CancelFunc) {
	f.mu.Lock()
	f.stop = stop
	f.mu.Unlock()
}

func (f *inflight) cancel() {
	f.mu.Lock()
	stop := f.stop
	f.stop = nil
	f.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// render starts a resolution and returns what cancels it, if anything.
func (c *Controller) render(key string, content *dom.Element, views view.Collection) context.CancelFunc {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	if !c.Sequenced {
		c.Resolver.Resolve(parent, key, content, views)
		return nil
	}
	ctx, cancel := context.WithCancel(parent)
	c.Resolver.Resolve(ctx, key, content, views)
	return cancel
}

func (c *Controller) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
