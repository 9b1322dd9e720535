package nav

import (
	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/state"
)

var isLink = dom.All(dom.Tag("a"), dom.HasAttr(LinkAttr))

func links(region *dom.Element) []*dom.Element {
	return region.QueryAll(isLink)
}

// listenClicks sets prop to the route key of the clicked link. It is the
// only place a binding writes to the store.
func listenClicks(region *dom.Element, st *state.Store, prop string) (remove func()) {
	return region.AddEventListener(dom.EventClick, func(ev *dom.Event) {
		if ev.Target == nil {
			return
		}
		link := ev.Target.Closest(isLink)
		if link == nil || !region.Contains(link) {
			return
		}
		ev.PreventDefault()
		key, _ := link.Attr(LinkAttr)
		st.Set(prop, key)
	})
}

// highlight marks the link whose route key equals current and clears every
// other link. An absent value clears them all.
func highlight(region *dom.Element, current state.Value) {
	key, ok := current.Get()
	for _, link := range links(region) {
		v, _ := link.Attr(LinkAttr)
		active := ok && v == key
		link.ToggleClass(ActiveClass, active)
		if active {
			link.SetAttr("aria-current", "page")
		} else {
			link.RemoveAttr("aria-current")
		}
	}
}

// Active returns the link currently marked active in region, if any.
func Active(region *dom.Element) *dom.Element {
	return region.Query(dom.All(isLink, dom.Class(ActiveClass)))
}
