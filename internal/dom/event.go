package dom

import "slices"

const EventClick = "click"

// Event travels from its target up to the document.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element

	defaultPrevented bool
	stopped          bool
}

func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation keeps the event from reaching further ancestors.
func (ev *Event) StopPropagation() { ev.stopped = true }

type listener struct {
	fn func(*Event)
}

// AddEventListener registers fn for events of typ reaching e and returns a
// function removing it.
func (e *Element) AddEventListener(typ string, fn func(*Event)) (remove func()) {
	if e.listeners == nil {
		e.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	e.listeners[typ] = append(e.listeners[typ], l)
	return func() {
		e.listeners[typ] = slices.DeleteFunc(e.listeners[typ], func(x *listener) bool { return x == l })
	}
}

// Listeners reports how many listeners of typ are attached to e.
func (e *Element) Listeners(typ string) int {
	return len(e.listeners[typ])
}

// Dispatch delivers ev to e and then to each ancestor. It reports false when
// a listener prevented the default action.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	for n := e; n != nil && !ev.stopped; n = n.parent {
		ev.CurrentTarget = n
		for _, l := range slices.Clone(n.listeners[ev.Type]) {
			l.fn(ev)
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

// Click dispatches a click event on e.
func (e *Element) Click() bool {
	return e.Dispatch(&Event{Type: EventClick})
}
