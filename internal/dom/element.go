// Package dom is a small in-process element tree.
//
// It covers what the navigation layer needs from a document: attributes and
// classes, child replacement, ancestor and descendant queries, bubbling
// events and connect/disconnect hooks for self-initializing elements. The
// tree is not safe for concurrent use; all mutation happens on the UI
// goroutine.
package dom

import (
	"slices"
	"strings"
)

// Element is a node of the tree.
type Element struct {
	Tag  string
	Text string

	attrs     map[string]string
	classes   []string
	children  []*Element
	parent    *Element
	listeners map[string][]*listener
	connected bool

	// OnConnected runs when the element becomes part of a document.
	OnConnected func(*Element)
	// OnDisconnected runs when the element is removed from a document.
	OnDisconnected func(*Element)
}

// NewElement returns a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: strings.ToLower(tag)}
}

// NewText returns a detached element holding text.
func NewText(tag, text string) *Element {
	e := NewElement(tag)
	e.Text = text
	return e
}

// NewDocument returns a connected root element.
func NewDocument() *Element {
	e := NewElement("document")
	e.connected = true
	return e
}

func (e *Element) Parent() *Element { return e.parent }

func (e *Element) Connected() bool { return e.connected }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// TextContent concatenates the text of e and its descendants, depth first.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.walk(func(n *Element) bool {
		b.WriteString(n.Text)
		return true
	})
	return b.String()
}

func (e *Element) SetAttr(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Data reads the data-<key> attribute.
func (e *Element) Data(key string) (string, bool) {
	return e.Attr("data-" + key)
}

// ID reads the id attribute.
func (e *Element) ID() string {
	v, _ := e.Attr("id")
	return v
}

func (e *Element) AddClass(names ...string) *Element {
	for _, n := range names {
		if !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
	return e
}

func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// ToggleClass adds name when on is true and removes it otherwise.
func (e *Element) ToggleClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// Append adds children at the end, moving them out of any previous parent.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
		if e.connected {
			c.connect()
		}
	}
	return e
}

// ReplaceChildren swaps the whole child list in one step. Old children are
// disconnected before the new ones are connected.
func (e *Element) ReplaceChildren(children ...*Element) {
	old := e.children
	e.children = nil
	for _, c := range old {
		c.parent = nil
		if c.connected {
			c.disconnect()
		}
	}
	e.Append(children...)
}

// Remove detaches e from its parent.
func (e *Element) Remove() { e.detach() }

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	p.children = slices.DeleteFunc(p.children, func(c *Element) bool { return c == e })
	e.parent = nil
	if e.connected {
		e.disconnect()
	}
}

func (e *Element) connect() {
	e.walk(func(n *Element) bool {
		if n.connected {
			return true
		}
		n.connected = true
		if n.OnConnected != nil {
			n.OnConnected(n)
		}
		return true
	})
}

func (e *Element) disconnect() {
	e.walk(func(n *Element) bool {
		if !n.connected {
			return true
		}
		n.connected = false
		if n.OnDisconnected != nil {
			n.OnDisconnected(n)
		}
		return true
	})
}

// walk visits e and its descendants in tree order until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range slices.Clone(e.children) {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}
