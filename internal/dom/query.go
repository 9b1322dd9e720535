package dom

// Matcher selects elements.
type Matcher func(*Element) bool

// Tag matches elements by tag name.
func Tag(name string) Matcher {
	return func(e *Element) bool { return e.Tag == name }
}

// HasAttr matches elements carrying the attribute.
func HasAttr(name string) Matcher {
	return func(e *Element) bool { return e.HasAttr(name) }
}

// AttrEquals matches elements whose attribute equals value.
func AttrEquals(name, value string) Matcher {
	return func(e *Element) bool {
		v, ok := e.Attr(name)
		return ok && v == value
	}
}

// Class matches elements carrying the class.
func Class(name string) Matcher {
	return func(e *Element) bool { return e.HasClass(name) }
}

// All matches when every matcher does.
func All(ms ...Matcher) Matcher {
	return func(e *Element) bool {
		for _, m := range ms {
			if !m(e) {
				return false
			}
		}
		return true
	}
}

// Closest returns the nearest ancestor-or-self matching m.
func (e *Element) Closest(m Matcher) *Element {
	for n := e; n != nil; n = n.parent {
		if m(n) {
			return n
		}
	}
	return nil
}

// QueryAll returns the descendants of e matching m, in tree order. e itself
// is not considered.
func (e *Element) QueryAll(m Matcher) []*Element {
	var out []*Element
	for _, c := range e.children {
		c.walk(func(n *Element) bool {
			if m(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Query returns the first descendant matching m.
func (e *Element) Query(m Matcher) *Element {
	var found *Element
	for _, c := range e.children {
		if !c.walk(func(n *Element) bool {
			if m(n) {
				found = n
				return false
			}
			return true
		}) {
			break
		}
	}
	return found
}

// ByID returns the descendant with the given id attribute.
func (e *Element) ByID(id string) *Element {
	return e.Query(AttrEquals("id", id))
}
