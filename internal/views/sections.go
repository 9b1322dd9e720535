package views

import (
	"context"
	"errors"

	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
)

// NavBar builds a navigation region with one route link per entry.
func NavBar(id string, links []Link) *dom.Element {
	bar := dom.NewElement("nav").SetAttr("id", id)
	for _, l := range links {
		a := dom.NewText("a", l.Label).SetAttr(nav.LinkAttr, l.Key).SetAttr("href", "#"+l.Key)
		bar.Append(a)
	}
	return bar
}

// sectionModule defines the element of a section. The element binds its
// sub-navigation while connected.
func (env *Env) sectionModule(s Section) func(ctx context.Context, reg *dom.Registry) error {
	return func(ctx context.Context, reg *dom.Registry) error {
		return reg.Define(s.Tag, func() *dom.Element { return env.newSection(s) })
	}
}

func (env *Env) newSection(s Section) *dom.Element {
	el := dom.NewElement(s.Tag)
	bar := NavBar("nav-"+s.Key, s.Links).AddClass("subnav")
	visor := dom.NewElement("div").AddClass("visor")
	el.Append(dom.NewText("h1", s.Title), bar, visor)

	var teardown func()
	el.OnConnected = func(*dom.Element) {
		td, err := env.Nav.Bind(env.State, s.Prop, visor, bar, env.Collection(s.Key))
		if err != nil {
			env.logger().Error("section navigation", "section", s.Key, "err", err)
			return
		}
		teardown = td
	}
	el.OnDisconnected = func(*dom.Element) {
		if teardown != nil {
			teardown()
			teardown = nil
		}
	}
	return el
}

// Bootstrap builds the page shell inside doc and binds the main
// navigation to PropVista.
func Bootstrap(doc *dom.Element, env *Env) (teardown func(), err error) {
	if doc == nil || env == nil || env.Nav == nil || env.State == nil {
		return func() {}, errors.New("views: incomplete environment")
	}
	links := make([]Link, 0, len(Sections))
	for _, s := range Sections {
		links = append(links, Link{Key: s.Key, Label: s.Title})
	}
	header := dom.NewElement("header")
	header.Append(dom.NewText("h1", "Almacén").AddClass("brand"), NavBar("nav-index", links))
	main := dom.NewElement("main").SetAttr("id", "main")
	doc.Append(header, main)

	return env.Nav.Bind(env.State, PropVista, main, doc.ByID("nav-index"), env.Collection(MainCollection))
}
