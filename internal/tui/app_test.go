package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/jask/almacen/internal/components"
	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
	"github.com/jask/almacen/internal/state"
	"github.com/jask/almacen/internal/view"
)

func quietLogger() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func navBar(id string, keys ...string) *dom.Element {
	bar := dom.NewElement("nav").SetAttr("id", id)
	for _, k := range keys {
		bar.Append(dom.NewText("a", k).SetAttr(nav.LinkAttr, k))
	}
	return bar
}

func newTestApp(t *testing.T) (*App, *state.Store) {
	t.Helper()
	reg := dom.NewRegistry()
	require.NoError(t, reg.Define("vista-a", func() *dom.Element {
		el := dom.NewElement("section")
		el.Append(dom.NewText("h1", "Alpha"), navBar("nav-a", "x", "y"))
		return el
	}))
	require.NoError(t, reg.Define("vista-b", func() *dom.Element {
		return dom.NewElement("section").Append(components.Paragraph("Beta"))
	}))
	r := view.NewResolver(reg, nil, quietLogger())

	st, err := state.New(map[string]string{"vista": "a"})
	require.NoError(t, err)

	doc := dom.NewDocument()
	main := dom.NewElement("main")
	header := dom.NewElement("header").Append(dom.NewText("h1", "Almacén").AddClass("brand"), navBar(MainNavID, "a", "b"))
	doc.Append(header, main)
	views := view.Collection{"a": {Tag: "vista-a"}, "b": {Tag: "vista-b"}}
	_, err = nav.NewController(r, quietLogger()).Bind(st, "vista", main, doc.ByID(MainNavID), views)
	require.NoError(t, err)

	return New(doc, NewKeyRegistry(DefaultKeyBindings(2)), quietLogger()), st
}

func press(a *App, k tea.KeyMsg) tea.Cmd {
	_, cmd := a.Update(k)
	return cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func focusedKey(a *App) string {
	v, _ := a.Focused().Data("link")
	return v
}

func TestFocusCyclesOverLinks(t *testing.T) {
	a, _ := newTestApp(t)
	require.Equal(t, "a", focusedKey(a))

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "b", focusedKey(a))
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "x", focusedKey(a))
	require.Equal(t, ScopeSection, a.Scope())

	press(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	press(a, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "y", focusedKey(a), "focus wraps around")
}

func TestEnterClicksFocusedLink(t *testing.T) {
	a, st := newTestApp(t)
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	v, _ := st.Get("vista")
	require.Equal(t, "b", v)
	require.Equal(t, "b", focusedKey(a))
	require.Contains(t, a.View(), "Beta")
}

func TestDigitsOpenSections(t *testing.T) {
	a, st := newTestApp(t)
	press(a, runes("2"))
	v, _ := st.Get("vista")
	require.Equal(t, "b", v)

	press(a, runes("1"))
	v, _ = st.Get("vista")
	require.Equal(t, "a", v)
	require.Equal(t, "a", focusedKey(a))
}

func TestEscReturnsToActiveMainLink(t *testing.T) {
	a, _ := newTestApp(t)
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ScopeSection, a.Scope())

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, "a", focusedKey(a))
	require.Equal(t, ScopeMain, a.Scope())
}

func TestFocusSettlesWhenLinkIsRemoved(t *testing.T) {
	a, st := newTestApp(t)
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	press(a, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "x", focusedKey(a))

	st.Set("vista", "b")
	require.Equal(t, "a", focusedKey(a))
}

func TestPostRunsOnUpdate(t *testing.T) {
	a, _ := newTestApp(t)
	ran := false
	go a.Post(func() { ran = true })

	msg := a.wait()
	require.IsType(t, applyMsg(nil), msg)
	require.False(t, ran)

	_, cmd := a.Update(msg)
	require.True(t, ran)
	require.NotNil(t, cmd)
}

func TestQuitReleasesPosters(t *testing.T) {
	a, _ := newTestApp(t)
	cmd := press(a, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	done := make(chan struct{})
	go func() {
		a.Post(func() { t.Error("posted after quit") })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked after quit")
	}
	require.Nil(t, a.wait())
	require.NotPanics(t, a.Stop)
}

func TestResolverPostsThroughApp(t *testing.T) {
	a, _ := newTestApp(t)
	reg := dom.NewRegistry()
	require.NoError(t, reg.Define("vista-z", func() *dom.Element { return components.Paragraph("Zeta") }))
	loader := view.LoaderFunc(func(context.Context, string) error { return nil })
	r := view.NewResolver(reg, loader, quietLogger())
	r.Post = a.Post

	content := dom.NewElement("div")
	r.Resolve(context.Background(), "z", content, view.Collection{"z": {Tag: "vista-z", Module: "z"}})
	a.Update(a.wait())
	require.Equal(t, "Zeta", content.TextContent())
}

func TestViewShowsBreadcrumbAndFooter(t *testing.T) {
	a, _ := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := a.View()
	require.Contains(t, out, "Almacén")
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "quit")
	require.Contains(t, out, "1-2")
}
