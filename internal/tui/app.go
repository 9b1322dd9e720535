// Package tui runs the document in a terminal. Keys move a focus over
// route links and activate them with synthetic clicks; every tree
// mutation, including mounts handed over by the view resolver, happens on
// the program goroutine.
package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
)

// MainNavID is the id of the top-level navigation region.
const MainNavID = "nav-index"

// applyMsg carries work posted from other goroutines.
type applyMsg func()

// App is the bubbletea model over a document.
type App struct {
	doc    *dom.Element
	keys   *KeyRegistry
	logger *log.Logger

	posts chan func()
	done  chan struct{}

	focus  *dom.Element
	width  int
	height int
}

func New(doc *dom.Element, keys *KeyRegistry, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		doc:    doc,
		keys:   keys,
		logger: logger.WithPrefix("tui"),
		posts:  make(chan func()),
		done:   make(chan struct{}),
	}
}

// Post runs fn on the program goroutine. It blocks until the program takes
// fn, and drops fn once the program has stopped.
func (a *App) Post(fn func()) {
	select {
	case a.posts <- fn:
	case <-a.done:
	}
}

// Stop releases pending and future Post calls. It is safe to call twice.
func (a *App) Stop() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

func (a *App) wait() tea.Msg {
	select {
	case fn := <-a.posts:
		return applyMsg(fn)
	case <-a.done:
		return nil
	}
}

func (a *App) Init() tea.Cmd {
	return a.wait
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case applyMsg:
		m()
		a.settleFocus()
		return a, a.wait
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := a.keys.Action(m, a.Scope())
	switch {
	case action == actionQuit:
		a.Stop()
		return a, tea.Quit
	case action == actionNext:
		a.move(1)
	case action == actionPrev:
		a.move(-1)
	case action == actionOpen:
		a.open(a.Focused())
	case action == actionUp:
		a.focus = a.mainLink(-1)
	case strings.HasPrefix(action, actionSection):
		n := int(action[len(actionSection)] - '1')
		a.open(a.mainLink(n))
	}
	return a, nil
}

// open clicks link and keeps focus on it.
func (a *App) open(link *dom.Element) {
	if link == nil {
		return
	}
	a.focus = link
	link.Click()
	a.settleFocus()
	a.logger.Debug("link opened", "link", link.TextContent())
}

func (a *App) move(step int) {
	links := a.links()
	if len(links) == 0 {
		a.focus = nil
		return
	}
	i := slices.Index(links, a.focus)
	if i < 0 {
		a.focus = links[0]
		return
	}
	a.focus = links[(i+step+len(links))%len(links)]
}

// settleFocus moves focus to the first link when the focused one left the
// document.
func (a *App) settleFocus() {
	if a.focus != nil && a.focus.Connected() {
		return
	}
	a.focus = nil
	if links := a.links(); len(links) > 0 {
		a.focus = links[0]
	}
}

// mainLink returns the n-th link of the main navigation, or the active one
// when n is negative.
func (a *App) mainLink(n int) *dom.Element {
	region := a.doc.ByID(MainNavID)
	if region == nil {
		return nil
	}
	if n < 0 {
		return nav.Active(region)
	}
	links := region.QueryAll(isLink)
	if n >= len(links) {
		return nil
	}
	return links[n]
}

var isLink = dom.All(dom.Tag("a"), dom.HasAttr(nav.LinkAttr))

func (a *App) links() []*dom.Element {
	return a.doc.QueryAll(isLink)
}

// Focused returns the focused link, settling focus first.
func (a *App) Focused() *dom.Element {
	a.settleFocus()
	return a.focus
}

// Scope is the key scope of the focused link.
func (a *App) Scope() string {
	f := a.Focused()
	if f != nil && f.Parent() != nil && f.Parent().ID() == MainNavID {
		return ScopeMain
	}
	if f == nil {
		return ScopeMain
	}
	return ScopeSection
}

func (a *App) View() string {
	body := Render(a.doc, a.focus)
	footer := a.renderFooter()
	status := renderBar(statusBarStyle, a.width, a.breadcrumb())
	if a.height > 0 {
		body = clip(body, a.width, max(1, a.height-lipgloss.Height(footer)-1))
	}
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, status, footer))
}

// breadcrumb names the active route of every bound navigation region.
func (a *App) breadcrumb() string {
	var parts []string
	for _, region := range a.doc.QueryAll(dom.Tag("nav")) {
		if active := nav.Active(region); active != nil {
			parts = append(parts, active.TextContent())
		}
	}
	if len(parts) == 0 {
		return "Listo"
	}
	return strings.Join(parts, " › ")
}

func (a *App) renderFooter() string {
	bindings := a.keys.BindingsForScope(a.Scope())
	bg := colorMantle
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	sections := 0
	for _, b := range bindings {
		if len(b.Keys) == 0 {
			continue
		}
		if strings.HasPrefix(b.Action, actionSection) {
			sections++
			continue
		}
		parts = append(parts, keyStyle.Render(b.Keys[0])+space+descStyle.Render(b.Description))
	}
	if sections > 0 {
		parts = append(parts, keyStyle.Render(fmt.Sprintf("1-%d", sections))+space+descStyle.Render("section"))
	}
	return renderBar(footerStyle, a.width, strings.Join(parts, sep))
}
