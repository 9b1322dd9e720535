package views_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/jask/almacen/internal/database"
	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/nav"
	"github.com/jask/almacen/internal/state"
	"github.com/jask/almacen/internal/testdata"
	"github.com/jask/almacen/internal/view"
	"github.com/jask/almacen/internal/views"
)

var now = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *views.Env {
	t.Helper()
	ctx := context.Background()
	db, err := database.Prepare(ctx, filepath.Join(t.TempDir(), "almacen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.SeedDefaults(ctx, db))

	products, sales := repository.NewProductRepo(db), repository.NewSaleRepo(db)
	_, err = testdata.Seed(ctx, testdata.Repos{Products: products, Sales: sales}, testdata.Options{Count: 40, Days: 7, Seed: 7, Now: now})
	require.NoError(t, err)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	st, err := state.New(views.InitialState(), state.WithLogger(logger))
	require.NoError(t, err)
	return &views.Env{
		State:    st,
		Products: products,
		Sales:    sales,
		Currency: "$",
		Logger:   logger,
		Now:      func() time.Time { return now },
	}
}

// wire finishes env with a resolver over env's modules. Without Go or Post
// set it mounts before Resolve returns.
func wire(env *views.Env) {
	reg := dom.NewRegistry()
	r := view.NewResolver(reg, view.NewModuleLoader(reg, env.Modules()), env.Logger)
	env.Nav = nav.NewController(r, env.Logger)
}

func boot(t *testing.T, env *views.Env) (*dom.Element, func()) {
	t.Helper()
	wire(env)
	doc := dom.NewDocument()
	teardown, err := views.Bootstrap(doc, env)
	require.NoError(t, err)
	return doc, teardown
}

func mainView(t *testing.T, doc *dom.Element) *dom.Element {
	t.Helper()
	kids := doc.ByID("main").Children()
	require.Len(t, kids, 1)
	return kids[0]
}

func link(t *testing.T, bar *dom.Element, key string) *dom.Element {
	t.Helper()
	a := bar.Query(dom.AttrEquals(nav.LinkAttr, key))
	require.NotNil(t, a, key)
	return a
}

func activeKey(t *testing.T, doc *dom.Element, navID string) string {
	t.Helper()
	a := nav.Active(doc.ByID(navID))
	require.NotNil(t, a, navID)
	v, _ := a.Data("link")
	return v
}

func TestBootstrapMountsInitialRoute(t *testing.T) {
	env := newEnv(t)
	doc, _ := boot(t, env)

	section := mainView(t, doc)
	require.Equal(t, "vista-inicio", section.Tag)
	require.Equal(t, "inicio", activeKey(t, doc, "nav-index"))
	require.Equal(t, "resumen", activeKey(t, doc, "nav-inicio"))

	leaf := section.Query(dom.Tag("resumen-inicio"))
	require.NotNil(t, leaf)
	require.Contains(t, leaf.TextContent(), "10 en catálogo")
}

func TestSectionSwitchRebindsSubNavigation(t *testing.T) {
	env := newEnv(t)
	doc, teardown := boot(t, env)
	require.Equal(t, 4, env.State.Observers())

	first := mainView(t, doc)
	link(t, doc.ByID("nav-index"), "inventario").Click()

	section := mainView(t, doc)
	require.Equal(t, "vista-inventario", section.Tag)
	require.False(t, first.Connected())
	require.Equal(t, 4, env.State.Observers(), "the old section released its bindings")
	require.NotNil(t, section.Query(dom.Tag("productos-inventario")))

	link(t, doc.ByID("nav-inventario"), "ofertas").Click()
	v, _ := env.State.Get(views.PropInventario)
	require.Equal(t, "ofertas", v)
	offers := section.Query(dom.Tag("ofertas-inventario"))
	require.NotNil(t, offers)
	require.Len(t, offers.QueryAll(dom.Class("card")), 3)

	// Writes to a section that is not mounted only change state.
	env.State.Set(views.PropVentas, "registro")
	require.Nil(t, doc.Query(dom.Tag("registro-ventas")))

	teardown()
	require.Equal(t, 2, env.State.Observers())
}

func TestSubRouteSurvivesSectionSwitch(t *testing.T) {
	env := newEnv(t)
	doc, _ := boot(t, env)

	link(t, doc.ByID("nav-inicio"), "notificaciones").Click()
	link(t, doc.ByID("nav-index"), "estadisticas").Click()
	link(t, doc.ByID("nav-index"), "inicio").Click()

	require.Equal(t, "notificaciones", activeKey(t, doc, "nav-inicio"))
	notes := doc.Query(dom.Tag("notificaciones-inicio"))
	require.NotNil(t, notes)
	require.Len(t, notes.QueryAll(dom.Class("warning")), 2)
}

func TestEveryLeafRenders(t *testing.T) {
	env := newEnv(t)
	doc, _ := boot(t, env)
	collections := views.DefaultCollections()

	for _, s := range views.Sections {
		env.State.Set(views.PropVista, s.Key)
		for _, l := range s.Links {
			env.State.Set(s.Prop, l.Key)
			entry := collections[s.Key][l.Key]
			el := doc.Query(dom.Tag(entry.Tag))
			require.NotNil(t, el, "%s/%s", s.Key, l.Key)
			require.Nil(t, doc.Query(dom.Class(view.ErrorClass)), "%s/%s", s.Key, l.Key)
		}
	}
}

func TestCollectionOverrides(t *testing.T) {
	env := newEnv(t)
	env.Collections = map[string]view.Collection{
		views.MainCollection: {"inicio": {Tag: "vista-inexistente"}},
		"ventas":             {"devoluciones": {Tag: "registro-ventas", Module: "ventas/registro"}},
	}
	require.Equal(t, "registro-ventas", env.Collection("ventas")["devoluciones"].Tag)
	require.Contains(t, env.Collection("ventas"), "transaccion")
	require.Empty(t, env.Collection("nowhere"))

	doc, _ := boot(t, env)
	unit := mainView(t, doc)
	require.True(t, unit.HasClass(view.ErrorClass))
	require.Equal(t, view.LoadFailedMessage, unit.Text)
}

func TestUnknownSubRouteRendersInline(t *testing.T) {
	env := newEnv(t)
	doc, _ := boot(t, env)

	env.State.Set(views.PropInicio, "resumne")
	unit := doc.Query(dom.Class(view.ErrorClass))
	require.NotNil(t, unit)
	require.Contains(t, unit.Text, `did you mean "resumen"`)
	require.Nil(t, nav.Active(doc.ByID("nav-inicio")))
}

func TestBootstrapRequiresEnvironment(t *testing.T) {
	_, err := views.Bootstrap(dom.NewDocument(), &views.Env{})
	require.Error(t, err)
}
