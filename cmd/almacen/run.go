package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jask/almacen/internal/config"
	"github.com/jask/almacen/internal/database"
	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
	"github.com/jask/almacen/internal/logging"
	"github.com/jask/almacen/internal/nav"
	"github.com/jask/almacen/internal/prefs"
	"github.com/jask/almacen/internal/state"
	"github.com/jask/almacen/internal/testdata"
	"github.com/jask/almacen/internal/tui"
	"github.com/jask/almacen/internal/view"
	"github.com/jask/almacen/internal/views"
)

// sampleSeed keeps demo sales stable across fresh databases.
const sampleSeed = 20240501

func run(ctx context.Context, cfg config.Config) error {
	logger, closer, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := database.Prepare(ctx, cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	products, sales := repository.NewProductRepo(db), repository.NewSaleRepo(db)
	if err := seedSales(ctx, cfg, products, sales, logger); err != nil {
		return err
	}

	overrides, err := loadCollections(cfg.UI.ViewsFile)
	if err != nil {
		return err
	}

	st, err := state.New(initialRoutes(cfg, logger), state.WithLogger(logger.WithPrefix("state")))
	if err != nil {
		return err
	}

	doc := dom.NewDocument()
	app := tui.New(doc, tui.NewKeyRegistry(tui.DefaultKeyBindings(len(views.Sections))), logger)

	env := &views.Env{
		State:       st,
		Products:    products,
		Sales:       sales,
		Currency:    cfg.UI.CurrencySymbol,
		Logger:      logger.WithPrefix("views"),
		Collections: overrides,
	}
	reg := dom.NewRegistry()
	resolver := view.NewResolver(reg, view.NewModuleLoader(reg, env.Modules()), logger.WithPrefix("view"))
	resolver.Post = app.Post
	ctrl := nav.NewController(resolver, logger.WithPrefix("nav"))
	ctrl.Sequenced = cfg.UI.SequencedLoads
	ctrl.Context = ctx
	env.Nav = ctrl

	teardown, err := views.Bootstrap(doc, env)
	if err != nil {
		return err
	}
	defer teardown()
	logger.Info("started", "db", cfg.Database.Path, "sequenced", ctrl.Sequenced)

	_, err = tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	app.Stop()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}

	if cfg.UI.RememberRoute {
		if serr := prefs.SaveRoutes(routesOf(st)); serr != nil {
			logger.Warn("save routes", "err", serr)
		}
	}
	return err
}

func seedSales(ctx context.Context, cfg config.Config, products *repository.ProductRepo, sales *repository.SaleRepo, logger *log.Logger) error {
	if cfg.Data.SeedSales <= 0 {
		return nil
	}
	n, err := sales.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	added, err := testdata.Seed(ctx, testdata.Repos{Products: products, Sales: sales}, testdata.Options{
		Count: cfg.Data.SeedSales,
		Seed:  sampleSeed,
		Now:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("seed sales: %w", err)
	}
	logger.Info("sample sales generated", "count", added)
	return nil
}

func initialRoutes(cfg config.Config, logger *log.Logger) map[string]string {
	initial := views.InitialState()
	if !cfg.UI.RememberRoute {
		return initial
	}
	saved, err := prefs.LoadRoutes()
	if err != nil {
		logger.Warn("load routes", "err", err)
		return initial
	}
	return prefs.Restore(initial, saved)
}

// routesOf returns the route properties of st.
func routesOf(st *state.Store) map[string]string {
	out := make(map[string]string)
	for _, p := range views.Props() {
		if v, ok := st.Get(p); ok {
			out[p] = v
		}
	}
	return out
}

func loadCollections(path string) (map[string]view.Collection, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("views file: %w", err)
	}
	return view.ParseCollections(data)
}
