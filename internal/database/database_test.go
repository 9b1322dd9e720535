package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/almacen/internal/database/repository"
)

func openTestDB(t *testing.T) (context.Context, *repository.ProductRepo, *repository.SaleRepo) {
	ctx, db := openRaw(t)
	return ctx, repository.NewProductRepo(db), repository.NewSaleRepo(db)
}

func openRaw(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	db, err := Prepare(ctx, filepath.Join(t.TempDir(), "nested", "almacen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, SeedDefaults(ctx, db))
	return ctx, db
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	ctx, products, _ := openTestDB(t)

	n, err := products.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(DefaultProducts), n)

	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "A-001", list[0].Code)
	require.Equal(t, ProductID("A-001"), list[0].ID)
	require.False(t, list[0].UpdatedAt.IsZero())
}

func TestRunMigrationsTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))
}

func TestProductQueries(t *testing.T) {
	ctx, products, _ := openTestDB(t)

	offers, err := products.Offers(ctx)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	require.Equal(t, 20, offers[0].DiscountPct)
	require.Equal(t, int64(1480), offers[0].OfferCents())

	low, err := products.LowStock(ctx, 5)
	require.NoError(t, err)
	require.Len(t, low, 2)
	require.Equal(t, "C-002", low[0].Code)

	id := ProductID("A-001")
	require.NoError(t, products.UpdatePrice(ctx, id, 3000))
	p, err := products.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, int64(3000), p.PriceCents)

	require.ErrorIs(t, products.UpdatePrice(ctx, "missing", 1), repository.ErrNotFound)
	_, err = products.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSaleAggregates(t *testing.T) {
	ctx, _, sales := openTestDB(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rice, coffee := ProductID("A-001"), ProductID("B-001")

	for _, s := range []repository.Sale{
		{ID: "s1", ProductID: rice, Quantity: 2, TotalCents: 5700, SoldAt: day.Add(9 * time.Hour)},
		{ID: "s2", ProductID: rice, Quantity: 1, TotalCents: 2850, SoldAt: day.Add(9*time.Hour + 30*time.Minute)},
		{ID: "s3", ProductID: coffee, Quantity: 1, TotalCents: 7565, SoldAt: day.AddDate(0, 0, 1).Add(18 * time.Hour)},
	} {
		added, err := sales.Insert(ctx, s)
		require.NoError(t, err)
		require.True(t, added)
	}
	added, err := sales.Insert(ctx, repository.Sale{ID: "s1", ProductID: rice, Quantity: 9, TotalCents: 1, SoldAt: day})
	require.NoError(t, err)
	require.False(t, added)

	n, err := sales.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	recent, err := sales.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "s3", recent[0].ID)
	require.Equal(t, "Café molido 500g", recent[0].ProductName)

	top, err := sales.TopSellers(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "Arroz 1kg", top[0].Name)
	require.Equal(t, 3, top[0].Units)
	require.Equal(t, int64(8550), top[0].TotalCents)

	days, err := sales.DailyTotals(ctx, day)
	require.NoError(t, err)
	require.Equal(t, []repository.DayTotal{
		{Day: "2026-03-02", Sales: 2, TotalCents: 8550},
		{Day: "2026-03-03", Sales: 1, TotalCents: 7565},
	}, days)

	hours, err := sales.HourlyCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []repository.HourCount{{Hour: 9, Sales: 2}, {Hour: 18, Sales: 1}}, hours)
}

func TestReset(t *testing.T) {
	ctx, db := openRaw(t)
	products := repository.NewProductRepo(db)

	require.NoError(t, Reset(ctx, db))
	n, err := products.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, SeedDefaults(ctx, db))
	n, err = products.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, len(DefaultProducts), n)
}
