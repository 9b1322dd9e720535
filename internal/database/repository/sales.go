package repository

import (
	"context"
	"database/sql"
	"time"
)

// SaleRepo handles sales.
type SaleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{db: db} }

// Insert stores s and reports whether it was new. A sale whose id already
// exists is left untouched.
func (r *SaleRepo) Insert(ctx context.Context, s Sale) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO sales(id, product_id, quantity, total_cents, sold_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING;
	`, s.ID, s.ProductID, s.Quantity, s.TotalCents, s.SoldAt.UTC().Truncate(time.Second))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Recent lists the latest sales, newest first.
func (r *SaleRepo) Recent(ctx context.Context, limit int) ([]Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT s.id, s.product_id, p.name, s.quantity, s.total_cents, s.sold_at
	FROM sales s JOIN products p ON p.id = s.product_id
	ORDER BY s.sold_at DESC, s.id
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.TotalCents, &s.SoldAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TopSellers ranks products by units sold.
func (r *SaleRepo) TopSellers(ctx context.Context, limit int) ([]ProductTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT p.id, p.name, SUM(s.quantity), SUM(s.total_cents)
	FROM sales s JOIN products p ON p.id = s.product_id
	GROUP BY p.id, p.name
	ORDER BY SUM(s.quantity) DESC, p.name
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ProductTotal
	for rows.Next() {
		var t ProductTotal
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Units, &t.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DailyTotals sums sales per day from since onwards, oldest day first.
func (r *SaleRepo) DailyTotals(ctx context.Context, since time.Time) ([]DayTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT substr(sold_at, 1, 10) AS day, COUNT(*), SUM(total_cents)
	FROM sales
	WHERE sold_at >= ?
	GROUP BY day
	ORDER BY day`, since.UTC().Truncate(time.Second))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayTotal
	for rows.Next() {
		var d DayTotal
		if err := rows.Scan(&d.Day, &d.Sales, &d.TotalCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// HourlyCounts counts sales by hour of day, only hours with sales.
func (r *SaleRepo) HourlyCounts(ctx context.Context) ([]HourCount, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT CAST(substr(sold_at, 12, 2) AS INTEGER) AS hour, COUNT(*)
	FROM sales
	GROUP BY hour
	ORDER BY hour`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HourCount
	for rows.Next() {
		var h HourCount
		if err := rows.Scan(&h.Hour, &h.Sales); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *SaleRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales`).Scan(&n)
	return n, err
}
