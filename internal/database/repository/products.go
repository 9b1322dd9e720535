package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// ProductRepo handles products.
type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Upsert(ctx context.Context, p Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products(id, code, name, price_cents, stock, discount_pct, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 code=excluded.code,
	 name=excluded.name,
	 price_cents=excluded.price_cents,
	 stock=excluded.stock,
	 discount_pct=excluded.discount_pct,
	 updated_at=CURRENT_TIMESTAMP;
	`, p.ID, p.Code, p.Name, p.PriceCents, p.Stock, p.DiscountPct)
	return err
}

const productColumns = `id, code, name, price_cents, stock, discount_pct, updated_at`

func (r *ProductRepo) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY code`)
}

// Offers lists discounted products, biggest discount first.
func (r *ProductRepo) Offers(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE discount_pct > 0 ORDER BY discount_pct DESC, code`)
}

// LowStock lists products with stock at or below threshold.
func (r *ProductRepo) LowStock(ctx context.Context, threshold int) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock <= ? ORDER BY stock, code`, threshold)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (Product, error) {
	ps, err := r.query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err != nil {
		return Product{}, err
	}
	if len(ps) == 0 {
		return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return ps[0], nil
}

func (r *ProductRepo) UpdatePrice(ctx context.Context, id string, cents int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET price_cents = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, cents, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *ProductRepo) query(ctx context.Context, q string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.PriceCents, &p.Stock, &p.DiscountPct, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
