package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/jask/almacen/internal/database/repository"
)

// DefaultProducts is the starter catalog of a new database.
var DefaultProducts = []repository.Product{
	{Code: "A-001", Name: "Arroz 1kg", PriceCents: 2850, Stock: 40},
	{Code: "A-002", Name: "Frijol negro 1kg", PriceCents: 3200, Stock: 25},
	{Code: "A-003", Name: "Aceite vegetal 1L", PriceCents: 4590, Stock: 12, DiscountPct: 10},
	{Code: "A-004", Name: "Azúcar 1kg", PriceCents: 2700, Stock: 30},
	{Code: "B-001", Name: "Café molido 500g", PriceCents: 8900, Stock: 8, DiscountPct: 15},
	{Code: "B-002", Name: "Leche entera 1L", PriceCents: 2650, Stock: 60},
	{Code: "B-003", Name: "Refresco cola 2L", PriceCents: 3800, Stock: 4},
	{Code: "C-001", Name: "Pan de caja", PriceCents: 4200, Stock: 15},
	{Code: "C-002", Name: "Huevo 12 piezas", PriceCents: 4800, Stock: 3},
	{Code: "D-001", Name: "Jabón de tocador", PriceCents: 1850, Stock: 22, DiscountPct: 20},
}

// ProductID derives the stable id of a product code.
func ProductID(code string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("product:"+code)).String()
}

// SeedDefaults ensures the starter catalog exists for new databases.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	products := repository.NewProductRepo(db)
	n, err := products.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range DefaultProducts {
		p.ID = ProductID(p.Code)
		if err := products.Upsert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Reset wipes all rows, keeping the schema.
func Reset(ctx context.Context, db *sql.DB) error {
	return WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, t := range []string{"sales", "products"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return err
			}
		}
		return nil
	})
}
