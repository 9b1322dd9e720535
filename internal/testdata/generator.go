// Package testdata generates sample sales for demos and tests.
package testdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/jask/almacen/internal/database/repository"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Products *repository.ProductRepo
	Sales    *repository.SaleRepo
}

// Options controls Seed.
type Options struct {
	Count int
	Days  int
	Seed  uint64
	Now   time.Time
}

// Seed inserts Count sales spread over the last Days days and returns how
// many were new. The same options always produce the same sales.
func Seed(ctx context.Context, repos Repos, opts Options) (int, error) {
	if opts.Count <= 0 {
		return 0, nil
	}
	if opts.Days <= 0 {
		opts.Days = 14
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	products, err := repos.Products.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	start := opts.Now.Truncate(24*time.Hour).AddDate(0, 0, -(opts.Days - 1))
	inserted := 0
	for i := range opts.Count {
		p := products[rng.IntN(len(products))]
		qty := 1 + rng.IntN(4)
		// store hours, 8:00 to 20:59
		at := start.
			AddDate(0, 0, rng.IntN(opts.Days)).
			Add(time.Duration(8+rng.IntN(13)) * time.Hour).
			Add(time.Duration(rng.IntN(60)) * time.Minute)
		sale := repository.Sale{
			ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(sampleKey(opts.Seed, i))).String(),
			ProductID:  p.ID,
			Quantity:   qty,
			TotalCents: p.OfferCents() * int64(qty),
			SoldAt:     at,
		}
		added, err := repos.Sales.Insert(ctx, sale)
		if err != nil {
			return inserted, err
		}
		if added {
			inserted++
		}
	}
	return inserted, nil
}

func sampleKey(seed uint64, i int) string {
	return fmt.Sprintf("sale:%d:%d", seed, i)
}
