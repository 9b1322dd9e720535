// Package service holds catalog operations that span repositories.
package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/almacen/internal/database"
	"github.com/jask/almacen/internal/database/repository"
)

// IngestService imports products, prices and sales from CSV.
type IngestService struct {
	Products *repository.ProductRepo
	Sales    *repository.SaleRepo

	productCache map[string]repository.Product
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// Kinds accepted by Import.
const (
	KindProducts = "products"
	KindPrices   = "prices"
	KindSales    = "sales"
)

// Import dispatches to the importer for kind.
func (s *IngestService) Import(ctx context.Context, kind string, r io.Reader, tz *time.Location) (IngestResult, error) {
	switch kind {
	case KindProducts:
		return s.ImportProducts(ctx, r)
	case KindPrices:
		return s.ImportPrices(ctx, r)
	case KindSales:
		return s.ImportSales(ctx, r, tz)
	}
	return IngestResult{}, fmt.Errorf("unknown import kind %q", kind)
}

// ImportProducts upserts products. Columns: code, name, price, stock and an
// optional discount percentage. Price is in currency units.
func (s *IngestService) ImportProducts(ctx context.Context, r io.Reader) (IngestResult, error) {
	return s.each(r, "code", 4, func(line int, rec []string) error {
		price, err := unitsToCents(rec[2])
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[3]))
		if err != nil || stock < 0 {
			return fmt.Errorf("stock %q: must be a whole number", rec[3])
		}
		discount := 0
		if len(rec) > 4 && strings.TrimSpace(rec[4]) != "" {
			discount, err = strconv.Atoi(strings.TrimSpace(rec[4]))
			if err != nil || discount < 0 || discount > 100 {
				return fmt.Errorf("discount %q: must be 0..100", rec[4])
			}
		}
		code := strings.TrimSpace(rec[0])
		p := repository.Product{
			ID:          database.ProductID(code),
			Code:        code,
			Name:        strings.TrimSpace(rec[1]),
			PriceCents:  price,
			Stock:       stock,
			DiscountPct: discount,
		}
		if p.Code == "" || p.Name == "" {
			return errors.New("code and name required")
		}
		if err := s.Products.Upsert(ctx, p); err != nil {
			return err
		}
		s.remember(p)
		return nil
	})
}

// ImportPrices updates prices of existing products. Columns: code, price.
func (s *IngestService) ImportPrices(ctx context.Context, r io.Reader) (IngestResult, error) {
	return s.each(r, "code", 2, func(line int, rec []string) error {
		price, err := unitsToCents(rec[1])
		if err != nil {
			return fmt.Errorf("price: %w", err)
		}
		p, err := s.productForCode(ctx, rec[0])
		if err != nil {
			return err
		}
		if err := s.Products.UpdatePrice(ctx, p.ID, price); err != nil {
			return err
		}
		p.PriceCents = price
		s.remember(p)
		return nil
	})
}

// ImportSales records sales. Columns: sold_at (YYYY-MM-DD HH:MM in tz),
// code, quantity. The total applies the product's current discount. A row
// identical to one already imported is skipped.
func (s *IngestService) ImportSales(ctx context.Context, r io.Reader, tz *time.Location) (IngestResult, error) {
	if tz == nil {
		tz = time.Local
	}
	var skipped int
	res, err := s.each(r, "sold_at", 3, func(line int, rec []string) error {
		at, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(rec[0]), tz)
		if err != nil {
			return fmt.Errorf("sold_at: %w", err)
		}
		qty, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil || qty <= 0 {
			return fmt.Errorf("quantity %q: must be positive", rec[2])
		}
		p, err := s.productForCode(ctx, rec[1])
		if err != nil {
			return err
		}
		sale := repository.Sale{
			ID:         saleID(p.ID, at, qty, line),
			ProductID:  p.ID,
			Quantity:   qty,
			TotalCents: p.OfferCents() * int64(qty),
			SoldAt:     at,
		}
		added, err := s.Sales.Insert(ctx, sale)
		if err != nil {
			return err
		}
		if !added {
			skipped++
			return errSkip
		}
		return nil
	})
	res.Skipped = skipped
	return res, err
}

var errSkip = errors.New("skip")

// each reads CSV records with at least cols columns and applies fn to each.
// A first record whose first field is header is skipped.
func (s *IngestService) each(r io.Reader, header string, cols int, fn func(line int, rec []string) error) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1
	line := 0
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), header) {
			continue
		}
		if len(rec) < cols {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: expected %d columns", line, cols))
			continue
		}
		if err := fn(line, rec); err != nil {
			if !errors.Is(err, errSkip) {
				res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			}
			continue
		}
		res.Imported++
	}
	return res, nil
}

func (s *IngestService) productForCode(ctx context.Context, code string) (repository.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return repository.Product{}, errors.New("product code required")
	}
	if p, ok := s.productCache[code]; ok {
		return p, nil
	}
	p, err := s.Products.Get(ctx, database.ProductID(code))
	if err != nil {
		return repository.Product{}, fmt.Errorf("code %s: %w", code, err)
	}
	s.remember(p)
	return p, nil
}

func (s *IngestService) remember(p repository.Product) {
	if s.productCache == nil {
		s.productCache = make(map[string]repository.Product)
	}
	s.productCache[p.Code] = p
}

func unitsToCents(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "$")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("negative amount %s", s)
	}
	return int64(math.Round(f * 100)), nil
}

// saleID derives a stable id so that re-importing a file is harmless.
func saleID(productID string, at time.Time, qty, line int) string {
	key := fmt.Sprintf("import:%s|%s|%d|%d", productID, at.UTC().Format(time.RFC3339), qty, line)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
