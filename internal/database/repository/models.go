package repository

import "time"

// Product represents a product row.
type Product struct {
	ID          string
	Code        string
	Name        string
	PriceCents  int64
	Stock       int
	DiscountPct int
	UpdatedAt   time.Time
}

// OfferCents is the price after the product discount.
func (p Product) OfferCents() int64 {
	return p.PriceCents * int64(100-p.DiscountPct) / 100
}

// Sale represents a sale row joined with its product name.
type Sale struct {
	ID          string
	ProductID   string
	ProductName string
	Quantity    int
	TotalCents  int64
	SoldAt      time.Time
}

// ProductTotal aggregates sales of one product.
type ProductTotal struct {
	ProductID  string
	Name       string
	Units      int
	TotalCents int64
}

// DayTotal aggregates sales of one calendar day (UTC, YYYY-MM-DD).
type DayTotal struct {
	Day        string
	Sales      int
	TotalCents int64
}

// HourCount counts sales by hour of day (UTC).
type HourCount struct {
	Hour  int
	Sales int
}
