package components

import (
	"strings"
	"testing"

	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
)

func TestMoney(t *testing.T) {
	cases := map[int64]string{2850: "$28.50", -5: "-$0.05", 0: "$0.00"}
	for cents, want := range cases {
		if got := Money("$", cents); got != want {
			t.Fatalf("Money(%d) = %q, want %q", cents, got, want)
		}
	}
	if got := Money("€", 0); got != "€0.00" {
		t.Fatalf("Money(€, 0) = %q", got)
	}
}

func TestTableUsesRowRenderer(t *testing.T) {
	products := []repository.Product{
		{Code: "A-001", Name: "Arroz", PriceCents: 2850, Stock: 4},
		{Code: "A-002", Name: "Frijol", PriceCents: 3200, Stock: 9},
	}
	table := Table([]string{"Código", "Producto", "Precio", "Stock"}, products, ProductRow("$"))

	if n := len(table.QueryAll(dom.Tag("th"))); n != 4 {
		t.Fatalf("headers = %d, want 4", n)
	}
	rows := table.Query(dom.Tag("tbody")).Children()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[1].TextContent(); got != "A-002Frijol$32.009" {
		t.Fatalf("row text = %q", got)
	}
}

func TestProductCardShowsOffer(t *testing.T) {
	card := ProductCard(repository.Product{Code: "D-001", Name: "Jabón", PriceCents: 1850, DiscountPct: 20}, "$")
	if !card.HasClass("card") {
		t.Fatalf("expected card class")
	}
	if !strings.Contains(card.TextContent(), "$14.80 (-20%)") {
		t.Fatalf("offer missing from %q", card.TextContent())
	}
}

func TestBarWidth(t *testing.T) {
	if w, _ := Bar("09h", 5, 10, "5").Attr("data-width"); w != "15" {
		t.Fatalf("width = %q, want 15", w)
	}
	if w, _ := Bar("x", 3, 0, "").Attr("data-width"); w != "0" {
		t.Fatalf("zero max width = %q, want 0", w)
	}
}
