// Package components builds presentational elements: cards, tables and
// the small text blocks views are made of. Builders are stateless.
package components

import (
	"fmt"
	"strconv"

	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
)

// Money formats cents with a currency symbol.
func Money(symbol string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/100, cents%100)
}

func Heading(text string) *dom.Element { return dom.NewText("h2", text) }

func Paragraph(text string) *dom.Element { return dom.NewText("p", text) }

// Muted is a secondary line of text.
func Muted(text string) *dom.Element { return dom.NewText("p", text).AddClass("muted") }

// Card builds one card with a title and detail lines.
func Card(title string, lines ...string) *dom.Element {
	card := dom.NewElement("article").AddClass("card")
	card.Append(dom.NewText("h3", title).AddClass("card__title"))
	for _, l := range lines {
		card.Append(dom.NewText("span", l).AddClass("card__line"))
	}
	return card
}

// ProductCard shows code and price, with the offer price when discounted.
func ProductCard(p repository.Product, symbol string) *dom.Element {
	lines := []string{"ID: " + p.Code, Money(symbol, p.PriceCents)}
	if p.DiscountPct > 0 {
		lines[1] = fmt.Sprintf("%s → %s (-%d%%)", Money(symbol, p.PriceCents), Money(symbol, p.OfferCents()), p.DiscountPct)
	}
	return Card(p.Name, lines...)
}

// Cards lays cards out side by side.
func Cards(cards ...*dom.Element) *dom.Element {
	return dom.NewElement("div").AddClass("cards").Append(cards...)
}

// Table builds a table whose body rows come from row, one per item.
func Table[T any](headers []string, items []T, row func(T) *dom.Element) *dom.Element {
	table := dom.NewElement("table").AddClass("custom-table")
	head := dom.NewElement("tr")
	for _, h := range headers {
		head.Append(dom.NewText("th", h).AddClass("table__header"))
	}
	body := dom.NewElement("tbody")
	for _, it := range items {
		body.Append(row(it))
	}
	table.Append(dom.NewElement("thead").Append(head), body)
	return table
}

// Row builds a table row from cell texts.
func Row(cells ...string) *dom.Element {
	tr := dom.NewElement("tr")
	for _, c := range cells {
		tr.Append(dom.NewText("td", c))
	}
	return tr
}

// ProductRow renders code, name, price and stock.
func ProductRow(symbol string) func(repository.Product) *dom.Element {
	return func(p repository.Product) *dom.Element {
		return Row(p.Code, p.Name, Money(symbol, p.PriceCents), strconv.Itoa(p.Stock))
	}
}

// Bar is a horizontal bar of width proportional to value/maxValue.
func Bar(label string, value, maxValue int, suffix string) *dom.Element {
	width := 0
	if maxValue > 0 {
		width = value * 30 / maxValue
	}
	bar := dom.NewElement("div").AddClass("bar").SetAttr("data-width", strconv.Itoa(width))
	bar.Append(dom.NewText("span", label).AddClass("bar__label"), dom.NewText("span", suffix).AddClass("bar__value"))
	return bar
}
