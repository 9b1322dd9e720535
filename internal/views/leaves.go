package views

import (
	"context"
	"fmt"
	"strconv"

	c "github.com/jask/almacen/internal/components"
	"github.com/jask/almacen/internal/database/repository"
	"github.com/jask/almacen/internal/dom"
)

const trendDays = 14

// leaves maps module locators to leaf views.
func (env *Env) leaves() map[string]leaf {
	return map[string]leaf{
		"inicio/resumen":                     {tag: "resumen-inicio", fetch: env.resumen},
		"inicio/notificaciones":              {tag: "notificaciones-inicio", fetch: env.notificaciones},
		"ventas/transaccion":                 {tag: "transaccion-ventas", fetch: env.transaccion},
		"ventas/registro":                    {tag: "registro-ventas", fetch: env.registro},
		"inventario/productos":               {tag: "productos-inventario", fetch: env.productos},
		"inventario/actualizarValorProducto": {tag: "actualizar-valor-inventario", fetch: env.actualizarValor},
		"inventario/ofertas":                 {tag: "ofertas-inventario", fetch: env.ofertas},
		"estadisticas/masVendidos":           {tag: "mas-vendidos-estadisticas", fetch: env.masVendidos},
		"estadisticas/tendencia":             {tag: "tendencia-estadisticas", fetch: env.tendencia},
		"estadisticas/horasPico":             {tag: "horas-pico-estadisticas", fetch: env.horasPico},
	}
}

func group(children ...*dom.Element) *dom.Element {
	return dom.NewElement("div").Append(children...)
}

func (env *Env) resumen(ctx context.Context) (func() *dom.Element, error) {
	products, err := env.Products.Count(ctx)
	if err != nil {
		return nil, err
	}
	days, err := env.Sales.DailyTotals(ctx, env.now().AddDate(0, 0, -trendDays))
	if err != nil {
		return nil, err
	}
	low, err := env.Products.LowStock(ctx, env.lowStock())
	if err != nil {
		return nil, err
	}
	var sales int
	var total int64
	for _, d := range days {
		sales += d.Sales
		total += d.TotalCents
	}
	return func() *dom.Element {
		return group(
			c.Heading("Resumen"),
			c.Cards(
				c.Card("Productos", strconv.Itoa(products)+" en catálogo"),
				c.Card(fmt.Sprintf("Ventas %d días", trendDays), strconv.Itoa(sales)+" ventas", c.Money(env.Currency, total)),
				c.Card("Stock bajo", strconv.Itoa(len(low))+" productos"),
			),
		)
	}, nil
}

func (env *Env) notificaciones(ctx context.Context) (func() *dom.Element, error) {
	low, err := env.Products.LowStock(ctx, env.lowStock())
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		out := group(c.Heading("Notificaciones"))
		if len(low) == 0 {
			out.Append(c.Muted("Sin notificaciones."))
			return out
		}
		for _, p := range low {
			out.Append(c.Paragraph(fmt.Sprintf("Quedan %d de %s (%s)", p.Stock, p.Name, p.Code)).AddClass("warning"))
		}
		return out
	}, nil
}

func (env *Env) transaccion(ctx context.Context) (func() *dom.Element, error) {
	recent, err := env.Sales.Recent(ctx, 3)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		out := group(c.Heading("Últimas transacciones"))
		if len(recent) == 0 {
			out.Append(c.Muted("Aún no hay ventas."))
			return out
		}
		cards := make([]*dom.Element, 0, len(recent))
		for _, s := range recent {
			cards = append(cards, c.Card(s.ProductName,
				s.SoldAt.Format("02/01 15:04"),
				fmt.Sprintf("%d × %s", s.Quantity, c.Money(env.Currency, s.TotalCents/int64(s.Quantity))),
				"Total "+c.Money(env.Currency, s.TotalCents),
			))
		}
		return out.Append(c.Cards(cards...))
	}, nil
}

func (env *Env) registro(ctx context.Context) (func() *dom.Element, error) {
	recent, err := env.Sales.Recent(ctx, 20)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		return group(
			c.Heading("Registro de ventas"),
			c.Table([]string{"Fecha", "Producto", "Cant.", "Total"}, recent, func(s repository.Sale) *dom.Element {
				return c.Row(s.SoldAt.Format("02/01 15:04"), s.ProductName, strconv.Itoa(s.Quantity), c.Money(env.Currency, s.TotalCents))
			}),
		)
	}, nil
}

func (env *Env) productos(ctx context.Context) (func() *dom.Element, error) {
	list, err := env.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		return group(
			c.Heading("Productos"),
			c.Table([]string{"Código", "Producto", "Precio", "Stock"}, list, c.ProductRow(env.Currency)),
		)
	}, nil
}

func (env *Env) actualizarValor(ctx context.Context) (func() *dom.Element, error) {
	list, err := env.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		return group(
			c.Heading("Actualizar valor"),
			c.Muted("Precios vigentes y fecha de su última actualización."),
			c.Table([]string{"Código", "Producto", "Precio", "Actualizado"}, list, func(p repository.Product) *dom.Element {
				return c.Row(p.Code, p.Name, c.Money(env.Currency, p.PriceCents), p.UpdatedAt.Format("02/01/2006"))
			}),
		)
	}, nil
}

func (env *Env) ofertas(ctx context.Context) (func() *dom.Element, error) {
	offers, err := env.Products.Offers(ctx)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		out := group(c.Heading("Ofertas"))
		if len(offers) == 0 {
			return out.Append(c.Muted("Sin ofertas vigentes."))
		}
		cards := make([]*dom.Element, 0, len(offers))
		for _, p := range offers {
			cards = append(cards, c.ProductCard(p, env.Currency))
		}
		return out.Append(c.Cards(cards...))
	}, nil
}

func (env *Env) masVendidos(ctx context.Context) (func() *dom.Element, error) {
	top, err := env.Sales.TopSellers(ctx, 5)
	if err != nil {
		return nil, err
	}
	return func() *dom.Element {
		return group(
			c.Heading("Más vendidos"),
			c.Table([]string{"#", "Producto", "Unidades", "Total"}, rank(top), func(r ranked) *dom.Element {
				return c.Row(strconv.Itoa(r.pos), r.Name, strconv.Itoa(r.Units), c.Money(env.Currency, r.TotalCents))
			}),
		)
	}, nil
}

type ranked struct {
	repository.ProductTotal
	pos int
}

func rank(totals []repository.ProductTotal) []ranked {
	out := make([]ranked, len(totals))
	for i, t := range totals {
		out[i] = ranked{ProductTotal: t, pos: i + 1}
	}
	return out
}

func (env *Env) tendencia(ctx context.Context) (func() *dom.Element, error) {
	days, err := env.Sales.DailyTotals(ctx, env.now().AddDate(0, 0, -trendDays))
	if err != nil {
		return nil, err
	}
	var peak int64
	for _, d := range days {
		peak = max(peak, d.TotalCents)
	}
	return func() *dom.Element {
		out := group(c.Heading(fmt.Sprintf("Tendencia (%d días)", trendDays)))
		if len(days) == 0 {
			return out.Append(c.Muted("Sin ventas en el periodo."))
		}
		for _, d := range days {
			// scale to whole units so Bar works on ints
			out.Append(c.Bar(d.Day, int(d.TotalCents/100), int(peak/100), c.Money(env.Currency, d.TotalCents)))
		}
		return out
	}, nil
}

func (env *Env) horasPico(ctx context.Context) (func() *dom.Element, error) {
	hours, err := env.Sales.HourlyCounts(ctx)
	if err != nil {
		return nil, err
	}
	peak := 0
	for _, h := range hours {
		peak = max(peak, h.Sales)
	}
	return func() *dom.Element {
		out := group(c.Heading("Horas pico"))
		if len(hours) == 0 {
			return out.Append(c.Muted("Sin ventas registradas."))
		}
		for _, h := range hours {
			out.Append(c.Bar(fmt.Sprintf("%02d:00", h.Hour), h.Sales, peak, strconv.Itoa(h.Sales)))
		}
		return out
	}, nil
}
