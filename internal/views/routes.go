// Package views defines the application's sections and leaf views, the
// route state they navigate and the modules that load them.
package views

import "github.com/jask/almacen/internal/view"

// State properties driving navigation.
const (
	PropVista        = "vista"
	PropInicio       = "subVistaInicio"
	PropVentas       = "subVistaVentas"
	PropInventario   = "subVistaInventario"
	PropEstadisticas = "subVistaEstadisticas"
)

// MainCollection is the name of the top-level view collection.
const MainCollection = "main"

// Link is one entry of a navigation bar.
type Link struct {
	Key   string
	Label string
}

// Section is a top-level view with its own sub-navigation.
type Section struct {
	Key    string
	Title  string
	Tag    string
	Prop   string
	Links  []Link
	Module string
}

// Sections in navigation order.
var Sections = []Section{
	{
		Key: "inicio", Title: "Inicio", Tag: "vista-inicio", Prop: PropInicio, Module: "inicio",
		Links: []Link{{"resumen", "Resumen"}, {"notificaciones", "Notificaciones"}},
	},
	{
		Key: "ventas", Title: "Ventas", Tag: "vista-ventas", Prop: PropVentas, Module: "ventas",
		Links: []Link{{"transaccion", "Transacción"}, {"registro", "Registro"}},
	},
	{
		Key: "inventario", Title: "Inventario", Tag: "vista-inventario", Prop: PropInventario, Module: "inventario",
		Links: []Link{{"productos", "Productos"}, {"actualizarValorProducto", "Actualizar valor"}, {"ofertas", "Ofertas"}},
	},
	{
		Key: "estadisticas", Title: "Estadísticas", Tag: "vista-estadisticas", Prop: PropEstadisticas, Module: "estadisticas",
		Links: []Link{{"masVendidos", "Más vendidos"}, {"tendencia", "Tendencia"}, {"horasPico", "Horas pico"}},
	},
}

// InitialState is the route state of a fresh session.
func InitialState() map[string]string {
	return map[string]string{
		PropVista:        "inicio",
		PropInicio:       "resumen",
		PropVentas:       "transaccion",
		PropInventario:   "productos",
		PropEstadisticas: "masVendidos",
	}
}

// DefaultCollections returns the built-in view collections keyed by name:
// MainCollection for the sections and one per section key.
func DefaultCollections() map[string]view.Collection {
	out := map[string]view.Collection{
		MainCollection: {},
		"inicio": {
			"resumen":        {Tag: "resumen-inicio", Module: "inicio/resumen"},
			"notificaciones": {Tag: "notificaciones-inicio", Module: "inicio/notificaciones"},
		},
		"ventas": {
			"transaccion": {Tag: "transaccion-ventas", Module: "ventas/transaccion"},
			"registro":    {Tag: "registro-ventas", Module: "ventas/registro"},
		},
		"inventario": {
			"productos":               {Tag: "productos-inventario", Module: "inventario/productos"},
			"actualizarValorProducto": {Tag: "actualizar-valor-inventario", Module: "inventario/actualizarValorProducto"},
			"ofertas":                 {Tag: "ofertas-inventario", Module: "inventario/ofertas"},
		},
		"estadisticas": {
			"masVendidos": {Tag: "mas-vendidos-estadisticas", Module: "estadisticas/masVendidos"},
			"tendencia":   {Tag: "tendencia-estadisticas", Module: "estadisticas/tendencia"},
			"horasPico":   {Tag: "horas-pico-estadisticas", Module: "estadisticas/horasPico"},
		},
	}
	for _, s := range Sections {
		out[MainCollection][s.Key] = view.Entry{Tag: s.Tag, Module: s.Module}
	}
	return out
}

// Props lists every route property, main first.
func Props() []string {
	out := []string{PropVista}
	for _, s := range Sections {
		out = append(out, s.Prop)
	}
	return out
}
