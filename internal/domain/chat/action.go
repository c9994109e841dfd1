package chat

import (
	"math"

	"github.com/shopspring/decimal"
)

// Accion identifica el tipo de comando canónico que el motor propone.
// El motor nunca ejecuta la mutación: proponer y confirmar es todo su trabajo.
type Accion string

const (
	AccionConversacion    Accion = "conversacion"
	AccionConsultaStock   Accion = "consulta_stock"
	AccionListarProductos Accion = "listar_productos"
	AccionListarPedidos   Accion = "listar_pedidos"
	AccionStockBajo       Accion = "stock_bajo"
	AccionAyuda           Accion = "ayuda"
	AccionEntrada         Accion = "entrada"
	AccionSalida          Accion = "salida"
	AccionCrearProducto   Accion = "crear_producto"
)

// EsMutante indica si la acción modifica el inventario al ejecutarse.
// Toda acción mutante inferida exige confirmación explícita del usuario.
func (a Accion) EsMutante() bool {
	return a == AccionEntrada || a == AccionSalida || a == AccionCrearProducto
}

// EsValida indica si el valor pertenece al conjunto cerrado de acciones.
func (a Accion) EsValida() bool {
	switch a {
	case AccionConversacion, AccionConsultaStock, AccionListarProductos,
		AccionListarPedidos, AccionStockBajo, AccionAyuda,
		AccionEntrada, AccionSalida, AccionCrearProducto:
		return true
	}
	return false
}

// ComandoSugerido es la acción parcial que propone el camino LLM:
// "esto es lo que creo que quieres, confirma antes de ejecutar".
type ComandoSugerido struct {
	Accion     Accion   `json:"accion,omitempty"`
	Producto   string   `json:"producto,omitempty"`
	ProductoID string   `json:"productoId,omitempty"`
	Cantidad   *float64 `json:"cantidad,omitempty"`
	Unidad     string   `json:"unidad,omitempty"`
}

// ComandoInventario es la única salida del motor: un comando canónico,
// validado y listo para que el caller lo ejecute (previa confirmación si muta).
type ComandoInventario struct {
	Accion               Accion           `json:"accion"`
	Producto             string           `json:"producto,omitempty"`
	ProductoID           string           `json:"productoId,omitempty"`
	Cantidad             *float64         `json:"cantidad,omitempty"`
	Unidad               string           `json:"unidad,omitempty"`
	StockMinimo          *float64         `json:"stockMinimo,omitempty"`
	Mensaje              string           `json:"mensaje"`
	Confianza            float64          `json:"confianza"`
	RequiereConfirmacion bool             `json:"requiereConfirmacion"`
	ComandoSugerido      *ComandoSugerido `json:"comandoSugerido,omitempty"`
}

// Normalizar aplica los invariantes del modelo de datos sobre el comando:
// cantidades en valor absoluto (también dentro del comando sugerido),
// confianza acotada a [0,1] y confirmación obligatoria para acciones mutantes.
func (c *ComandoInventario) Normalizar() {
	if c.Cantidad != nil {
		v := math.Abs(*c.Cantidad)
		c.Cantidad = &v
	}
	if c.StockMinimo != nil {
		v := math.Abs(*c.StockMinimo)
		c.StockMinimo = &v
	}
	if c.ComandoSugerido != nil && c.ComandoSugerido.Cantidad != nil {
		v := math.Abs(*c.ComandoSugerido.Cantidad)
		c.ComandoSugerido.Cantidad = &v
	}
	if c.Confianza < 0 {
		c.Confianza = 0
	} else if c.Confianza > 1 {
		c.Confianza = 1
	}
	if c.Accion.EsMutante() {
		c.RequiereConfirmacion = true
	}
}

// ProductoCatalogo es la entrada de catálogo que el caller suministra,
// de solo lectura para el motor.
type ProductoCatalogo struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Unidad       string          `json:"unidad,omitempty"`
	StockMinimo  decimal.Decimal `json:"stockMinimo"`
	StockActual  decimal.Decimal `json:"stockActual"`
	PedidoID     string          `json:"pedidoId,omitempty"`
	PedidoNombre string          `json:"pedidoNombre,omitempty"`
}

// UnidadODefecto devuelve la unidad del producto o "u" si no tiene.
func (p ProductoCatalogo) UnidadODefecto() string {
	if p.Unidad != "" {
		return p.Unidad
	}
	return "u"
}

// PedidoResumen es el resumen de pedido/proveedor que el caller suministra.
type PedidoResumen struct {
	ID             string `json:"id"`
	Nombre         string `json:"nombre"`
	TotalProductos int    `json:"productCount"`
}

// Snapshot agrupa la vista de solo lectura del inventario para una invocación.
// El motor no guarda estado entre llamadas: cada mensaje recibe su propio snapshot.
type Snapshot struct {
	Productos     []ProductoCatalogo
	Pedidos       []PedidoResumen
	NombreEmpresa string
}

// ProductosStockBajo devuelve los productos cuyo stock actual está en o por
// debajo del mínimo configurado. Comparación con decimal.Cmp, nunca con floats.
func (s Snapshot) ProductosStockBajo() []ProductoCatalogo {
	var bajos []ProductoCatalogo
	for _, p := range s.Productos {
		if p.StockMinimo.IsZero() && p.StockActual.IsZero() {
			continue
		}
		if p.StockActual.Cmp(p.StockMinimo) <= 0 {
			bajos = append(bajos, p)
		}
	}
	return bajos
}
