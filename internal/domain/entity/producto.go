package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es un producto del catálogo persistente. StockActual y StockMinimo
// se manejan como decimal para evitar acumulación de error en cantidades.
type Producto struct {
	ID           string
	Nombre       string
	Unidad       string
	StockMinimo  decimal.Decimal
	StockActual  decimal.Decimal
	PedidoID     string // pedido/proveedor al que pertenece, opcional
	PedidoNombre string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
