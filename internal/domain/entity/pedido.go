package entity

import "time"

// Pedido agrupa productos por proveedor u orden de compra.
type Pedido struct {
	ID             string
	Nombre         string
	TotalProductos int
	CreatedAt      time.Time
}
