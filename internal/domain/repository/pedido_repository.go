package repository

import (
	"context"

	"github.com/jhoicas/inventario-chat/internal/domain/entity"
)

// PedidoRepository es el puerto de lectura de pedidos/proveedores.
type PedidoRepository interface {
	ListAll(ctx context.Context) ([]entity.Pedido, error)
}
