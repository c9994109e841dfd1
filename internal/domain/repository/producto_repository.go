package repository

import (
	"context"

	"github.com/jhoicas/inventario-chat/internal/domain/entity"
)

// ProductoRepository es el puerto de lectura del catálogo persistente.
// El motor de chat solo necesita el snapshot completo; las mutaciones de stock
// pertenecen al caller y quedan fuera de este contrato.
type ProductoRepository interface {
	ListAll(ctx context.Context) ([]entity.Producto, error)
}
