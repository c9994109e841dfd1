package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-chat/internal/domain/entity"
	"github.com/jhoicas/inventario-chat/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL.
type ProductoRepo struct {
	pool *pgxpool.Pool
}

// NewProductoRepository construye el adaptador de persistencia para el catálogo.
func NewProductoRepository(pool *pgxpool.Pool) *ProductoRepo {
	return &ProductoRepo{pool: pool}
}

// ListAll devuelve el catálogo completo con su stock y el pedido asociado.
// El motor de chat consume esto como snapshot de solo lectura.
func (r *ProductoRepo) ListAll(ctx context.Context) ([]entity.Producto, error) {
	query := `
		SELECT p.id, p.nombre, p.unidad, p.stock_minimo, p.stock_actual,
		       COALESCE(p.pedido_id, ''), COALESCE(pe.nombre, ''),
		       p.created_at, p.updated_at
		FROM productos p
		LEFT JOIN pedidos pe ON pe.id = p.pedido_id
		ORDER BY p.nombre`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Nombre, &p.Unidad, &p.StockMinimo, &p.StockActual,
			&p.PedidoID, &p.PedidoNombre, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar productos: %w", err)
	}
	return productos, nil
}
