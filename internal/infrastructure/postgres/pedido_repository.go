package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-chat/internal/domain/entity"
	"github.com/jhoicas/inventario-chat/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL.
type PedidoRepo struct {
	pool *pgxpool.Pool
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos.
func NewPedidoRepository(pool *pgxpool.Pool) *PedidoRepo {
	return &PedidoRepo{pool: pool}
}

// ListAll devuelve los pedidos con la cantidad de productos que agrupan.
func (r *PedidoRepo) ListAll(ctx context.Context) ([]entity.Pedido, error) {
	query := `
		SELECT pe.id, pe.nombre, COUNT(p.id) AS total_productos, pe.created_at
		FROM pedidos pe
		LEFT JOIN productos p ON p.pedido_id = pe.id
		GROUP BY pe.id, pe.nombre, pe.created_at
		ORDER BY pe.nombre`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var pedidos []entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(&p.ID, &p.Nombre, &p.TotalProductos, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		pedidos = append(pedidos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar pedidos: %w", err)
	}
	return pedidos, nil
}
