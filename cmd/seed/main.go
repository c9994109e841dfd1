// Siembra un catálogo de demostración en PostgreSQL para probar el asistente
// sin cargar el snapshot en cada request. Idempotente: crea las tablas si no
// existen y reemplaza los datos de demo.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-chat/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-chat/pkg/config"
)

const esquema = `
CREATE TABLE IF NOT EXISTS pedidos (
	id          TEXT PRIMARY KEY,
	nombre      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS productos (
	id            TEXT PRIMARY KEY,
	nombre        TEXT NOT NULL,
	unidad        TEXT NOT NULL DEFAULT 'u',
	stock_minimo  NUMERIC(12,3) NOT NULL DEFAULT 0,
	stock_actual  NUMERIC(12,3) NOT NULL DEFAULT 0,
	pedido_id     TEXT REFERENCES pedidos(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

type productoDemo struct {
	nombre string
	unidad string
	minimo string
	actual string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallar("cargar configuración: %v", err)
	}
	if cfg.DB.DatabaseURL == "" {
		fallar("DATABASE_URL es obligatorio para sembrar el catálogo")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fallar("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, esquema); err != nil {
		fallar("crear esquema: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM productos; DELETE FROM pedidos;`); err != nil {
		fallar("limpiar datos previos: %v", err)
	}

	pedidoVerduras := uuid.NewString()
	pedidoAlmacen := uuid.NewString()
	pedidos := map[string]string{
		pedidoVerduras: "Verdulería López",
		pedidoAlmacen:  "Almacén Central",
	}
	for id, nombre := range pedidos {
		if _, err := pool.Exec(ctx,
			`INSERT INTO pedidos (id, nombre) VALUES ($1, $2)`, id, nombre); err != nil {
			fallar("insertar pedido %s: %v", nombre, err)
		}
	}

	demo := []struct {
		productoDemo
		pedidoID string
	}{
		{productoDemo{"Tomate", "cajas", "5", "12"}, pedidoVerduras},
		{productoDemo{"Lechuga", "cajas", "3", "2"}, pedidoVerduras},
		{productoDemo{"Cebolla", "kg", "10", "25"}, pedidoVerduras},
		{productoDemo{"Harina 000", "kg", "20", "8"}, pedidoAlmacen},
		{productoDemo{"Leche Entera", "litros", "12", "30"}, pedidoAlmacen},
		{productoDemo{"Aceite de Girasol", "botellas", "6", "6"}, pedidoAlmacen},
	}

	for _, d := range demo {
		minimo, _ := decimal.NewFromString(d.minimo)
		actual, _ := decimal.NewFromString(d.actual)
		if _, err := pool.Exec(ctx, `
			INSERT INTO productos (id, nombre, unidad, stock_minimo, stock_actual, pedido_id)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), d.nombre, d.unidad, minimo, actual, d.pedidoID,
		); err != nil {
			fallar("insertar producto %s: %v", d.nombre, err)
		}
	}

	fmt.Printf("catálogo de demo sembrado: %d pedidos, %d productos\n", len(pedidos), len(demo))
}

func fallar(formato string, args ...any) {
	fmt.Fprintf(os.Stderr, formato+"\n", args...)
	os.Exit(1)
}
