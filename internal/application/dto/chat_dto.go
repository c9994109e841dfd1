package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-chat/internal/domain/chat"
)

// ChatRequest es el cuerpo de POST /api/chat/mensaje. El caller es dueño del
// snapshot: si no envía productos y hay catálogo persistente configurado, el
// servidor lo carga por él.
type ChatRequest struct {
	Mensaje       string                `json:"mensaje"`
	Productos     []ProductoCatalogoDTO `json:"productos"`
	StockActual   map[string]float64    `json:"stockActual"`
	Pedidos       []PedidoDTO           `json:"pedidos"`
	NombreEmpresa string                `json:"nombreEmpresa"`
}

// ProductoCatalogoDTO entrada de catálogo tal como viaja por la API.
type ProductoCatalogoDTO struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Unidad       string          `json:"unidad,omitempty"`
	StockMinimo  decimal.Decimal `json:"stockMinimo"`
	StockActual  decimal.Decimal `json:"stockActual"`
	PedidoID     string          `json:"pedidoId,omitempty"`
	PedidoNombre string          `json:"pedidoNombre,omitempty"`
}

// PedidoDTO resumen de pedido tal como viaja por la API.
type PedidoDTO struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	ProductCount int    `json:"productCount"`
}

// ContextoInventario acompaña toda respuesta de chat con los totales del snapshot.
type ContextoInventario struct {
	TotalProductos     int `json:"totalProductos"`
	ProductosStockBajo int `json:"productosStockBajo"`
}

// ChatResponse es la respuesta de POST /api/chat/mensaje.
// Modo indica qué camino produjo la acción: "ollama" o "fallback".
type ChatResponse struct {
	Accion      chat.ComandoInventario `json:"accion"`
	RawResponse string                 `json:"rawResponse,omitempty"`
	Modo        string                 `json:"modo"`
	Contexto    ContextoInventario     `json:"contexto"`
}

// EstadoLLMDTO es la respuesta de GET /api/chat/estado: el caller la usa para
// decidir si intenta el modo asistido por LLM.
type EstadoLLMDTO struct {
	Status             string   `json:"status"` // "ok" | "error"
	URL                string   `json:"url"`
	ModeloConfigurado  string   `json:"modeloConfigurado"`
	ModeloDisponible   *bool    `json:"modeloDisponible,omitempty"`
	ModelosDisponibles []string `json:"modelosDisponibles,omitempty"`
	Message            string   `json:"message,omitempty"`
}
