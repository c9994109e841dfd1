package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-chat/internal/application/dto"
	"github.com/jhoicas/inventario-chat/internal/application/ports"
	"github.com/jhoicas/inventario-chat/internal/domain"
	"github.com/jhoicas/inventario-chat/internal/domain/chat"
	"github.com/jhoicas/inventario-chat/internal/domain/repository"
	"github.com/jhoicas/inventario-chat/pkg/config"
	"github.com/jhoicas/inventario-chat/pkg/logger"
)

// Modos de interpretación reportados al caller.
const (
	ModoOllama   = "ollama"
	ModoFallback = "fallback"
)

// ChatUseCase orquesta la interpretación de mensajes: corre siempre el
// detector de reglas y, si el modo asistido está habilitado, también el
// intérprete LLM con deadline duro; ambos resultados pasan por el
// reconciliador. En timeout, fallo de transporte o respuesta no parseable
// devuelve el resultado del detector tal cual.
type ChatUseCase struct {
	llm       ports.LLMService
	productos repository.ProductoRepository // opcional: snapshot desde persistencia
	pedidos   repository.PedidoRepository   // opcional
	cfg       config.OllamaConfig
	log       *logger.Logger
}

// NewChatUseCase construye el orquestador. llm puede ser nil cuando el modo
// asistido está deshabilitado; los repositorios pueden ser nil cuando el
// caller envía el snapshot en cada request.
func NewChatUseCase(
	llm ports.LLMService,
	productos repository.ProductoRepository,
	pedidos repository.PedidoRepository,
	cfg config.OllamaConfig,
	log *logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{llm: llm, productos: productos, pedidos: pedidos, cfg: cfg, log: log}
}

// ProcesarMensaje interpreta un mensaje y devuelve la acción canónica final
// junto con el modo que la produjo. Nunca ejecuta la mutación resultante.
func (uc *ChatUseCase) ProcesarMensaje(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	mensaje := strings.TrimSpace(req.Mensaje)
	if mensaje == "" {
		return nil, fmt.Errorf("mensaje es obligatorio: %w", domain.ErrInvalidInput)
	}

	snap, err := uc.construirSnapshot(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("cargar snapshot de inventario: %w", err)
	}

	contexto := dto.ContextoInventario{
		TotalProductos:     len(snap.Productos),
		ProductosStockBajo: len(snap.ProductosStockBajo()),
	}

	// El detector de reglas corre siempre: es el motor por defecto y el
	// validador del camino LLM.
	base := chat.Detectar(mensaje, snap)

	if !uc.cfg.Habilitado || uc.llm == nil {
		return &dto.ChatResponse{Accion: *base, Modo: ModoFallback, Contexto: contexto}, nil
	}

	llmCtx, cancel := context.WithTimeout(ctx, uc.cfg.Timeout())
	defer cancel()

	interp, err := uc.llm.InterpretarMensaje(llmCtx, mensaje, snap)
	if err != nil {
		var backendErr *domain.LLMBackendError
		if errors.As(err, &backendErr) {
			// Backend alcanzable pero fallando: probablemente mala
			// configuración, se expone al caller con detalle.
			return nil, err
		}
		// Timeout, transporte o JSON inextraíble: recuperación local total.
		uc.log.Warn().Err(err).Str("mensaje", mensaje).Msg("camino LLM descartado, usando detector de reglas")
		return &dto.ChatResponse{Accion: *base, Modo: ModoFallback, Contexto: contexto}, nil
	}

	final := chat.Reconciliar(mensaje, interp.Comando, snap, base)
	return &dto.ChatResponse{
		Accion:      *final,
		RawResponse: interp.RawResponse,
		Modo:        ModoOllama,
		Contexto:    contexto,
	}, nil
}

// EstadoLLM reporta la salud del backend LLM configurado.
func (uc *ChatUseCase) EstadoLLM(ctx context.Context) (*dto.EstadoLLMDTO, error) {
	if uc.llm == nil {
		return &dto.EstadoLLMDTO{
			Status:  "error",
			Message: "intérprete LLM no configurado",
		}, nil
	}
	return uc.llm.EstadoSalud(ctx)
}

// construirSnapshot arma la vista de solo lectura del inventario para esta
// invocación: primero el snapshot del request; si no vino y hay repositorios
// configurados, se carga de la persistencia.
func (uc *ChatUseCase) construirSnapshot(ctx context.Context, req dto.ChatRequest) (chat.Snapshot, error) {
	snap := chat.Snapshot{NombreEmpresa: req.NombreEmpresa}

	switch {
	case len(req.Productos) > 0:
		snap.Productos = make([]chat.ProductoCatalogo, 0, len(req.Productos))
		for _, p := range req.Productos {
			actual := p.StockActual
			if v, ok := req.StockActual[p.ID]; ok {
				actual = decimal.NewFromFloat(v)
			}
			snap.Productos = append(snap.Productos, chat.ProductoCatalogo{
				ID:           p.ID,
				Nombre:       p.Nombre,
				Unidad:       p.Unidad,
				StockMinimo:  p.StockMinimo,
				StockActual:  actual,
				PedidoID:     p.PedidoID,
				PedidoNombre: p.PedidoNombre,
			})
		}
	case uc.productos != nil:
		productos, err := uc.productos.ListAll(ctx)
		if err != nil {
			return chat.Snapshot{}, err
		}
		snap.Productos = make([]chat.ProductoCatalogo, 0, len(productos))
		for _, p := range productos {
			snap.Productos = append(snap.Productos, chat.ProductoCatalogo{
				ID:           p.ID,
				Nombre:       p.Nombre,
				Unidad:       p.Unidad,
				StockMinimo:  p.StockMinimo,
				StockActual:  p.StockActual,
				PedidoID:     p.PedidoID,
				PedidoNombre: p.PedidoNombre,
			})
		}
	}

	switch {
	case len(req.Pedidos) > 0:
		snap.Pedidos = make([]chat.PedidoResumen, 0, len(req.Pedidos))
		for _, p := range req.Pedidos {
			snap.Pedidos = append(snap.Pedidos, chat.PedidoResumen{
				ID:             p.ID,
				Nombre:         p.Nombre,
				TotalProductos: p.ProductCount,
			})
		}
	case uc.pedidos != nil:
		pedidos, err := uc.pedidos.ListAll(ctx)
		if err != nil {
			return chat.Snapshot{}, err
		}
		snap.Pedidos = make([]chat.PedidoResumen, 0, len(pedidos))
		for _, p := range pedidos {
			snap.Pedidos = append(snap.Pedidos, chat.PedidoResumen{
				ID:             p.ID,
				Nombre:         p.Nombre,
				TotalProductos: p.TotalProductos,
			})
		}
	}

	return snap, nil
}
