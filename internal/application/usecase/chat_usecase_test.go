package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-chat/internal/application/dto"
	"github.com/jhoicas/inventario-chat/internal/application/ports"
	"github.com/jhoicas/inventario-chat/internal/application/usecase"
	"github.com/jhoicas/inventario-chat/internal/domain"
	"github.com/jhoicas/inventario-chat/internal/domain/chat"
	"github.com/jhoicas/inventario-chat/pkg/config"
	"github.com/jhoicas/inventario-chat/pkg/logger"
)

// llmStub implementa ports.LLMService con respuestas enlatadas.
type llmStub struct {
	interpretacion *ports.InterpretacionLLM
	err            error
	llamadas       int
}

func (s *llmStub) InterpretarMensaje(ctx context.Context, mensaje string, snap chat.Snapshot) (*ports.InterpretacionLLM, error) {
	s.llamadas++
	if s.err != nil {
		return nil, s.err
	}
	return s.interpretacion, nil
}

func (s *llmStub) EstadoSalud(ctx context.Context) (*dto.EstadoLLMDTO, error) {
	return &dto.EstadoLLMDTO{Status: "ok", ModeloConfigurado: "llama3.2"}, nil
}

func logNulo() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func requestDemo(mensaje string) dto.ChatRequest {
	return dto.ChatRequest{
		Mensaje:       mensaje,
		NombreEmpresa: "La Huerta",
		Productos: []dto.ProductoCatalogoDTO{
			{
				ID: "p1", Nombre: "Tomate", Unidad: "cajas",
				StockMinimo: decimal.NewFromInt(5), StockActual: decimal.NewFromInt(12),
			},
			{
				ID: "p2", Nombre: "Leche Entera", Unidad: "litros",
				StockMinimo: decimal.NewFromInt(10), StockActual: decimal.NewFromInt(4),
			},
		},
		Pedidos: []dto.PedidoDTO{
			{ID: "o1", Nombre: "Almacén Central", ProductCount: 2},
		},
	}
}

func TestProcesarMensaje_MensajeVacio(t *testing.T) {
	uc := usecase.NewChatUseCase(nil, nil, nil, config.OllamaConfig{}, logNulo())

	_, err := uc.ProcesarMensaje(context.Background(), dto.ChatRequest{Mensaje: "   "})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Con el modo asistido deshabilitado el detector de reglas responde solo.
func TestProcesarMensaje_SoloDetector(t *testing.T) {
	stub := &llmStub{}
	uc := usecase.NewChatUseCase(stub, nil, nil, config.OllamaConfig{Habilitado: false}, logNulo())

	resp, err := uc.ProcesarMensaje(context.Background(), requestDemo("saco 2 cajas de tomate"))

	require.NoError(t, err)
	assert.Equal(t, usecase.ModoFallback, resp.Modo)
	assert.Equal(t, chat.AccionSalida, resp.Accion.Accion)
	assert.Equal(t, "p1", resp.Accion.ProductoID)
	assert.Zero(t, stub.llamadas, "el LLM no debe consultarse con el modo deshabilitado")
}

func TestProcesarMensaje_LLMReconciliado(t *testing.T) {
	cantidad := 2.0
	stub := &llmStub{
		interpretacion: &ports.InterpretacionLLM{
			Comando: &chat.ComandoInventario{
				Accion:   chat.AccionSalida,
				Producto: "tomate",
				Cantidad: &cantidad,
				Mensaje:  "Registro la salida de 2 cajas de tomate.",
			},
			RawResponse: `{"accion":"salida"}`,
		},
	}
	uc := usecase.NewChatUseCase(stub, nil, nil, config.OllamaConfig{Habilitado: true}, logNulo())

	resp, err := uc.ProcesarMensaje(context.Background(), requestDemo("saco 2 cajas de tomate"))

	require.NoError(t, err)
	assert.Equal(t, usecase.ModoOllama, resp.Modo)
	assert.Equal(t, chat.AccionSalida, resp.Accion.Accion)
	assert.Equal(t, "p1", resp.Accion.ProductoID, "el reconciliador debe resolver el producto")
	assert.Equal(t, `{"accion":"salida"}`, resp.RawResponse)
	assert.Equal(t, 1, stub.llamadas)
}

// Timeout o respuesta no parseable: recuperación silenciosa con el detector.
func TestProcesarMensaje_FallbackAnteErroresRecuperables(t *testing.T) {
	for nombre, errLLM := range map[string]error{
		"timeout":           domain.ErrLLMTimeout,
		"respuesta invalida": domain.ErrRespuestaLLMInvalida,
	} {
		t.Run(nombre, func(t *testing.T) {
			stub := &llmStub{err: errLLM}
			uc := usecase.NewChatUseCase(stub, nil, nil, config.OllamaConfig{Habilitado: true}, logNulo())

			resp, err := uc.ProcesarMensaje(context.Background(), requestDemo("hola"))

			require.NoError(t, err)
			assert.Equal(t, usecase.ModoFallback, resp.Modo)
			assert.Equal(t, chat.AccionConversacion, resp.Accion.Accion)
			assert.Equal(t, 1.0, resp.Accion.Confianza)
		})
	}
}

// Un backend alcanzable pero fallando se expone al caller, no se oculta.
func TestProcesarMensaje_BackendErrorSePropaga(t *testing.T) {
	stub := &llmStub{err: &domain.LLMBackendError{URL: "http://localhost:11434", StatusCode: 500, Body: "boom"}}
	uc := usecase.NewChatUseCase(stub, nil, nil, config.OllamaConfig{Habilitado: true}, logNulo())

	_, err := uc.ProcesarMensaje(context.Background(), requestDemo("hola"))

	require.Error(t, err)
	var backendErr *domain.LLMBackendError
	assert.ErrorAs(t, err, &backendErr)
}

// El mapa stockActual del request pisa el stock del catálogo enviado.
func TestProcesarMensaje_StockActualDelRequest(t *testing.T) {
	req := requestDemo("qué falta reponer")
	req.StockActual = map[string]float64{"p1": 1} // Tomate queda bajo mínimo

	uc := usecase.NewChatUseCase(nil, nil, nil, config.OllamaConfig{}, logNulo())
	resp, err := uc.ProcesarMensaje(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, chat.AccionStockBajo, resp.Accion.Accion)
	assert.Equal(t, 2, resp.Contexto.TotalProductos)
	assert.Equal(t, 2, resp.Contexto.ProductosStockBajo, "Tomate pisado a 1 y Leche Entera en 4/10")
}

func TestEstadoLLM_SinInterprete(t *testing.T) {
	uc := usecase.NewChatUseCase(nil, nil, nil, config.OllamaConfig{}, logNulo())

	estado, err := uc.EstadoLLM(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "error", estado.Status)
	assert.NotEmpty(t, estado.Message)
}

func TestEstadoLLM_Delegado(t *testing.T) {
	uc := usecase.NewChatUseCase(&llmStub{}, nil, nil, config.OllamaConfig{Habilitado: true}, logNulo())

	estado, err := uc.EstadoLLM(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", estado.Status)
	assert.Equal(t, "llama3.2", estado.ModeloConfigurado)
}

func TestProcesarMensaje_ErroresDelLLMNoReintentan(t *testing.T) {
	stub := &llmStub{err: errors.New("conexión rechazada")}
	uc := usecase.NewChatUseCase(stub, nil, nil, config.OllamaConfig{Habilitado: true}, logNulo())

	resp, err := uc.ProcesarMensaje(context.Background(), requestDemo("hola"))

	require.NoError(t, err)
	assert.Equal(t, usecase.ModoFallback, resp.Modo)
	assert.Equal(t, 1, stub.llamadas)
}
