package ports

import (
	"context"

	"github.com/jhoicas/inventario-chat/internal/application/dto"
	"github.com/jhoicas/inventario-chat/internal/domain/chat"
)

// InterpretacionLLM es el resultado ya saneado del camino LLM: el comando
// extraído del texto del modelo más la respuesta cruda para diagnóstico.
type InterpretacionLLM struct {
	Comando     *chat.ComandoInventario
	RawResponse string
}

// LLMService define el puerto de salida hacia el intérprete LLM.
// Cualquier adaptador (Ollama, OpenAI, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// InterpretarMensaje emite exactamente una petición acotada al backend.
	// El contexto debe llevar el deadline; no hay reintentos. Errores posibles:
	// domain.ErrLLMTimeout, domain.ErrRespuestaLLMInvalida o *domain.LLMBackendError.
	InterpretarMensaje(ctx context.Context, mensaje string, snap chat.Snapshot) (*InterpretacionLLM, error)

	// EstadoSalud consulta el backend y reporta si el modelo configurado
	// está disponible.
	EstadoSalud(ctx context.Context) (*dto.EstadoLLMDTO, error)
}
