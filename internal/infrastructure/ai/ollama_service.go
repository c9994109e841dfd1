package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/inventario-chat/internal/application/dto"
	"github.com/jhoicas/inventario-chat/internal/application/ports"
	"github.com/jhoicas/inventario-chat/internal/domain"
	"github.com/jhoicas/inventario-chat/internal/domain/chat"
	"github.com/jhoicas/inventario-chat/pkg/config"
)

// Verificar en tiempo de compilación que OllamaService implementa LLMService.
var _ ports.LLMService = (*OllamaService)(nil)

const (
	maxProductosEnPrompt = 10

	promptSistema = `Eres el asistente de inventario de "%s". El usuario escribe mensajes libres en español y tú debes convertirlos en UN comando de inventario.

Acciones permitidas (campo "accion", exactamente uno de estos valores):
conversacion, consulta_stock, listar_productos, listar_pedidos, stock_bajo, ayuda, entrada, salida, crear_producto

%s
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `) con esta estructura exacta:
{
  "accion": "<una de las acciones permitidas>",
  "producto": "<nombre del producto, opcional>",
  "productoId": "<id del catálogo, opcional>",
  "cantidad": <número positivo, opcional>,
  "unidad": "<unidad, opcional>",
  "mensaje": "<respuesta corta y amigable en español para el usuario>",
  "confianza": <número decimal entre 0.0 y 1.0>,
  "requiereConfirmacion": <true o false>,
  "comandoSugerido": { "accion": "...", "productoId": "...", "cantidad": ..., "unidad": "..." }
}

Reglas:
- "comandoSugerido" es opcional: inclúyelo solo cuando propongas ejecutar algo.
- Toda acción que modifique stock (entrada, salida, crear_producto) lleva "requiereConfirmacion": true.
- "cantidad" siempre positiva. Si el usuario no dio cantidad para un movimiento, usa "accion": "conversacion" y pídela en "mensaje".
- Usa "productoId" solo con ids del catálogo listado arriba.
- No incluyas texto fuera del JSON. Solo el objeto JSON.

Mensaje del usuario: %s`
)

// OllamaService adaptador que implementa LLMService contra un backend
// compatible con la API de Ollama. Usa net/http de la librería estándar;
// no requiere SDK.
type OllamaService struct {
	baseURL    string
	modelo     string
	httpClient *http.Client
}

// NewOllamaService construye el adaptador con la configuración inyectada.
func NewOllamaService(cfg config.OllamaConfig) *OllamaService {
	return &OllamaService{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		modelo:  cfg.Modelo,
		httpClient: &http.Client{
			// Timeout de red holgado; el deadline real lo impone el
			// contexto del orquestador (10 s por defecto).
			Timeout: 25 * time.Second,
		},
	}
}

// Estructuras internas del protocolo Ollama.

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// InterpretarMensaje envía el mensaje y el resumen del catálogo al modelo y
// devuelve el comando saneado. Una sola petición, sin reintentos: en timeout
// o fallo de transporte el orquestador usa el detector de reglas.
func (s *OllamaService) InterpretarMensaje(ctx context.Context, mensaje string, snap chat.Snapshot) (*ports.InterpretacionLLM, error) {
	payload := ollamaGenerateRequest{
		Model:  s.modelo,
		Prompt: s.construirPrompt(mensaje, snap),
		Stream: false,
		Options: ollamaOptions{
			Temperature: 0.1,
			NumPredict:  512,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("LLM: serializar request: %w", err)
	}

	url := s.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("LLM: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLLMTimeout, ctx.Err())
		}
		return nil, fmt.Errorf("LLM: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, fmt.Errorf("LLM: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.LLMBackendError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(rawBody)),
		}
	}

	var genResp ollamaGenerateResponse
	if err := json.Unmarshal(rawBody, &genResp); err != nil {
		return nil, fmt.Errorf("LLM: deserializar respuesta Ollama: %w", err)
	}
	if genResp.Error != "" {
		return nil, &domain.LLMBackendError{URL: url, StatusCode: resp.StatusCode, Body: genResp.Error}
	}

	comando, err := parsearComando(genResp.Response)
	if err != nil {
		// Parse fallido no escala: el caller vuelve al detector de reglas.
		return nil, err
	}

	return &ports.InterpretacionLLM{Comando: comando, RawResponse: genResp.Response}, nil
}

// EstadoSalud consulta /api/tags y reporta si el modelo configurado está
// dentro de los modelos instalados en el backend.
func (s *OllamaService) EstadoSalud(ctx context.Context) (*dto.EstadoLLMDTO, error) {
	estado := &dto.EstadoLLMDTO{
		URL:               s.baseURL,
		ModeloConfigurado: s.modelo,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("LLM: crear HTTP request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		estado.Status = "error"
		estado.Message = "backend LLM no alcanzable: " + err.Error()
		return estado, nil
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil || resp.StatusCode != http.StatusOK {
		estado.Status = "error"
		estado.Message = fmt.Sprintf("backend LLM respondió HTTP %d", resp.StatusCode)
		return estado, nil
	}

	var tags ollamaTagsResponse
	if err := json.Unmarshal(rawBody, &tags); err != nil {
		estado.Status = "error"
		estado.Message = "respuesta de /api/tags no parseable"
		return estado, nil
	}

	disponible := false
	for _, m := range tags.Models {
		estado.ModelosDisponibles = append(estado.ModelosDisponibles, m.Name)
		if m.Name == s.modelo || strings.HasPrefix(m.Name, s.modelo+":") {
			disponible = true
		}
	}
	estado.Status = "ok"
	estado.ModeloDisponible = &disponible
	if !disponible {
		estado.Message = fmt.Sprintf("el modelo %q no está instalado en el backend", s.modelo)
	}
	return estado, nil
}

// construirPrompt arma la instrucción completa: hasta maxProductosEnPrompt
// entradas del catálogo (nombre, id, stock), totales y el contrato de salida.
func (s *OllamaService) construirPrompt(mensaje string, snap chat.Snapshot) string {
	empresa := snap.NombreEmpresa
	if empresa == "" {
		empresa = "el negocio"
	}

	var b strings.Builder
	if len(snap.Productos) == 0 {
		b.WriteString("El catálogo está vacío.\n")
	} else {
		fmt.Fprintf(&b, "Catálogo (%d productos en total, %d con stock bajo):\n",
			len(snap.Productos), len(snap.ProductosStockBajo()))
		for i, p := range snap.Productos {
			if i >= maxProductosEnPrompt {
				fmt.Fprintf(&b, "… y %d productos más.\n", len(snap.Productos)-maxProductosEnPrompt)
				break
			}
			fmt.Fprintf(&b, "- %s (id: %s, stock: %s %s)\n",
				p.Nombre, p.ID, p.StockActual.String(), p.UnidadODefecto())
		}
	}
	if len(snap.Pedidos) > 0 {
		fmt.Fprintf(&b, "Pedidos registrados: %d.\n", len(snap.Pedidos))
	}

	return fmt.Sprintf(promptSistema, empresa, b.String(), mensaje)
}
