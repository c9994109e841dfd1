package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-chat/internal/application/dto"
	"github.com/jhoicas/inventario-chat/internal/application/usecase"
	"github.com/jhoicas/inventario-chat/internal/domain"
	"github.com/jhoicas/inventario-chat/pkg/logger"
)

// ChatHandler maneja los endpoints del asistente conversacional de inventario.
type ChatHandler struct {
	uc  *usecase.ChatUseCase
	log *logger.Logger
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, log: log}
}

// ProcesarMensaje godoc
// @Summary      Interpretar un mensaje de inventario
// @Description  Convierte un mensaje libre ("saco 2 cajas de tomate") en un comando
//               canónico validado. No ejecuta nada: las acciones mutantes vuelven con
//               requiereConfirmacion=true y la ejecución es responsabilidad del caller.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "mensaje (obligatorio) y snapshot opcional de productos/pedidos"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/chat/mensaje [post]
func (h *ChatHandler) ProcesarMensaje(c *fiber.Ctx) error {
	requestID := uuid.NewString()
	log := h.log.With().Str("request_id", requestID).Logger()

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
		})
	}

	resp, err := h.uc.ProcesarMensaje(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "el campo mensaje es obligatorio",
			})
		}
		var backendErr *domain.LLMBackendError
		if errors.As(err, &backendErr) {
			log.Error().Err(err).Msg("backend LLM en error")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "LLM_UNAVAILABLE",
				Message: "el intérprete LLM no está disponible; revisa la configuración",
				Detail:  backendErr.Error(),
			})
		}
		log.Error().Err(err).Msg("procesar mensaje")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no pude procesar tu mensaje, intenta de nuevo",
		})
	}

	log.Info().
		Str("modo", resp.Modo).
		Str("accion", string(resp.Accion.Accion)).
		Float64("confianza", resp.Accion.Confianza).
		Msg("mensaje interpretado")

	return c.JSON(resp)
}

// Estado godoc
// @Summary      Salud del intérprete LLM
// @Description  Reporta si el backend LLM está alcanzable y si el modelo configurado
//               está instalado. El caller lo usa para decidir si pide modo asistido.
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.EstadoLLMDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/chat/estado [get]
func (h *ChatHandler) Estado(c *fiber.Ctx) error {
	estado, err := h.uc.EstadoLLM(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "no pude consultar el estado del intérprete",
		})
	}
	return c.JSON(estado)
}
