package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-chat/internal/application/usecase"
	"github.com/jhoicas/inventario-chat/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ChatUC    *usecase.ChatUseCase
	Logger    *logger.Logger
	JWTSecret string // vacío = rutas de chat públicas
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	chatGroup := api.Group("/chat")
	if deps.JWTSecret != "" {
		chatGroup.Use(AuthMiddleware(deps.JWTSecret))
	}

	chatHandler := NewChatHandler(deps.ChatUC, deps.Logger)
	chatGroup.Post("/mensaje", chatHandler.ProcesarMensaje)
	chatGroup.Get("/estado", chatHandler.Estado)
}
