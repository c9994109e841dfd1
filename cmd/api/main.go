package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/inventario-chat/internal/application/ports"
	"github.com/jhoicas/inventario-chat/internal/application/usecase"
	"github.com/jhoicas/inventario-chat/internal/domain/repository"
	infraai "github.com/jhoicas/inventario-chat/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-chat/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-chat/internal/interfaces/http"
	"github.com/jhoicas/inventario-chat/pkg/config"
	"github.com/jhoicas/inventario-chat/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("ollama_habilitado", cfg.Ollama.Habilitado).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Catálogo persistente opcional: sin DATABASE_URL el snapshot debe venir
	// en cada request.
	var productoRepo repository.ProductoRepository
	var pedidoRepo repository.PedidoRepository
	if cfg.DB.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		productoRepo = postgres.NewProductoRepository(pool)
		pedidoRepo = postgres.NewPedidoRepository(pool)
	}

	var llm ports.LLMService
	if cfg.Ollama.Habilitado {
		llm = infraai.NewOllamaService(cfg.Ollama)
	}

	chatUC := usecase.NewChatUseCase(llm, productoRepo, pedidoRepo, cfg.Ollama, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Chat API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ChatUC:    chatUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
