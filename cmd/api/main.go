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

	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	infrapdf "github.com/caderneta-app/caderneta-api/internal/infrastructure/pdf"
	"github.com/caderneta-app/caderneta-api/internal/infrastructure/spreadsheet"
	"github.com/caderneta-app/caderneta-api/internal/infrastructure/store"
	httpRouter "github.com/caderneta-app/caderneta-api/internal/interfaces/http"
	"github.com/caderneta-app/caderneta-api/pkg/config"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	boltStore, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir banco local")
	}
	defer boltStore.Close()

	ledgerUC, err := ledger.New(boltStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("carregar caderneta")
	}

	codec := spreadsheet.NewCodec(log)
	portingUC := ledger.NewPortingUseCase(ledgerUC, codec, log)

	// PDF: extrato da caderneta do cliente
	pdfGenerator := infrapdf.NewMarotoStatementGenerator()
	statementUC := ledger.NewStatementUseCase(ledgerUC, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caderneta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		PortingUC:   portingUC,
		StatementUC: statementUC,
		CountryCode: cfg.WhatsApp.CountryCode,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
