package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	LedgerUC    *ledger.UseCase
	PortingUC   *ledger.PortingUseCase
	StatementUC *ledger.StatementUseCase
	CountryCode string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.LedgerUC)
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	portingHandler := NewPortingHandler(deps.PortingUC, deps.LedgerUC)
	shareHandler := NewShareHandler(deps.LedgerUC, deps.StatementUC, deps.CountryCode)

	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Delete("/", portingHandler.Reset)

	// Rotas fixas antes das parametrizadas para não colidirem com :id
	customers.Post("/import", portingHandler.Import)
	customers.Get("/export", portingHandler.Export)

	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/transactions", transactionHandler.Create)
	customers.Get("/:id/share", shareHandler.Share)
	customers.Get("/:id/statement", shareHandler.Statement)
}
