package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caderneta-app/caderneta-api/internal/application/dto"
	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain"
)

// TransactionHandler maneja os movimentos de saldo de um cliente.
type TransactionHandler struct {
	uc *ledger.UseCase
}

// NewTransactionHandler constrói o handler.
func NewTransactionHandler(uc *ledger.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create registra um movimento e devolve o cliente atualizado.
// POST /api/customers/:id/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	customer, err := h.uc.AddTransaction(c.Params("id"), in.Amount, in.Description, in.Type)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "valor positivo e tipo add|subtract são obrigatórios"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCustomer(customer))
}
