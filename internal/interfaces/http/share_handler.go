package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/caderneta-app/caderneta-api/internal/application/dto"
	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain"
	"github.com/caderneta-app/caderneta-api/internal/domain/share"
)

// ShareHandler link de WhatsApp e extrato em PDF de um cliente.
type ShareHandler struct {
	uc          *ledger.UseCase
	statement   *ledger.StatementUseCase
	countryCode string
}

// NewShareHandler constrói o handler.
func NewShareHandler(uc *ledger.UseCase, statement *ledger.StatementUseCase, countryCode string) *ShareHandler {
	return &ShareHandler{uc: uc, statement: statement, countryCode: countryCode}
}

// Share devolve o deep link do WhatsApp com saldo e movimentos recentes.
// GET /api/customers/:id/share
func (h *ShareHandler) Share(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ShareResponse{URL: share.WhatsAppURL(customer, h.countryCode)})
}

// Statement baixa o extrato da caderneta do cliente em PDF.
// GET /api/customers/:id/statement
func (h *ShareHandler) Statement(c *fiber.Ctx) error {
	data, filename, err := h.statement.DownloadStatementPDF(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
