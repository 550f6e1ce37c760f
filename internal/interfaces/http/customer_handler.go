package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/caderneta-app/caderneta-api/internal/application/dto"
	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain"
)

// CustomerHandler maneja as requisições HTTP de clientes da caderneta.
type CustomerHandler struct {
	uc *ledger.UseCase
}

// NewCustomerHandler constrói o handler.
func NewCustomerHandler(uc *ledger.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.FromCustomers(h.uc.List()))
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	customer, err := h.uc.Add(in.Name, in.PhoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome e telefone válidos são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCustomer(customer))
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromCustomer(customer))
}

// Update PUT /api/customers/:id
// Substitui nome e telefone do registro; id inexistente é um no-op silencioso
// (204 em ambos os casos), preservando o contrato original de update.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	customer, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	customer.Name = in.Name
	customer.PhoneNumber = in.PhoneNumber
	if err := h.uc.Update(customer); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/customers/:id
// Id inexistente é um no-op silencioso (204 em ambos os casos).
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
