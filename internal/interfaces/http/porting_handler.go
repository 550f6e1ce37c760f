package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/caderneta-app/caderneta-api/internal/application/dto"
	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain"
)

// mimeXLSX tipo do arquivo gerado na exportação.
const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PortingHandler importação/exportação em massa e reset da caderneta.
type PortingHandler struct {
	porting *ledger.PortingUseCase
	uc      *ledger.UseCase
}

// NewPortingHandler constrói o handler.
func NewPortingHandler(porting *ledger.PortingUseCase, uc *ledger.UseCase) *PortingHandler {
	return &PortingHandler{porting: porting, uc: uc}
}

// Import substitui a caderneta inteira pelos clientes da planilha enviada.
// POST /api/customers/import (multipart, campo "file")
func (h *PortingHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo ausente (campo \"file\")"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "não foi possível ler o arquivo"})
	}
	defer file.Close()

	count, err := h.porting.Import(file, fileHeader.Header.Get(fiber.HeaderContentType))
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFile) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FILE", Message: "por favor, importe uma planilha válida (xlsx, xls ou csv)"})
		}
		if errors.Is(err, domain.ErrInvalidFormat) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "erro ao importar a planilha; verifique se a planilha é válida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ImportResponse{Imported: count})
}

// Export baixa a caderneta completa como xlsx.
// GET /api/customers/export
func (h *PortingHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.porting.Export()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// Reset esvazia a caderneta e remove a chave do store.
// DELETE /api/customers
func (h *PortingHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
