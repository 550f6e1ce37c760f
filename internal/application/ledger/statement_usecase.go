package ledger

import (
	"fmt"

	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

// StatementUseCase gera o extrato da caderneta de um cliente em PDF.
type StatementUseCase struct {
	ledger    *UseCase
	generator StatementPDFGenerator
	log       *logger.Logger
}

// NewStatementUseCase constrói o caso de uso.
func NewStatementUseCase(ledger *UseCase, generator StatementPDFGenerator, log *logger.Logger) *StatementUseCase {
	return &StatementUseCase{ledger: ledger, generator: generator, log: log}
}

// DownloadStatementPDF carrega o cliente e gera o PDF do extrato.
//
// Retorna:
//   - (pdfBytes, filename, nil) em caso de sucesso.
//   - domain.ErrNotFound se o cliente não existe.
func (uc *StatementUseCase) DownloadStatementPDF(customerID string) ([]byte, string, error) {
	customer, err := uc.ledger.GetByID(customerID)
	if err != nil {
		return nil, "", err
	}

	data, err := uc.generator.GenerateStatementPDF(&customer)
	if err != nil {
		return nil, "", fmt.Errorf("gerar extrato: %w", err)
	}

	filename := fmt.Sprintf("extrato-%s.pdf", customer.ID)
	uc.log.Debug().Str("cliente", customer.ID).Int("bytes", len(data)).Msg("extrato gerado")
	return data, filename, nil
}
