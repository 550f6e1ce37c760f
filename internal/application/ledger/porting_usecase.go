package ledger

import (
	"errors"
	"fmt"
	"io"

	"github.com/caderneta-app/caderneta-api/internal/domain"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

// ExportFilename nome fixo do arquivo gerado pela exportação, o mesmo do app
// original.
const ExportFilename = "restaurant-customers.xlsx"

// PortingUseCase importação e exportação em massa da caderneta via planilha.
type PortingUseCase struct {
	ledger *UseCase
	codec  SpreadsheetCodec
	log    *logger.Logger
}

// NewPortingUseCase constrói o caso de uso.
func NewPortingUseCase(ledger *UseCase, codec SpreadsheetCodec, log *logger.Logger) *PortingUseCase {
	return &PortingUseCase{ledger: ledger, codec: codec, log: log}
}

// Import decodifica o arquivo por completo antes de tocar em qualquer estado
// (stage-then-commit): só com a coleção inteira decodificada é que a atual é
// substituída e persistida. Uma importação que falha deixa a caderneta, em
// memória e no store, exatamente como estava.
//
// Devolve a quantidade de clientes importados.
func (uc *PortingUseCase) Import(r io.Reader, contentType string) (int, error) {
	staged, err := uc.codec.Decode(r, contentType)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFile) || errors.Is(err, domain.ErrInvalidFormat) {
			return 0, err
		}
		return 0, fmt.Errorf("decodificar planilha: %w", err)
	}
	if err := uc.ledger.ReplaceAll(staged); err != nil {
		return 0, err
	}
	uc.log.Info().Int("clientes", len(staged)).Msg("importação concluída")
	return len(staged), nil
}

// Export gera o xlsx da coleção atual. Devolve os bytes e o nome fixo do
// arquivo.
func (uc *PortingUseCase) Export() ([]byte, string, error) {
	data, err := uc.codec.EncodeXLSX(uc.ledger.List())
	if err != nil {
		return nil, "", fmt.Errorf("exportar planilha: %w", err)
	}
	return data, ExportFilename, nil
}
