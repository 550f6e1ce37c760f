package ledger

import (
	"io"

	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
)

// SpreadsheetCodec porto de conversão entre planilhas e a coleção de clientes.
// O codec opera sobre cópias e devolve coleções novas; quem adota o resultado
// (importação) ou fornece a entrada (exportação) é o ledger.
type SpreadsheetCodec interface {
	// Decode lê o arquivo e devolve a coleção; domain.ErrUnsupportedFile para
	// tipos desconhecidos, domain.ErrInvalidFormat para containers ilegíveis.
	Decode(r io.Reader, contentType string) ([]entity.Customer, error)
	// EncodeXLSX gera o xlsx de aba única com uma linha por cliente.
	EncodeXLSX(customers []entity.Customer) ([]byte, error)
}

// StatementPDFGenerator porto de geração do extrato em PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(customer *entity.Customer) ([]byte, error)
}
