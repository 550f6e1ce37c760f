// Package pdf implementa a geração do extrato da caderneta em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nome do cliente  │  Telefone + Data de emissão     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Data | Descrição | Valor (+/-)                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALDO ATUAL                                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"sort"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/internal/domain/share"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 146, Green: 64, Blue: 14}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ledger.StatementPDFGenerator = (*MarotoStatementGenerator)(nil)

// MarotoStatementGenerator implementa ledger.StatementPDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

// NewMarotoStatementGenerator constrói o gerador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF gera o PDF do extrato e devolve seus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(customer *entity.Customer) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extrato da Caderneta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(customer.Transactions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(balanceRow(customer))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: nome do cliente (esq) e telefone + data de emissão (dir).
func headerRow(customer *entity.Customer) core.Row {
	emitted := time.Now().Format("02/01/2006")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Extrato da caderneta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(customer.PhoneNumber, props.Text{
				Size: 9, Top: 1, Align: align.Right, Color: colorGray,
			}),
			text.New("Emitido em "+emitted, props.Text{
				Size: 9, Top: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow cabeçalho da tabela de movimentos.
func tableHeaderRow() core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	boldRight := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right}

	return row.New(7).Add(
		col.New(3).Add(text.New("Data", bold)),
		col.New(6).Add(text.New("Descrição", bold)),
		col.New(3).Add(text.New("Valor", boldRight)),
	)
}

// tableRows uma linha por movimento, da mais recente para a mais antiga.
func tableRows(txs []entity.Transaction) []core.Row {
	sorted := make([]entity.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	rows := make([]core.Row, 0, len(sorted))
	for _, tx := range sorted {
		prefix := "+"
		if tx.Type == entity.TransactionSubtract {
			prefix = "-"
		}
		rows = append(rows, row.New(6).Add(
			col.New(3).Add(text.New(tx.Date.Format("02/01/2006 15:04"), props.Text{Size: 8})),
			col.New(6).Add(text.New(tx.Description, props.Text{Size: 8})),
			col.New(3).Add(text.New(prefix+share.FormatCurrency(tx.Amount.Abs()), props.Text{
				Size: 8, Align: align.Right,
			})),
		))
	}
	return rows
}

// balanceRow saldo final da caderneta.
func balanceRow(customer *entity.Customer) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("SALDO ATUAL", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(share.FormatCurrency(customer.Balance), props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2, Align: align.Right,
		})),
	)
}
