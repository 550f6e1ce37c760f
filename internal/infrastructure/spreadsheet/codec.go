// Package spreadsheet converte a caderneta de/para planilhas (xlsx, xls, csv).
//
// O formato tabular é o mesmo do app original: uma linha por cliente, com os
// movimentos embutidos na coluna "transactions" como um blob JSON. A
// importação é deliberadamente permissiva: uma planilha malformada ou
// parcialmente preenchida produz uma lista de clientes utilizável, ainda que
// incompleta, em vez de abortar a importação inteira.
package spreadsheet

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/caderneta-app/caderneta-api/internal/domain"
	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

// Tipos MIME aceitos na importação (declarados pelo arquivo enviado).
const (
	MIMEXLS  = "application/vnd.ms-excel"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV  = "text/csv"
)

// SheetName nome da aba única no arquivo exportado.
const SheetName = "Customers"

// columns ordem das colunas escalares na exportação.
var columns = []string{"id", "name", "phoneNumber", "balance", "transactions", "createdAt", "updatedAt"}

// Row uma linha plana da planilha, indexada pelo nome da coluna.
type Row map[string]string

// Codec conversor bidirecional entre a coleção de clientes e planilhas.
type Codec struct {
	log *logger.Logger
}

// NewCodec constrói o conversor.
func NewCodec(log *logger.Logger) *Codec {
	return &Codec{log: log}
}

// Decode lê um arquivo de planilha e devolve a coleção de clientes.
// O container é escolhido pelo tipo MIME declarado; tipos desconhecidos
// resultam em domain.ErrUnsupportedFile sem tocar em nenhum estado.
func (c *Codec) Decode(r io.Reader, contentType string) ([]entity.Customer, error) {
	switch contentType {
	case MIMEXLS, MIMEXLSX:
		rows, err := c.readExcel(r)
		if err != nil {
			return nil, err
		}
		return c.FromRows(rows), nil
	case MIMECSV:
		rows, err := c.readCSV(r)
		if err != nil {
			return nil, err
		}
		return c.FromRows(rows), nil
	default:
		return nil, domain.ErrUnsupportedFile
	}
}

// EncodeXLSX gera o arquivo exportado: xlsx de aba única, uma linha por cliente.
func (c *Codec) EncodeXLSX(customers []entity.Customer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("renomear aba: %w", err)
	}

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, col); err != nil {
			return nil, fmt.Errorf("escrever cabeçalho: %w", err)
		}
	}
	for n, row := range c.ToRows(customers) {
		for i, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, n+2)
			if err := f.SetCellValue(SheetName, cell, row[col]); err != nil {
				return nil, fmt.Errorf("escrever linha %d: %w", n+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("gerar xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ToRows achata cada cliente em uma linha; os movimentos viram um blob JSON
// na coluna "transactions". Opera sobre cópias, nunca muta a coleção.
func (c *Codec) ToRows(customers []entity.Customer) []Row {
	rows := make([]Row, 0, len(customers))
	for _, cust := range customers {
		txs := cust.Transactions
		if txs == nil {
			txs = []entity.Transaction{}
		}
		blob, err := json.Marshal(txs)
		if err != nil {
			// json.Marshal de []Transaction não falha na prática
			blob = []byte("[]")
		}
		rows = append(rows, Row{
			"id":           cust.ID,
			"name":         cust.Name,
			"phoneNumber":  cust.PhoneNumber,
			"balance":      cust.Balance.String(),
			"transactions": string(blob),
			"createdAt":    cust.CreatedAt.Format(time.RFC3339Nano),
			"updatedAt":    cust.UpdatedAt.Format(time.RFC3339Nano),
		})
	}
	return rows
}

// FromRows reconstrói clientes a partir das linhas, aplicando padrões para
// campos ausentes ou inválidos. Nunca falha: cada linha sempre produz um
// cliente.
func (c *Codec) FromRows(rows []Row) []entity.Customer {
	now := time.Now()
	customers := make([]entity.Customer, 0, len(rows))
	for _, row := range rows {
		id := row["id"]
		if id == "" {
			id = uuid.New().String()
		}
		name := row["name"]
		if name == "" {
			name = "Unknown Customer"
		}
		phone := row["phoneNumber"]
		if phone != "" && !entity.ValidPhoneNumber(phone) {
			phone = ""
		}
		balance, err := decimal.NewFromString(row["balance"])
		if err != nil {
			balance = decimal.Zero
		}
		customers = append(customers, entity.Customer{
			ID:           id,
			Name:         name,
			PhoneNumber:  phone,
			Balance:      balance,
			Transactions: c.decodeTransactions(row["transactions"], now),
			CreatedAt:    parseTime(row["createdAt"], now),
			UpdatedAt:    parseTime(row["updatedAt"], now),
		})
	}
	return customers
}

// rawTransaction forma tolerante de um movimento dentro do blob JSON.
// Amount fica como RawMessage para aceitar tanto número quanto string.
type rawTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      json.RawMessage `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

// decodeTransactions decodifica o blob da coluna "transactions". Falhas de
// parse são engolidas (lista vazia + log), nunca propagadas: uma célula
// malformada não pode derrubar a importação da linha.
func (c *Codec) decodeTransactions(blob string, now time.Time) []entity.Transaction {
	if blob == "" {
		return []entity.Transaction{}
	}
	var raw []rawTransaction
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		c.log.Warn().Err(err).Msg("blob de transações ilegível; importando linha sem movimentos")
		return []entity.Transaction{}
	}

	txs := make([]entity.Transaction, 0, len(raw))
	for _, t := range raw {
		id := t.ID
		if id == "" {
			id = uuid.New().String()
		}
		amount := decimal.Zero
		if len(t.Amount) > 0 {
			if err := amount.UnmarshalJSON(t.Amount); err != nil {
				amount = decimal.Zero
			}
		}
		txType := entity.TransactionAdd
		if t.Type == entity.TransactionSubtract {
			txType = entity.TransactionSubtract
		}
		txs = append(txs, entity.Transaction{
			ID:          id,
			Date:        parseTime(t.Date, now),
			Amount:      amount,
			Type:        txType,
			Description: t.Description,
		})
	}
	return txs
}

func parseTime(s string, def time.Time) time.Time {
	if s == "" {
		return def
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts
	}
	return def
}

// readExcel lê a primeira aba de um xlsx/xls; a primeira linha é o cabeçalho.
func (c *Codec) readExcel(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrInvalidFormat
	}
	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, err)
	}
	return tabulate(cells), nil
}

// readCSV lê um csv com cabeçalho na primeira linha. Linhas com contagem de
// campos divergente são aceitas (campos faltantes viram vazios).
func (c *Codec) readCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cells, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidFormat, err)
	}
	return tabulate(cells), nil
}

// tabulate transforma a matriz de células em linhas indexadas pelo cabeçalho.
func tabulate(cells [][]string) []Row {
	if len(cells) == 0 {
		return []Row{}
	}
	header := cells[0]
	rows := make([]Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := Row{}
		for i, h := range header {
			if i < len(line) {
				row[h] = line[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}
