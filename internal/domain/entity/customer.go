package entity

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento na caderneta.
const (
	TransactionAdd      = "add"      // crédito: aumenta o saldo
	TransactionSubtract = "subtract" // débito: diminui o saldo
)

// phonePattern validação frouxa de telefone: dígitos, espaços, +, -, parênteses,
// mínimo 7 caracteres.
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,}$`)

// ValidPhoneNumber indica se o telefone passa na validação de formato.
func ValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Transaction representa um movimento no saldo do cliente.
// Amount é sempre uma magnitude não negativa; a direção vem exclusivamente de Type.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

// Signed devolve o valor do movimento com sinal segundo o tipo.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionSubtract {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Customer representa um cliente com caderneta aberta no estabelecimento.
// As tags JSON seguem o formato persistido/exportado (camelCase).
type Customer struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PhoneNumber  string          `json:"phoneNumber"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"transactions"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RecomputeBalance soma todos os movimentos a partir de zero.
// O saldo incremental mantido pelo ledger deve sempre coincidir com este valor.
func (c Customer) RecomputeBalance() decimal.Decimal {
	total := decimal.Zero
	for _, t := range c.Transactions {
		total = total.Add(t.Signed())
	}
	return total
}

// Clone devolve uma cópia profunda do cliente (slice de movimentos incluso).
func (c Customer) Clone() Customer {
	out := c
	if c.Transactions != nil {
		out.Transactions = make([]Transaction, len(c.Transactions))
		copy(out.Transactions, c.Transactions)
	}
	return out
}
