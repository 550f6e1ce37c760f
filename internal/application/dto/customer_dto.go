package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// CreateTransactionRequest body para POST /api/customers/:id/transactions.
// Amount aceita número ou string JSON (decimal).
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"` // add | subtract
	Description string          `json:"description,omitempty"`
}

// TransactionResponse movimento em respostas.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
}

// CustomerResponse cliente em respostas.
type CustomerResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	PhoneNumber  string                `json:"phoneNumber"`
	Balance      decimal.Decimal       `json:"balance"`
	Transactions []TransactionResponse `json:"transactions"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ImportResponse resultado de POST /api/customers/import.
type ImportResponse struct {
	Imported int `json:"imported"`
}

// ShareResponse link de compartilhamento via WhatsApp.
type ShareResponse struct {
	URL string `json:"url"`
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromCustomer mapeia a entidade para a resposta.
func FromCustomer(c entity.Customer) CustomerResponse {
	txs := make([]TransactionResponse, 0, len(c.Transactions))
	for _, t := range c.Transactions {
		txs = append(txs, TransactionResponse{
			ID:          t.ID,
			Date:        t.Date,
			Amount:      t.Amount,
			Type:        t.Type,
			Description: t.Description,
		})
	}
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumber:  c.PhoneNumber,
		Balance:      c.Balance,
		Transactions: txs,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromCustomers mapeia a coleção inteira.
func FromCustomers(customers []entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}
