package share_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/internal/domain/share"
)

func sampleCustomer(txCount int) entity.Customer {
	base := time.Date(2023, 11, 29, 14, 30, 0, 0, time.UTC)
	txs := make([]entity.Transaction, 0, txCount)
	for i := 0; i < txCount; i++ {
		txs = append(txs, entity.Transaction{
			ID:          fmt.Sprintf("t%d", i),
			Date:        base.Add(time.Duration(i) * time.Hour),
			Amount:      decimal.NewFromInt(int64(10 + i)),
			Type:        entity.TransactionAdd,
			Description: fmt.Sprintf("compra %d", i),
		})
	}
	return entity.Customer{
		ID:           "c1",
		Name:         "Maria",
		PhoneNumber:  "(34) 99988-7766",
		Balance:      decimal.NewFromInt(30),
		Transactions: txs,
	}
}

// decodedMessage extrai e decodifica o parâmetro text do link gerado.
func decodedMessage(t *testing.T, rawURL string) string {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return u.Query().Get("text")
}

func TestWhatsAppURL_FormatoDoLink(t *testing.T) {
	got := share.WhatsAppURL(sampleCustomer(0), "55")

	assert.True(t, strings.HasPrefix(got, "https://wa.me/+5534999887766?text="),
		"o telefone deve perder tudo que não é dígito e ganhar o prefixo de país: %s", got)
}

func TestWhatsAppURL_MensagemComSaldo(t *testing.T) {
	msg := decodedMessage(t, share.WhatsAppURL(sampleCustomer(0), "55"))

	assert.Contains(t, msg, "Olá Maria, seu saldo é $30.00.")
	assert.NotContains(t, msg, "Transações recentes", "sem movimentos não há seção de recentes")
}

func TestWhatsAppURL_ListaAte5MaisRecentes(t *testing.T) {
	msg := decodedMessage(t, share.WhatsAppURL(sampleCustomer(7), "55"))

	assert.Contains(t, msg, "Transações recentes:")
	// Os 5 mais recentes (6..2), em ordem decrescente de data
	assert.Contains(t, msg, "1. ")
	assert.Contains(t, msg, "5. ")
	assert.NotContains(t, msg, "6. ", "apenas 5 movimentos entram na mensagem")
	assert.Contains(t, msg, "compra 6", "o mais recente vem primeiro")
	assert.NotContains(t, msg, "compra 1", "os mais antigos ficam de fora")
	assert.NotContains(t, msg, "compra 0")
}

func TestWhatsAppURL_DirecaoNoPrefixoDoValor(t *testing.T) {
	c := sampleCustomer(0)
	c.Transactions = []entity.Transaction{
		{ID: "t1", Date: time.Now(), Amount: decimal.NewFromInt(50), Type: entity.TransactionAdd, Description: "deposit"},
		{ID: "t2", Date: time.Now().Add(time.Hour), Amount: decimal.NewFromInt(20), Type: entity.TransactionSubtract, Description: "lunch"},
	}

	msg := decodedMessage(t, share.WhatsAppURL(c, "55"))

	assert.Contains(t, msg, "+$50.00 - deposit")
	assert.Contains(t, msg, "-$20.00 - lunch")
}

func TestFormatCurrency_DuasCasasESeparadorDeMilhar(t *testing.T) {
	assert.Equal(t, "$30.00", share.FormatCurrency(decimal.NewFromInt(30)))
	assert.Equal(t, "$1,234.50", share.FormatCurrency(decimal.RequireFromString("1234.5")))
}
