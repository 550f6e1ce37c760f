// Package share monta o link de compartilhamento do saldo via WhatsApp.
//
// É formatação pura: nenhuma chamada de rede acontece aqui. O link produzido
// tem a forma https://wa.me/+<país><dígitos>?text=<mensagem-codificada>, com a
// mensagem combinando o nome do cliente, o saldo atual e os 5 movimentos mais
// recentes.
package share

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
)

const (
	waBaseURL = "https://wa.me"
	// maxRecentTransactions quantos movimentos entram na mensagem.
	maxRecentTransactions = 5
)

var nonDigits = regexp.MustCompile(`\D`)

// printer formata moeda no mesmo padrão do app original (Intl en-US, USD).
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formata o valor como moeda com duas casas e separador de
// milhar, ex.: $1,234.50.
func FormatCurrency(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return printer.Sprintf("$%v", number.Decimal(f, number.Scale(2)))
}

// FormatDate formata a data no padrão legível do app original,
// ex.: Nov 29, 2023, 02:30 PM.
func FormatDate(t entity.Transaction) string {
	return t.Date.Format("Jan 2, 2006, 03:04 PM")
}

// WhatsAppURL monta o deep link de compartilhamento para o cliente.
// countryCode é o prefixo de país anteposto ao telefone (ex.: "55").
func WhatsAppURL(customer entity.Customer, countryCode string) string {
	recent := recentTransactions(customer.Transactions)

	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s, seu saldo é %s.\n\n", customer.Name, FormatCurrency(customer.Balance))
	if len(recent) > 0 {
		b.WriteString("Transações recentes:\n")
		for i, tx := range recent {
			prefix := "+"
			if tx.Type == entity.TransactionSubtract {
				prefix = "-"
			}
			fmt.Fprintf(&b, "%d. %s: %s%s - %s\n",
				i+1, FormatDate(tx), prefix, FormatCurrency(tx.Amount.Abs()), tx.Description)
		}
	}

	digits := nonDigits.ReplaceAllString(customer.PhoneNumber, "")
	return fmt.Sprintf("%s/+%s%s?text=%s", waBaseURL, countryCode, digits, url.QueryEscape(b.String()))
}

// recentTransactions devolve até maxRecentTransactions movimentos, ordenados
// por data decrescente. Opera sobre uma cópia, nunca reordena o original.
func recentTransactions(txs []entity.Transaction) []entity.Transaction {
	sorted := make([]entity.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > maxRecentTransactions {
		sorted = sorted[:maxRecentTransactions]
	}
	return sorted
}
