package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caderneta-app/caderneta-api/internal/application/ledger"
	"github.com/caderneta-app/caderneta-api/internal/domain"
	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

// memStore implementação em memória de repository.CustomerStore que registra
// quantas gravações completas o ledger dispara.
type memStore struct {
	saved   []entity.Customer
	saves   int
	clears  int
	initial []entity.Customer
}

func (s *memStore) Save(customers []entity.Customer) error {
	s.saved = make([]entity.Customer, len(customers))
	copy(s.saved, customers)
	s.saves++
	return nil
}

func (s *memStore) Load() ([]entity.Customer, error) {
	if s.initial == nil {
		return []entity.Customer{}, nil
	}
	return s.initial, nil
}

func (s *memStore) Clear() error {
	s.saved = nil
	s.clears++
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newLedger(t *testing.T) (*ledger.UseCase, *memStore) {
	t.Helper()
	store := &memStore{}
	uc, err := ledger.New(store, testLogger())
	require.NoError(t, err)
	return uc, store
}

func addCustomer(t *testing.T, uc *ledger.UseCase, name, phone string) entity.Customer {
	t.Helper()
	c, err := uc.Add(name, phone)
	require.NoError(t, err)
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Add
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_ClienteNovoComSaldoZero(t *testing.T) {
	uc, store := newLedger(t)

	c := addCustomer(t, uc, "Maria", "34999887766")

	assert.NotEmpty(t, c.ID, "o cliente deve receber um id novo")
	assert.True(t, c.Balance.IsZero(), "o saldo inicial deve ser zero")
	assert.Empty(t, c.Transactions, "o cliente novo não deve ter movimentos")
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt, "createdAt e updatedAt nascem iguais")
	assert.Equal(t, 1, store.saves, "toda mutação dispara uma gravação completa")
}

func TestAdd_NomeVazioRejeitado(t *testing.T) {
	uc, store := newLedger(t)

	_, err := uc.Add("", "34999887766")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, uc.List(), "a coleção deve permanecer intacta")
	assert.Zero(t, store.saves, "validação falha antes de qualquer mutação")
}

func TestAdd_TelefoneInvalidoRejeitado(t *testing.T) {
	uc, _ := newLedger(t)

	casos := []string{"", "123", "abcdefgh", "999-abc-123"}
	for _, telefone := range casos {
		_, err := uc.Add("Maria", telefone)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "telefone %q deve ser rejeitado", telefone)
	}
}

func TestAdd_TelefoneComFormatacaoAceito(t *testing.T) {
	uc, _ := newLedger(t)

	// Dígitos, espaços, +, - e parênteses são permitidos
	_, err := uc.Add("Maria", "+55 (34) 99988-7766")
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddTransaction
// ──────────────────────────────────────────────────────────────────────────────

// O saldo incremental mantido pelo ledger deve sempre coincidir com o
// recálculo completo a partir da lista de movimentos.
func TestAddTransaction_SaldoIncrementalCoincideComRecalculo(t *testing.T) {
	uc, _ := newLedger(t)
	c := addCustomer(t, uc, "Maria", "34999887766")

	movimentos := []struct {
		valor int64
		tipo  string
	}{
		{50, entity.TransactionAdd},
		{20, entity.TransactionSubtract},
		{7, entity.TransactionAdd},
		{13, entity.TransactionSubtract},
		{100, entity.TransactionAdd},
	}

	for _, m := range movimentos {
		atualizado, err := uc.AddTransaction(c.ID, decimal.NewFromInt(m.valor), "", m.tipo)
		require.NoError(t, err)
		assert.True(t, atualizado.Balance.Equal(atualizado.RecomputeBalance()),
			"saldo incremental %s difere do recálculo %s",
			atualizado.Balance, atualizado.RecomputeBalance())
	}

	final, err := uc.GetByID(c.ID)
	require.NoError(t, err)
	assert.True(t, final.Balance.Equal(decimal.NewFromInt(124)), "saldo final deve ser 124, veio %s", final.Balance)
	assert.Len(t, final.Transactions, 5)
}

func TestAddTransaction_ClienteInexistente(t *testing.T) {
	uc, store := newLedger(t)

	_, err := uc.AddTransaction("nao-existe", decimal.NewFromInt(10), "", entity.TransactionAdd)

	assert.ErrorIs(t, err, domain.ErrNotFound, "movimento contra id inexistente deve ser erro explícito, nunca no-op")
	assert.Zero(t, store.saves)
}

func TestAddTransaction_ValorNaoPositivoRejeitado(t *testing.T) {
	uc, _ := newLedger(t)
	c := addCustomer(t, uc, "Maria", "34999887766")

	for _, valor := range []int64{0, -5} {
		_, err := uc.AddTransaction(c.ID, decimal.NewFromInt(valor), "", entity.TransactionAdd)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor %d deve ser rejeitado", valor)
	}
}

func TestAddTransaction_TipoDesconhecidoRejeitado(t *testing.T) {
	uc, _ := newLedger(t)
	c := addCustomer(t, uc, "Maria", "34999887766")

	_, err := uc.AddTransaction(c.ID, decimal.NewFromInt(10), "", "transfer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddTransaction_RenovaUpdatedAt(t *testing.T) {
	uc, _ := newLedger(t)
	c := addCustomer(t, uc, "Maria", "34999887766")

	atualizado, err := uc.AddTransaction(c.ID, decimal.NewFromInt(10), "depósito", entity.TransactionAdd)
	require.NoError(t, err)

	assert.False(t, atualizado.UpdatedAt.Before(c.UpdatedAt))
	require.Len(t, atualizado.Transactions, 1)
	tx := atualizado.Transactions[0]
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "depósito", tx.Description)
	assert.True(t, tx.Amount.IsPositive(), "o valor é sempre guardado como magnitude; a direção vem do tipo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SubstituiRegistro(t *testing.T) {
	uc, _ := newLedger(t)
	c := addCustomer(t, uc, "Maria", "34999887766")

	c.Name = "Maria Silva"
	require.NoError(t, uc.Update(c))

	atualizado, err := uc.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", atualizado.Name)
	assert.False(t, atualizado.UpdatedAt.Before(c.UpdatedAt), "updatedAt deve ser renovado")
}

func TestUpdate_IdInexistenteNoOpSilencioso(t *testing.T) {
	uc, store := newLedger(t)
	addCustomer(t, uc, "Maria", "34999887766")
	antes := store.saves

	err := uc.Update(entity.Customer{ID: "nao-existe", Name: "Fantasma"})

	assert.NoError(t, err, "update de id inexistente é um no-op documentado")
	assert.Equal(t, antes, store.saves, "no-op não dispara persistência")
	assert.Len(t, uc.List(), 1)
}

func TestDelete_RemoveExatamenteUm(t *testing.T) {
	uc, _ := newLedger(t)
	maria := addCustomer(t, uc, "Maria", "34999887766")
	joao := addCustomer(t, uc, "João", "34988776655")
	ana := addCustomer(t, uc, "Ana", "34977665544")

	require.NoError(t, uc.Delete(joao.ID))

	restantes := uc.List()
	require.Len(t, restantes, 2)
	assert.Equal(t, maria.ID, restantes[0].ID, "os demais registros permanecem intactos e em ordem")
	assert.Equal(t, ana.ID, restantes[1].ID)
	for _, c := range restantes {
		assert.NotEqual(t, joao.ID, c.ID)
	}
}

func TestDelete_IdInexistenteNoOpSilencioso(t *testing.T) {
	uc, store := newLedger(t)
	addCustomer(t, uc, "Maria", "34999887766")
	antes := store.saves

	assert.NoError(t, uc.Delete("nao-existe"))
	assert.Equal(t, antes, store.saves)
	assert.Len(t, uc.List(), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReplaceAll / Reset / carga inicial
// ──────────────────────────────────────────────────────────────────────────────

// Importar N clientes sobre M existentes resulta em exatamente N, nunca N+M.
func TestReplaceAll_DescartaColecaoAnterior(t *testing.T) {
	uc, store := newLedger(t)
	addCustomer(t, uc, "Maria", "34999887766")
	addCustomer(t, uc, "João", "34988776655")

	novos := []entity.Customer{
		{ID: "a", Name: "Ana", Balance: decimal.Zero},
		{ID: "b", Name: "Beto", Balance: decimal.Zero},
		{ID: "c", Name: "Carla", Balance: decimal.Zero},
	}
	require.NoError(t, uc.ReplaceAll(novos))

	lista := uc.List()
	require.Len(t, lista, 3)
	assert.Equal(t, "a", lista[0].ID)
	assert.Len(t, store.saved, 3, "o store espelha a coleção adotada")
}

func TestReset_EsvaziaCadernetaELimpaStore(t *testing.T) {
	uc, store := newLedger(t)
	addCustomer(t, uc, "Maria", "34999887766")

	require.NoError(t, uc.Reset())

	assert.Empty(t, uc.List())
	assert.Equal(t, 1, store.clears)
}

func TestNew_CarregaColecaoPersistida(t *testing.T) {
	store := &memStore{initial: []entity.Customer{
		{ID: "x", Name: "Maria", Balance: decimal.NewFromInt(30)},
	}}
	uc, err := ledger.New(store, testLogger())
	require.NoError(t, err)

	lista := uc.List()
	require.Len(t, lista, 1)
	assert.Equal(t, "Maria", lista[0].Name)
	assert.True(t, lista[0].Balance.Equal(decimal.NewFromInt(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cenário de referência: Maria
// ──────────────────────────────────────────────────────────────────────────────

// Começa vazio; adiciona Maria; crédito de 50; débito de 20 → saldo 30 com dois
// movimentos na ordem de inserção.
func TestCenario_MariaDepositoEAlmoco(t *testing.T) {
	uc, store := newLedger(t)

	maria := addCustomer(t, uc, "Maria", "34999887766")
	assert.True(t, maria.Balance.IsZero())

	depois, err := uc.AddTransaction(maria.ID, decimal.NewFromInt(50), "deposit", entity.TransactionAdd)
	require.NoError(t, err)
	assert.True(t, depois.Balance.Equal(decimal.NewFromInt(50)))

	depois, err = uc.AddTransaction(maria.ID, decimal.NewFromInt(20), "lunch", entity.TransactionSubtract)
	require.NoError(t, err)
	assert.True(t, depois.Balance.Equal(decimal.NewFromInt(30)))

	require.Len(t, depois.Transactions, 2)
	assert.Equal(t, "deposit", depois.Transactions[0].Description, "movimentos ficam em ordem de inserção")
	assert.Equal(t, "lunch", depois.Transactions[1].Description)
	assert.True(t, depois.Balance.Equal(depois.RecomputeBalance()))

	require.Len(t, store.saved, 1, "cada mutação espelhou a coleção no store")
	assert.True(t, store.saved[0].Balance.Equal(decimal.NewFromInt(30)))
}
