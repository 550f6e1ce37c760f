// Package ledger implementa o dono único da coleção de clientes da caderneta.
//
// O UseCase mantém a coleção em memória e espelha cada mutação no
// CustomerStore com uma gravação completa (não há persistência incremental).
// Todo acesso passa por um mutex: não existe intercalação de duas mutações
// sobre a mesma coleção, equivalente ao modelo de turno único do app original.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caderneta-app/caderneta-api/internal/domain"
	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/internal/domain/repository"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

// UseCase caso de uso da caderneta: CRUD de clientes e movimentos de saldo.
type UseCase struct {
	mu        sync.Mutex
	customers []entity.Customer
	store     repository.CustomerStore
	log       *logger.Logger
}

// New constrói o caso de uso carregando a coleção persistida.
func New(store repository.CustomerStore, log *logger.Logger) (*UseCase, error) {
	customers, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("carregar caderneta: %w", err)
	}
	log.Info().Int("clientes", len(customers)).Msg("caderneta carregada")
	return &UseCase{customers: customers, store: store, log: log}, nil
}

// List devolve a coleção atual em ordem de inserção.
func (uc *UseCase) List() []entity.Customer {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.Customer, 0, len(uc.customers))
	for _, c := range uc.customers {
		out = append(out, c.Clone())
	}
	return out
}

// GetByID devolve o cliente com o id dado ou domain.ErrNotFound.
func (uc *UseCase) GetByID(id string) (entity.Customer, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, c := range uc.customers {
		if c.ID == id {
			return c.Clone(), nil
		}
	}
	return entity.Customer{}, domain.ErrNotFound
}

// Add cria um cliente novo com saldo zero e nenhum movimento.
// Nome vazio ou telefone fora do formato resultam em domain.ErrInvalidInput
// antes de qualquer mutação.
func (uc *UseCase) Add(name, phoneNumber string) (entity.Customer, error) {
	if name == "" || !entity.ValidPhoneNumber(phoneNumber) {
		return entity.Customer{}, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := entity.Customer{
		ID:           uuid.New().String(),
		Name:         name,
		PhoneNumber:  phoneNumber,
		Balance:      decimal.Zero,
		Transactions: []entity.Transaction{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.customers = append(uc.customers, customer)
	if err := uc.persist(); err != nil {
		return entity.Customer{}, err
	}
	return customer.Clone(), nil
}

// Update substitui o registro com o mesmo id e renova updatedAt.
// Id inexistente é um no-op silencioso.
func (uc *UseCase) Update(customer entity.Customer) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i, c := range uc.customers {
		if c.ID == customer.ID {
			customer.UpdatedAt = time.Now()
			uc.customers[i] = customer.Clone()
			return uc.persist()
		}
	}
	return nil
}

// Delete remove o registro com o id dado. Id inexistente é um no-op silencioso.
func (uc *UseCase) Delete(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i, c := range uc.customers {
		if c.ID == id {
			uc.customers = append(uc.customers[:i], uc.customers[i+1:]...)
			return uc.persist()
		}
	}
	return nil
}

// AddTransaction registra um movimento, ajusta o saldo incrementalmente e
// devolve o cliente atualizado para o chamador refletir o novo estado.
// Valor não positivo ou tipo desconhecido: domain.ErrInvalidInput.
// Cliente inexistente: domain.ErrNotFound (nunca um no-op silencioso).
func (uc *UseCase) AddTransaction(customerID string, amount decimal.Decimal, description, txType string) (entity.Customer, error) {
	if !amount.IsPositive() {
		return entity.Customer{}, domain.ErrInvalidInput
	}
	if txType != entity.TransactionAdd && txType != entity.TransactionSubtract {
		return entity.Customer{}, domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.customers {
		if uc.customers[i].ID != customerID {
			continue
		}
		now := time.Now()
		tx := entity.Transaction{
			ID:          uuid.New().String(),
			Date:        now,
			Amount:      amount,
			Type:        txType,
			Description: description,
		}
		c := &uc.customers[i]
		c.Transactions = append(c.Transactions, tx)
		c.Balance = c.Balance.Add(tx.Signed())
		c.UpdatedAt = now
		if err := uc.persist(); err != nil {
			return entity.Customer{}, err
		}
		return c.Clone(), nil
	}
	return entity.Customer{}, domain.ErrNotFound
}

// ReplaceAll descarta a coleção atual e adota a fornecida por inteiro.
// Usado pela importação em massa: N clientes importados resultam em exatamente
// N clientes, os anteriores descartados.
func (uc *UseCase) ReplaceAll(customers []entity.Customer) error {
	adopted := make([]entity.Customer, 0, len(customers))
	for _, c := range customers {
		adopted = append(adopted, c.Clone())
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.customers = adopted
	return uc.persist()
}

// Reset esvazia a coleção e remove a chave do store.
func (uc *UseCase) Reset() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.customers = []entity.Customer{}
	if err := uc.store.Clear(); err != nil {
		return fmt.Errorf("limpar caderneta: %w", err)
	}
	return nil
}

// persist grava a coleção inteira no store. Chamar com o mutex em mãos.
func (uc *UseCase) persist() error {
	if err := uc.store.Save(uc.customers); err != nil {
		return fmt.Errorf("persistir caderneta: %w", err)
	}
	return nil
}
