package repository

import "github.com/caderneta-app/caderneta-api/internal/domain/entity"

// CustomerStore define o porto de persistência da caderneta.
// O store guarda apenas um espelho serializado da coleção completa sob uma
// chave fixa; toda escrita substitui o valor anterior (last-writer-wins).
type CustomerStore interface {
	// Save serializa e grava a coleção inteira, sobrescrevendo o valor anterior.
	Save(customers []entity.Customer) error
	// Load lê a coleção persistida; chave ausente resulta em coleção vazia.
	Load() ([]entity.Customer, error)
	// Clear remove a chave por completo.
	Clear() error
}
