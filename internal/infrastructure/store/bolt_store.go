// Package store implementa o espelho durável da caderneta em bbolt.
//
// O layout persistido é o mesmo do formato original: um único valor JSON com
// a coleção completa de clientes, sob uma chave fixa. Cada Save sobrescreve o
// valor inteiro; não existe persistência parcial nem protocolo de escritores
// concorrentes (last-writer-wins, processo único).
package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/caderneta-app/caderneta-api/internal/domain/entity"
	"github.com/caderneta-app/caderneta-api/internal/domain/repository"
	"github.com/caderneta-app/caderneta-api/pkg/logger"
)

const (
	bucketName = "caderneta"
	// storageKey é a mesma chave usada pelo app original no localStorage,
	// mantida para que exportações antigas continuem reconhecíveis.
	storageKey = "restaurant-customers"
)

var _ repository.CustomerStore = (*BoltStore)(nil)

// BoltStore adaptador de persistência sobre bbolt.
type BoltStore struct {
	db  *bolt.DB
	log *logger.Logger
}

// Open abre (ou cria) o arquivo do banco e garante o bucket.
func Open(path string, log *logger.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("abrir banco local: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("criar bucket: %w", err)
	}

	return &BoltStore{db: db, log: log}, nil
}

// Close fecha o banco.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Save serializa a coleção completa e grava sob a chave fixa, sobrescrevendo
// incondicionalmente qualquer valor anterior.
func (s *BoltStore) Save(customers []entity.Customer) error {
	data, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("serializar clientes: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(storageKey), data)
	})
	if err != nil {
		return fmt.Errorf("gravar clientes: %w", err)
	}
	return nil
}

// Load lê e desserializa a coleção persistida. Chave ausente resulta em
// coleção vazia. Valor corrompido também: é registrado no log e tratado como
// caderneta vazia em vez de derrubar a aplicação.
func (s *BoltStore) Load() ([]entity.Customer, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(storageKey)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ler clientes: %w", err)
	}
	if raw == nil {
		return []entity.Customer{}, nil
	}

	var customers []entity.Customer
	if err := json.Unmarshal(raw, &customers); err != nil {
		s.log.Error().Err(err).Msg("dados persistidos corrompidos; iniciando com caderneta vazia")
		return []entity.Customer{}, nil
	}
	if customers == nil {
		customers = []entity.Customer{}
	}
	return customers, nil
}

// Clear remove a chave por completo.
func (s *BoltStore) Clear() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Delete([]byte(storageKey))
	})
	if err != nil {
		return fmt.Errorf("limpar clientes: %w", err)
	}
	return nil
}
