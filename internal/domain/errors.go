package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound        = errors.New("cliente não encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnsupportedFile = errors.New("tipo de arquivo não suportado")
	ErrInvalidFormat   = errors.New("planilha inválida")
)
