package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrForbidden          = errors.New("acesso negado")
	ErrInvalidTransition  = errors.New("transição de situação inválida")
	ErrLedgerApplication  = errors.New("falha ao aplicar o movimento no estoque")
	ErrInsufficientStock  = errors.New("estoque insuficiente")
)

// ValidationError indica entrada malformada apontando o campo rejeitado.
// Desembrulha para ErrInvalidInput, então errors.Is(err, ErrInvalidInput) continua válido.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError constrói um erro de validação para o campo dado.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
