package repository

import (
	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// UserRepository porto de persistência de usuários.
type UserRepository interface {
	Create(u *entity.User) error
	// GetByID devolve o usuário ou nil se não existir.
	GetByID(id string) (*entity.User, error)
	// GetByEmail devolve o usuário ou nil se não existir.
	GetByEmail(email string) (*entity.User, error)
}
