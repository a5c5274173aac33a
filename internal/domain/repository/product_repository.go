package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// ProductRepository porto de persistência do catálogo de produtos.
type ProductRepository interface {
	Create(p *entity.Product) error
	// GetByID devolve o produto ou nil se não existir.
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate carrega o produto bloqueando a linha (SELECT FOR UPDATE).
	// Usado pela baixa de estoque dentro da transação de confirmação.
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock grava a nova quantidade em estoque.
	UpdateStock(id string, qty decimal.Decimal, at time.Time) error
	// List devolve produtos; search filtra por nome/código sem considerar acentos.
	List(search string, limit, offset int) ([]*entity.Product, error)
}
