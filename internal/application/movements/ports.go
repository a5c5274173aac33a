package movements

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade entre a baixa de
// estoque e a transição de situação do movimento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// LedgerApplier aplica um movimento confirmado sobre o estoque do produto.
// Recebe o repositório de produtos atado à transação corrente: em caso de
// falha, o rollback desfaz tudo e o movimento permanece PENDENTE.
type LedgerApplier interface {
	Apply(productRepo repository.ProductRepository, productID, kind string, qty decimal.Decimal) error
}
