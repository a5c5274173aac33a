package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// Applier aplica movimentos confirmados sobre a quantidade em estoque do
// produto, dentro da transação do chamador. ENTRADA soma, SAIDA subtrai e
// falha se não houver estoque suficiente. A linha do produto é bloqueada
// (SELECT FOR UPDATE) para serializar confirmações concorrentes sobre o
// mesmo produto.
type Applier struct{}

// NewApplier constrói o aplicador de estoque.
func NewApplier() *Applier { return &Applier{} }

// Apply efetua a baixa (ou entrada) no estoque. Qualquer falha é devolvida
// embrulhando domain.ErrLedgerApplication para que o chamador saiba que nada
// foi aplicado e o movimento deve permanecer PENDENTE.
func (a *Applier) Apply(productRepo repository.ProductRepository, productID, kind string, qty decimal.Decimal) error {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerApplication, err)
	}
	if product == nil {
		// Produto removido entre o lançamento e a confirmação.
		return fmt.Errorf("%w: produto %s não existe mais", domain.ErrLedgerApplication, productID)
	}

	var newQty decimal.Decimal
	switch kind {
	case entity.MovementKindEntrada:
		newQty = product.Stock.Add(qty)
	case entity.MovementKindSaida:
		if product.Stock.LessThan(qty) {
			return fmt.Errorf("%w: %w", domain.ErrLedgerApplication, domain.ErrInsufficientStock)
		}
		newQty = product.Stock.Sub(qty)
	default:
		return fmt.Errorf("%w: tipo de movimento desconhecido %q", domain.ErrLedgerApplication, kind)
	}

	if err := productRepo.UpdateStock(product.ID, newQty, time.Now()); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerApplication, err)
	}
	return nil
}
