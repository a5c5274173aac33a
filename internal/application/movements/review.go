package movements

import (
	"context"
	"strings"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// loadAndAuthorize garante que o movimento existe e que o ator pode revisar.
// NotFound vence Forbidden para ids inexistentes; a transação recarrega a
// linha com lock em seguida.
func (s *Service) loadAndAuthorize(actor Actor, id int64) error {
	m, err := s.movRepo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if !entity.CanReviewMovements(actor.Role) {
		return domain.ErrForbidden
	}
	return nil
}

// Confirm aplica a transição PENDENTE -> CONFIRMADO dentro de uma transação:
// bloqueia a linha do movimento (serializa revisores concorrentes), aplica a
// baixa de estoque e só então persiste a transição. Se a baixa falhar, o
// rollback mantém o movimento PENDENTE e nada é aplicado pela metade.
func (s *Service) Confirm(ctx context.Context, actor Actor, id int64) error {
	if err := s.loadAndAuthorize(actor, id); err != nil {
		return err
	}
	return s.tx.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m, err := movRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := m.Confirm(actor.ID, s.now()); err != nil {
			return err
		}
		// Baixa de estoque antes de persistir a transição: exatamente uma
		// aplicação por confirmação bem-sucedida.
		if err := s.ledger.Apply(productRepo, m.ProductID, m.Kind, m.Quantity); err != nil {
			return err
		}
		applied, err := movRepo.MarkReviewed(m)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrInvalidTransition
		}
		return nil
	})
}

// Edit altera os campos editáveis de um movimento ainda PENDENTE.
// Falha com ErrInvalidTransition se outra revisão chegou antes.
func (s *Service) Edit(ctx context.Context, actor Actor, id int64, patch entity.MovementPatch) error {
	if err := s.loadAndAuthorize(actor, id); err != nil {
		return err
	}
	return s.tx.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		m, err := movRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := m.ApplyPatch(patch); err != nil {
			return err
		}
		if patch.ProductID != nil {
			product, err := productRepo.GetByID(*patch.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NewValidationError("product_id", "produto não encontrado")
			}
		}
		applied, err := movRepo.UpdatePending(m)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrInvalidTransition
		}
		return nil
	})
}

// EditAndConfirm é a composição sequencial de Edit e Confirm em transações
// separadas: a edição é local (metadados) e permanece válida mesmo quando a
// confirmação falha: nesse caso o movimento segue PENDENTE com os campos
// já editados e o erro é devolvido ao chamador.
func (s *Service) EditAndConfirm(ctx context.Context, actor Actor, id int64, patch entity.MovementPatch) error {
	if err := s.Edit(ctx, actor, id, patch); err != nil {
		return err
	}
	return s.Confirm(ctx, actor, id)
}

// Reject aplica a transição PENDENTE -> REJEITADO. O motivo é obrigatório e
// fica gravado junto com revisor e data, como trilha de auditoria.
func (s *Service) Reject(ctx context.Context, actor Actor, id int64, reason string) error {
	if err := s.loadAndAuthorize(actor, id); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return domain.NewValidationError("reason", "motivo da rejeição é obrigatório")
	}
	return s.tx.Run(ctx, func(
		movRepo repository.MovementRepository,
		_ repository.ProductRepository,
	) error {
		m, err := movRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if err := m.Reject(actor.ID, reason, s.now()); err != nil {
			return err
		}
		applied, err := movRepo.MarkReviewed(m)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrInvalidTransition
		}
		return nil
	})
}
