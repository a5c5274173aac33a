package movements

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// Actor identidade do chamador (extraída do token pelo middleware de auth).
type Actor struct {
	ID   string
	Role string
}

// Service é a fila de revisão de movimentos pendentes: lançamento pelo
// entregador, listagens filtradas e as operações de revisão do administrador
// (confirmar, editar, editar-e-confirmar, rejeitar).
//
// O serviço não guarda estado próprio; toda leitura vai ao repositório e a
// atomicidade das transições vem do update condicional da base.
type Service struct {
	tx          TxRunner
	movRepo     repository.MovementRepository // atado ao pool, para leituras e criação
	productRepo repository.ProductRepository  // atado ao pool, para validação de lançamento
	ledger      LedgerApplier
	now         func() time.Time
}

// NewService constrói o serviço da fila de aprovação.
func NewService(tx TxRunner, movRepo repository.MovementRepository, productRepo repository.ProductRepository, ledger LedgerApplier) *Service {
	return &Service{
		tx:          tx,
		movRepo:     movRepo,
		productRepo: productRepo,
		ledger:      ledger,
		now:         time.Now,
	}
}

// SubmitInput entrada para lançar um movimento pendente.
type SubmitInput struct {
	ProductID  string
	Kind       string
	Quantity   decimal.Decimal
	ReasonCode string
	ReasonNote string
	Note       string
}

// Submit valida e cria um movimento PENDENTE pertencente ao ator.
// Nenhum registro é criado quando a validação falha.
func (s *Service) Submit(ctx context.Context, actor Actor, in SubmitInput) (*entity.Movement, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	m := &entity.Movement{
		ProductID:   in.ProductID,
		Kind:        in.Kind,
		Quantity:    in.Quantity,
		ReasonCode:  in.ReasonCode,
		ReasonNote:  in.ReasonNote,
		Note:        in.Note,
		Status:      entity.MovementStatusPendente,
		SubmittedBy: actor.ID,
		SubmittedAt: s.now(),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := s.movRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListForActor lista os movimentos lançados pelo próprio ator,
// opcionalmente filtrados por situação.
func (s *Service) ListForActor(ctx context.Context, actor Actor, status string, limit, offset int) ([]repository.MovementListItem, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validStatusFilter(status); err != nil {
		return nil, err
	}
	return s.movRepo.List(repository.MovementFilter{
		SubmittedBy: actor.ID,
		Status:      status,
		Limit:       limit,
		Offset:      offset,
	})
}

// ListForAdmin lista os movimentos de todos os atores. Exige papel de revisão.
func (s *Service) ListForAdmin(ctx context.Context, actor Actor, status string, limit, offset int) ([]repository.MovementListItem, error) {
	if !entity.CanReviewMovements(actor.Role) {
		return nil, domain.ErrForbidden
	}
	if err := validStatusFilter(status); err != nil {
		return nil, err
	}
	return s.movRepo.List(repository.MovementFilter{
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
}

// validStatusFilter aceita filtro vazio (todas as situações) ou um valor conhecido.
func validStatusFilter(status string) error {
	if status == "" || entity.ValidMovementStatus(status) {
		return nil
	}
	return domain.NewValidationError("status", "situação desconhecida")
}
