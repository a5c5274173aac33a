package repository

import (
	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// MovementFilter filtros de listagem da fila de aprovação.
// SubmittedBy vazio = todos os atores (visão administrativa).
// Status vazio = todas as situações.
type MovementFilter struct {
	SubmittedBy string
	Status      string
	Limit       int
	Offset      int
}

// MovementListItem linha de listagem com os dados de exibição do produto.
type MovementListItem struct {
	entity.Movement
	ProductName string
	ProductCode string
	ProductUnit string
}

// MovementRepository porto de persistência dos movimentos pendentes.
// O serviço de fila não mantém estado próprio: toda leitura vai à base.
type MovementRepository interface {
	// Create persiste um movimento PENDENTE e preenche o ID atribuído pela base.
	Create(m *entity.Movement) error
	// GetByID devolve o movimento ou nil se não existir.
	GetByID(id int64) (*entity.Movement, error)
	// GetForUpdate carrega o movimento bloqueando a linha (SELECT FOR UPDATE).
	// Só faz sentido dentro de uma transação; serializa revisores concorrentes.
	GetForUpdate(id int64) (*entity.Movement, error)
	// UpdatePending persiste os campos editáveis, condicionado a status = PENDENTE.
	// Devolve false se o movimento já saiu de PENDENTE (perdeu a corrida).
	UpdatePending(m *entity.Movement) (bool, error)
	// MarkReviewed persiste a transição de revisão (status, revisor, data e,
	// se rejeitado, o motivo), condicionado a status = PENDENTE.
	// Devolve false se outra revisão chegou antes.
	MarkReviewed(m *entity.Movement) (bool, error)
	// List devolve os movimentos segundo o filtro, mais recentes primeiro.
	List(filter MovementFilter) ([]MovementListItem, error)
}
