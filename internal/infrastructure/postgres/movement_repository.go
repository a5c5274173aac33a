package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação de MovementRepository sobre PostgreSQL (usável com pool ou tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de movimentos. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, product_id, kind, quantity, reason_code, reason_note, note, status,
	submitted_by, submitted_at, reviewed_by, reviewed_at, rejection_reason`

// Create persiste um movimento PENDENTE e preenche o ID da sequência.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO pending_movements (product_id, kind, quantity, reason_code, reason_note, note, status, submitted_by, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.ProductID, m.Kind, m.Quantity, m.ReasonCode, m.ReasonNote, m.Note,
		m.Status, m.SubmittedBy, m.SubmittedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID, ou nil se não existir.
func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM pending_movements WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtém o movimento bloqueando a linha (SELECT FOR UPDATE).
// Chamar apenas dentro de transação; serializa revisores concorrentes.
func (r *MovementRepo) GetForUpdate(id int64) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM pending_movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.ReasonCode, &m.ReasonNote, &m.Note,
		&m.Status, &m.SubmittedBy, &m.SubmittedAt, &m.ReviewedBy, &m.ReviewedAt, &m.RejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// UpdatePending persiste os campos editáveis condicionado a status = PENDENTE.
// Devolve false quando o movimento já saiu de PENDENTE (update condicional, zero linhas).
func (r *MovementRepo) UpdatePending(m *entity.Movement) (bool, error) {
	query := `
		UPDATE pending_movements
		SET product_id = $2, kind = $3, quantity = $4, reason_code = $5, reason_note = $6, note = $7
		WHERE id = $1 AND status = $8`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.ReasonCode, m.ReasonNote, m.Note,
		entity.MovementStatusPendente,
	)
	if err != nil {
		return false, fmt.Errorf("update pending movement: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// MarkReviewed persiste a transição de revisão condicionada a status = PENDENTE.
// Devolve false quando outra revisão chegou antes.
func (r *MovementRepo) MarkReviewed(m *entity.Movement) (bool, error) {
	query := `
		UPDATE pending_movements
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5
		WHERE id = $1 AND status = $6`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.Status, m.ReviewedBy, m.ReviewedAt, m.RejectionReason,
		entity.MovementStatusPendente,
	)
	if err != nil {
		return false, fmt.Errorf("mark movement reviewed: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List devolve movimentos segundo o filtro, mais recentes primeiro, com os
// dados de exibição do produto (LEFT JOIN: o produto pode ter sido removido).
func (r *MovementRepo) List(filter repository.MovementFilter) ([]repository.MovementListItem, error) {
	query := `
		SELECT m.id, m.product_id, m.kind, m.quantity, m.reason_code, m.reason_note, m.note, m.status,
			m.submitted_by, m.submitted_at, m.reviewed_by, m.reviewed_at, m.rejection_reason,
			COALESCE(p.name, ''), COALESCE(p.code, ''), COALESCE(p.unit_measure, '')
		FROM pending_movements m
		LEFT JOIN products p ON p.id = m.product_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.SubmittedBy != "" {
		query += fmt.Sprintf(" AND m.submitted_by = $%d", pos)
		args = append(args, filter.SubmittedBy)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND m.status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY m.submitted_at DESC, m.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var items []repository.MovementListItem
	for rows.Next() {
		var it repository.MovementListItem
		if err := rows.Scan(
			&it.ID, &it.ProductID, &it.Kind, &it.Quantity, &it.ReasonCode, &it.ReasonNote, &it.Note,
			&it.Status, &it.SubmittedBy, &it.SubmittedAt, &it.ReviewedBy, &it.ReviewedAt, &it.RejectionReason,
			&it.ProductName, &it.ProductCode, &it.ProductUnit,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
