package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// SubmitMovementRequest body de POST /api/movements/pending.
type SubmitMovementRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	Kind       string          `json:"kind" validate:"required,oneof=ENTRADA SAIDA"`
	Quantity   decimal.Decimal `json:"quantity"`
	ReasonCode string          `json:"reason_code" validate:"required"`
	ReasonNote string          `json:"reason_note,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// EditMovementRequest body de PUT /api/movements/pending/:id/edit.
// Campos ausentes não são alterados. Confirm=true edita e confirma em sequência;
// se a baixa de estoque falhar, a edição permanece e a situação segue PENDENTE.
type EditMovementRequest struct {
	ProductID  *string          `json:"product_id,omitempty"`
	Kind       *string          `json:"kind,omitempty" validate:"omitempty,oneof=ENTRADA SAIDA"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	ReasonCode *string          `json:"reason_code,omitempty"`
	ReasonNote *string          `json:"reason_note,omitempty"`
	Note       *string          `json:"note,omitempty"`
	Confirm    bool             `json:"confirm,omitempty"`
}

// RejectMovementRequest body de POST /api/movements/pending/:id/reject.
type RejectMovementRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// MovementResponse representação de um movimento nas respostas da API.
type MovementResponse struct {
	ID              int64           `json:"id"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	ProductCode     string          `json:"product_code,omitempty"`
	ProductUnit     string          `json:"product_unit,omitempty"`
	Kind            string          `json:"kind"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReasonCode      string          `json:"reason_code"`
	ReasonNote      string          `json:"reason_note,omitempty"`
	Note            string          `json:"note,omitempty"`
	Status          string          `json:"status"`
	SubmittedBy     string          `json:"submitted_by"`
	SubmittedAt     time.Time       `json:"submitted_at"`
	ReviewedBy      *string         `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
}

// MovementToResponse converte a entidade para o formato de resposta.
func MovementToResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		ProductID:       m.ProductID,
		Kind:            m.Kind,
		Quantity:        m.Quantity,
		ReasonCode:      m.ReasonCode,
		ReasonNote:      m.ReasonNote,
		Note:            m.Note,
		Status:          m.Status,
		SubmittedBy:     m.SubmittedBy,
		SubmittedAt:     m.SubmittedAt,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		RejectionReason: m.RejectionReason,
	}
}

// MovementItemToResponse converte uma linha de listagem (com dados do produto).
func MovementItemToResponse(it repository.MovementListItem) MovementResponse {
	resp := MovementToResponse(&it.Movement)
	resp.ProductName = it.ProductName
	resp.ProductCode = it.ProductCode
	resp.ProductUnit = it.ProductUnit
	return resp
}

// MovementListToResponse converte a listagem completa.
func MovementListToResponse(items []repository.MovementListItem) []MovementResponse {
	out := make([]MovementResponse, 0, len(items))
	for _, it := range items {
		out = append(out, MovementItemToResponse(it))
	}
	return out
}
