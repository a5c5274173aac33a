package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain"
)

// Situações de um movimento pendente (valores de fio, preservados em português).
const (
	MovementStatusPendente   = "PENDENTE"
	MovementStatusConfirmado = "CONFIRMADO"
	MovementStatusRejeitado  = "REJEITADO"
)

// Tipos de movimento.
const (
	MovementKindEntrada = "ENTRADA"
	MovementKindSaida   = "SAIDA"
)

// Motivos padronizados de movimentação.
const (
	ReasonCarregamento         = "CARREGAMENTO"
	ReasonDevolucao            = "DEVOLUCAO"
	ReasonAjusteFisico         = "AJUSTE_FISICO"
	ReasonPerdaAvaria          = "PERDA_AVARIA"
	ReasonTransferenciaInterna = "TRANSFERENCIA_INTERNA"
)

// ValidMovementStatus verifica se a situação é uma das conhecidas.
func ValidMovementStatus(status string) bool {
	switch status {
	case MovementStatusPendente, MovementStatusConfirmado, MovementStatusRejeitado:
		return true
	}
	return false
}

// ValidMovementKind verifica se o tipo é ENTRADA ou SAIDA.
func ValidMovementKind(kind string) bool {
	return kind == MovementKindEntrada || kind == MovementKindSaida
}

// ValidReasonCode verifica se o motivo é um dos códigos padronizados.
func ValidReasonCode(code string) bool {
	switch code {
	case ReasonCarregamento, ReasonDevolucao, ReasonAjusteFisico,
		ReasonPerdaAvaria, ReasonTransferenciaInterna:
		return true
	}
	return false
}

// Movement representa um movimento de estoque lançado por um entregador e
// sujeito a aprovação de um administrador antes de afetar o inventário.
//
// Ciclo de vida: criado PENDENTE; editável apenas enquanto PENDENTE;
// CONFIRMADO e REJEITADO são terminais. Nunca é excluído (trilha de auditoria).
type Movement struct {
	ID              int64
	ProductID       string
	Kind            string // ENTRADA | SAIDA
	Quantity        decimal.Decimal
	ReasonCode      string
	ReasonNote      string
	Note            string
	Status          string // PENDENTE | CONFIRMADO | REJEITADO
	SubmittedBy     string
	SubmittedAt     time.Time
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
}

// MovementPatch campos editáveis enquanto o movimento está PENDENTE.
// Campos nil permanecem inalterados.
type MovementPatch struct {
	ProductID  *string
	Kind       *string
	Quantity   *decimal.Decimal
	ReasonCode *string
	ReasonNote *string
	Note       *string
}

// IsPending informa se o movimento ainda aguarda revisão.
func (m *Movement) IsPending() bool {
	return m.Status == MovementStatusPendente
}

// Validate confere os invariantes de um movimento recém-lançado.
func (m *Movement) Validate() error {
	if m.ProductID == "" {
		return domain.NewValidationError("product_id", "obrigatório")
	}
	if !ValidMovementKind(m.Kind) {
		return domain.NewValidationError("kind", "deve ser ENTRADA ou SAIDA")
	}
	if !m.Quantity.GreaterThan(decimal.Zero) {
		return domain.NewValidationError("quantity", "deve ser maior que zero")
	}
	if !ValidReasonCode(m.ReasonCode) {
		return domain.NewValidationError("reason_code", "código de motivo desconhecido")
	}
	return nil
}

// ApplyPatch aplica uma edição a um movimento PENDENTE, revalidando os
// invariantes após a alteração. Em movimento terminal devolve ErrInvalidTransition
// sem alterar nada.
func (m *Movement) ApplyPatch(p MovementPatch) error {
	if !m.IsPending() {
		return domain.ErrInvalidTransition
	}
	// Valida sobre uma cópia para não deixar o movimento meio-editado.
	edited := *m
	if p.ProductID != nil {
		edited.ProductID = *p.ProductID
	}
	if p.Kind != nil {
		edited.Kind = *p.Kind
	}
	if p.Quantity != nil {
		edited.Quantity = *p.Quantity
	}
	if p.ReasonCode != nil {
		edited.ReasonCode = *p.ReasonCode
	}
	if p.ReasonNote != nil {
		edited.ReasonNote = *p.ReasonNote
	}
	if p.Note != nil {
		edited.Note = *p.Note
	}
	if err := edited.Validate(); err != nil {
		return err
	}
	*m = edited
	return nil
}

// Confirm aplica a transição PENDENTE -> CONFIRMADO, marcando revisor e data.
// A baixa no estoque é responsabilidade do chamador, ANTES de persistir a transição.
func (m *Movement) Confirm(reviewerID string, at time.Time) error {
	if !m.IsPending() {
		return domain.ErrInvalidTransition
	}
	m.Status = MovementStatusConfirmado
	m.ReviewedBy = &reviewerID
	m.ReviewedAt = &at
	return nil
}

// Reject aplica a transição PENDENTE -> REJEITADO. O motivo é obrigatório.
func (m *Movement) Reject(reviewerID, reason string, at time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return domain.NewValidationError("reason", "motivo da rejeição é obrigatório")
	}
	if !m.IsPending() {
		return domain.ErrInvalidTransition
	}
	m.Status = MovementStatusRejeitado
	m.ReviewedBy = &reviewerID
	m.ReviewedAt = &at
	m.RejectionReason = &reason
	return nil
}
