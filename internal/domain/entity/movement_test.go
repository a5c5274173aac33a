package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

func pendingMovement() *entity.Movement {
	return &entity.Movement{
		ID:          1,
		ProductID:   "42",
		Kind:        entity.MovementKindSaida,
		Quantity:    decimal.NewFromInt(5),
		ReasonCode:  entity.ReasonCarregamento,
		Status:      entity.MovementStatusPendente,
		SubmittedBy: "u1",
		SubmittedAt: time.Now(),
	}
}

func TestConfirm_DePendente_MarcaRevisorEData(t *testing.T) {
	m := pendingMovement()
	at := time.Now()

	require.NoError(t, m.Confirm("admin-1", at))

	assert.Equal(t, entity.MovementStatusConfirmado, m.Status)
	require.NotNil(t, m.ReviewedBy)
	assert.Equal(t, "admin-1", *m.ReviewedBy)
	require.NotNil(t, m.ReviewedAt)
	assert.True(t, m.ReviewedAt.Equal(at))
	assert.Nil(t, m.RejectionReason)
}

func TestConfirm_EmEstadoTerminal_Falha(t *testing.T) {
	for _, status := range []string{entity.MovementStatusConfirmado, entity.MovementStatusRejeitado} {
		m := pendingMovement()
		m.Status = status
		err := m.Confirm("admin-1", time.Now())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition, "status %s deve ser terminal", status)
	}
}

func TestReject_ExigeMotivo(t *testing.T) {
	m := pendingMovement()

	err := m.Reject("admin-1", "   ", time.Now())

	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "reason", vErr.Field)
	// Nada mudou: o movimento segue PENDENTE e sem revisor.
	assert.Equal(t, entity.MovementStatusPendente, m.Status)
	assert.Nil(t, m.ReviewedBy)
	assert.Nil(t, m.RejectionReason)
}

func TestReject_DePendente_GravaMotivoERevisor(t *testing.T) {
	m := pendingMovement()
	at := time.Now()

	require.NoError(t, m.Reject("gestor-1", "quantidade divergente da nota", at))

	assert.Equal(t, entity.MovementStatusRejeitado, m.Status)
	require.NotNil(t, m.RejectionReason)
	assert.Equal(t, "quantidade divergente da nota", *m.RejectionReason)
	require.NotNil(t, m.ReviewedBy)
	assert.Equal(t, "gestor-1", *m.ReviewedBy)
	require.NotNil(t, m.ReviewedAt)
}

func TestReject_EmEstadoTerminal_Falha(t *testing.T) {
	m := pendingMovement()
	require.NoError(t, m.Confirm("admin-1", time.Now()))

	err := m.Reject("admin-1", "tarde demais", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.MovementStatusConfirmado, m.Status)
}

func TestApplyPatch_QuantidadeInvalida_NaoAlteraNada(t *testing.T) {
	m := pendingMovement()
	before := *m
	neg := decimal.NewFromInt(-1)

	err := m.ApplyPatch(entity.MovementPatch{Quantity: &neg})

	require.Error(t, err)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "quantity", vErr.Field)
	assert.Equal(t, before, *m, "patch inválido não pode deixar o movimento meio-editado")
}

func TestApplyPatch_EmEstadoTerminal_Falha(t *testing.T) {
	m := pendingMovement()
	require.NoError(t, m.Confirm("admin-1", time.Now()))
	before := *m

	qty := decimal.NewFromInt(9)
	err := m.ApplyPatch(entity.MovementPatch{Quantity: &qty})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, before, *m)
}

func TestApplyPatch_AlteraCamposInformados(t *testing.T) {
	m := pendingMovement()
	qty := decimal.NewFromInt(8)
	kind := entity.MovementKindEntrada
	reason := entity.ReasonDevolucao
	note := "devolução parcial do cliente"

	require.NoError(t, m.ApplyPatch(entity.MovementPatch{
		Quantity:   &qty,
		Kind:       &kind,
		ReasonCode: &reason,
		ReasonNote: &note,
	}))

	assert.True(t, m.Quantity.Equal(qty))
	assert.Equal(t, entity.MovementKindEntrada, m.Kind)
	assert.Equal(t, entity.ReasonDevolucao, m.ReasonCode)
	assert.Equal(t, note, m.ReasonNote)
	// Campos não informados permanecem.
	assert.Equal(t, "42", m.ProductID)
	assert.Equal(t, entity.MovementStatusPendente, m.Status)
}

func TestValidate_MotivoDesconhecido(t *testing.T) {
	m := pendingMovement()
	m.ReasonCode = "SUMIU"

	err := m.Validate()

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "reason_code", vErr.Field)
}
