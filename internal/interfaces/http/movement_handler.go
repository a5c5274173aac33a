package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/estoquepro/estoque-api/internal/application/dto"
	"github.com/estoquepro/estoque-api/internal/application/movements"
	"github.com/estoquepro/estoque-api/internal/domain"
	"github.com/estoquepro/estoque-api/internal/domain/entity"
	"github.com/estoquepro/estoque-api/internal/infrastructure/pdf"
	"github.com/estoquepro/estoque-api/internal/infrastructure/xmlexport"
)

// MovementHandler expõe a fila de movimentos pendentes: lançamento pelo
// entregador, listagens e as ações de revisão do administrador.
type MovementHandler struct {
	svc      *movements.Service
	reporter *pdf.MovementReportGenerator
	exporter *xmlexport.MovementExporter
}

func NewMovementHandler(svc *movements.Service, reporter *pdf.MovementReportGenerator, exporter *xmlexport.MovementExporter) *MovementHandler {
	return &MovementHandler{svc: svc, reporter: reporter, exporter: exporter}
}

func actorFrom(c *fiber.Ctx) movements.Actor {
	return movements.Actor{ID: GetUserID(c), Role: GetRole(c)}
}

// Submit lança um movimento pendente de revisão.
// @Summary Lançar movimento pendente
// @Tags movements
// @Accept json
// @Produce json
// @Param body body dto.SubmitMovementRequest true "Dados do movimento"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/movements/pending [post]
func (h *MovementHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}
	if err := dto.Validate(req); err != nil {
		return writeError(c, err)
	}
	m, err := h.svc.Submit(c.Context(), actorFrom(c), movements.SubmitInput{
		ProductID:  req.ProductID,
		Kind:       req.Kind,
		Quantity:   req.Quantity,
		ReasonCode: req.ReasonCode,
		ReasonNote: req.ReasonNote,
		Note:       req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToResponse(m))
}

// ListMine lista os movimentos lançados pelo próprio usuário.
// @Summary Listar meus movimentos
// @Tags movements
// @Produce json
// @Param status query string false "Filtro de situação (PENDENTE, CONFIRMADO, REJEITADO)"
// @Param limit query int false "Tamanho da página"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} dto.MovementResponse
// @Router /api/movements/pending [get]
func (h *MovementHandler) ListMine(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	items, err := h.svc.ListForActor(c.Context(), actorFrom(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementListToResponse(items))
}

// ListAll lista os movimentos de todos os usuários. Rota de revisão.
// @Summary Listar movimentos (admin)
// @Tags movements
// @Produce json
// @Param status query string false "Filtro de situação"
// @Param limit query int false "Tamanho da página"
// @Param offset query int false "Deslocamento"
// @Success 200 {array} dto.MovementResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/movements/pending/admin [get]
func (h *MovementHandler) ListAll(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_QUERY", Message: "parâmetros de paginação inválidos"})
	}
	page.DefaultPage()
	items, err := h.svc.ListForAdmin(c.Context(), actorFrom(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementListToResponse(items))
}

// Confirm confirma um movimento pendente e lança a baixa no estoque.
// @Summary Confirmar movimento
// @Tags movements
// @Param id path int true "ID do movimento"
// @Success 204
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/movements/pending/{id}/confirm [post]
func (h *MovementHandler) Confirm(c *fiber.Ctx) error {
	id, err := movementID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Confirm(c.Context(), actorFrom(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Edit altera um movimento ainda pendente. Com confirm=true no corpo,
// confirma em seguida; se a confirmação falhar a edição permanece gravada.
// @Summary Editar movimento pendente
// @Tags movements
// @Accept json
// @Param id path int true "ID do movimento"
// @Param body body dto.EditMovementRequest true "Campos a alterar"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/movements/pending/{id}/edit [put]
func (h *MovementHandler) Edit(c *fiber.Ctx) error {
	id, err := movementID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.EditMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}
	if err := dto.Validate(req); err != nil {
		return writeError(c, err)
	}
	patch := entity.MovementPatch{
		ProductID:  req.ProductID,
		Kind:       req.Kind,
		Quantity:   req.Quantity,
		ReasonCode: req.ReasonCode,
		ReasonNote: req.ReasonNote,
		Note:       req.Note,
	}
	actor := actorFrom(c)
	if req.Confirm {
		err = h.svc.EditAndConfirm(c.Context(), actor, id, patch)
	} else {
		err = h.svc.Edit(c.Context(), actor, id, patch)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Reject rejeita um movimento pendente. O motivo é obrigatório.
// @Summary Rejeitar movimento
// @Tags movements
// @Accept json
// @Param id path int true "ID do movimento"
// @Param body body dto.RejectMovementRequest true "Motivo da rejeição"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/movements/pending/{id}/reject [post]
func (h *MovementHandler) Reject(c *fiber.Ctx) error {
	id, err := movementID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req dto.RejectMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BAD_BODY", Message: "corpo da requisição inválido"})
	}
	if err := h.svc.Reject(c.Context(), actorFrom(c), id, req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report gera o relatório PDF dos movimentos.
// @Summary Relatório PDF de movimentos (admin)
// @Tags movements
// @Produce application/pdf
// @Param status query string false "Filtro de situação"
// @Success 200 {file} binary
// @Router /api/movements/pending/admin/report [get]
func (h *MovementHandler) Report(c *fiber.Ctx) error {
	status := c.Query("status")
	items, err := h.svc.ListForAdmin(c.Context(), actorFrom(c), status, 1000, 0)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.reporter.GenerateMovementsReport(items, status)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimentos_%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(data)
}

// Export exporta os movimentos em XML.
// @Summary Exportação XML de movimentos (admin)
// @Tags movements
// @Produce application/xml
// @Param status query string false "Filtro de situação"
// @Success 200 {file} binary
// @Router /api/movements/pending/admin/export [get]
func (h *MovementHandler) Export(c *fiber.Ctx) error {
	status := c.Query("status")
	items, err := h.svc.ListForAdmin(c.Context(), actorFrom(c), status, 1000, 0)
	if err != nil {
		return writeError(c, err)
	}
	data, err := h.exporter.ExportMovements(items, status)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="movimentos_%s.xml"`, time.Now().Format("20060102")))
	return c.Send(data)
}

func movementID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "identificador inválido")
	}
	return id, nil
}
