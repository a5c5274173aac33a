// Package xmlexport serializa a listagem de movimentos em XML para
// integração com o ERP da distribuidora.
package xmlexport

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

// MovementExporter gera o documento XML de movimentos usando etree.
type MovementExporter struct{}

// NewMovementExporter constrói o exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// ExportMovements monta o documento e devolve seus bytes indentados.
// statusFilter vazio indica "todas as situações".
func (e *MovementExporter) ExportMovements(items []repository.MovementListItem, statusFilter string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("movimentacoes")
	root.CreateAttr("geradoEm", time.Now().Format(time.RFC3339))
	if statusFilter != "" {
		root.CreateAttr("situacao", statusFilter)
	}
	root.CreateAttr("total", fmt.Sprintf("%d", len(items)))

	for _, it := range items {
		mov := root.CreateElement("movimento")
		mov.CreateAttr("id", fmt.Sprintf("%d", it.ID))

		produto := mov.CreateElement("produto")
		produto.CreateAttr("id", it.ProductID)
		if it.ProductCode != "" {
			produto.CreateElement("codigo").SetText(it.ProductCode)
		}
		if it.ProductName != "" {
			produto.CreateElement("nome").SetText(it.ProductName)
		}
		if it.ProductUnit != "" {
			produto.CreateElement("unidade").SetText(it.ProductUnit)
		}

		mov.CreateElement("tipo").SetText(it.Kind)
		mov.CreateElement("quantidade").SetText(it.Quantity.String())
		mov.CreateElement("motivo").SetText(it.ReasonCode)
		if it.ReasonNote != "" {
			mov.CreateElement("detalheMotivo").SetText(it.ReasonNote)
		}
		if it.Note != "" {
			mov.CreateElement("observacao").SetText(it.Note)
		}
		mov.CreateElement("situacao").SetText(it.Status)

		lanc := mov.CreateElement("lancamento")
		lanc.CreateElement("por").SetText(it.SubmittedBy)
		lanc.CreateElement("em").SetText(it.SubmittedAt.Format(time.RFC3339))

		if it.ReviewedBy != nil && it.ReviewedAt != nil {
			rev := mov.CreateElement("revisao")
			rev.CreateElement("por").SetText(*it.ReviewedBy)
			rev.CreateElement("em").SetText(it.ReviewedAt.Format(time.RFC3339))
			if it.RejectionReason != nil {
				rev.CreateElement("motivoRejeicao").SetText(*it.RejectionReason)
			}
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar movimentos: %w", err)
	}
	return out, nil
}
