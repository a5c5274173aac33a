// Package pdf gera o relatório de movimentações de estoque para a visão
// administrativa (fila de aprovação), em página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + filtro de situação + data de emissão       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: # | Produto | Tipo | Qtd | Motivo | Situação        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: total de registros                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/estoquepro/estoque-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 18, Green: 75, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MovementReportGenerator gera o PDF da listagem de movimentos usando Maroto v2.
type MovementReportGenerator struct{}

// NewMovementReportGenerator constrói o gerador.
func NewMovementReportGenerator() *MovementReportGenerator { return &MovementReportGenerator{} }

// GenerateMovementsReport gera o PDF e devolve seus bytes.
// statusFilter vazio indica "todas as situações".
func (g *MovementReportGenerator) GenerateMovementsReport(items []repository.MovementListItem, statusFilter string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Movimentações de Estoque", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(statusFilter))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, it := range items {
		m.AddRows(movementRow(it))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(totalRow(len(items)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título à esquerda, filtro e data de emissão à direita.
func headerRow(statusFilter string) core.Row {
	filtro := statusFilter
	if filtro == "" {
		filtro = "TODAS"
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("MOVIMENTAÇÕES DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fila de aprovação", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Situação: "+filtro, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Emitido em: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabeçalho da tabela de movimentos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Produto", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Qtd", 1, align.Right),
		h("Motivo", 3, align.Left),
		h("Situação", 2, align.Center),
	)
}

// movementRow: uma linha por movimento.
func movementRow(it repository.MovementListItem) core.Row {
	produto := it.ProductName
	if it.ProductCode != "" {
		produto = fmt.Sprintf("%s (%s)", it.ProductName, it.ProductCode)
	}
	if produto == "" || produto == " ()" {
		produto = it.ProductID
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", it.ID),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(4).Add(text.New(produto, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(it.Kind, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(
			it.Quantity.String(),
			props.Text{Size: 8, Align: align.Right, Top: 1},
		)),
		col.New(3).Add(text.New(it.ReasonCode, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(it.Status, props.Text{Size: 8, Align: align.Center, Top: 1})),
	)
}

// totalRow: total de registros no rodapé.
func totalRow(count int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total de registros: %d", count),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2},
		)),
	)
}
