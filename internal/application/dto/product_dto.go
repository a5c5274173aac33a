package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/estoquepro/estoque-api/internal/domain/entity"
)

// CreateProductRequest body de POST /api/products.
type CreateProductRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	UnitMeasure string `json:"unit_measure" validate:"required"`
}

// ProductResponse representação de um produto nas respostas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Stock       decimal.Decimal `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductToResponse converte a entidade para o formato de resposta.
func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		UnitMeasure: p.UnitMeasure,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
