package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do catálogo da distribuidora.
// Stock é a quantidade atual em estoque; só muda via confirmação de movimentos.
type Product struct {
	ID          string
	Code        string // código interno único
	Name        string
	UnitMeasure string          // UN, CX, KG, L...
	Stock       decimal.Decimal // quantidade atual
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
