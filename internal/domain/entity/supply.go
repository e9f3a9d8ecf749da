package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply es un insumo del inventario de la panadería (harina, levadura, ...).
type Supply struct {
	ID        string
	Name      string
	Quantity  decimal.Decimal
	Unit      string // kg, g, l, unidades
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupplyLog registra cada cambio de cantidad de un insumo.
type SupplyLog struct {
	ID             string
	SupplyID       string
	ChangeAmount   decimal.Decimal // positivo = ingreso, negativo = consumo
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	CreatedBy      string
	CreatedAt      time.Time
}
