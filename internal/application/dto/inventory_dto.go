package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplyRequest body para POST /api/inventory.
type CreateSupplyRequest struct {
	Name     string      `json:"name" validate:"required,max=120"`
	Quantity FlexDecimal `json:"quantity"`
	Unit     string      `json:"unit" validate:"required,max=20"`
}

// UpdateSupplyRequest body para PATCH /api/inventory/:id: cantidad a sumar (o restar si es negativa).
type UpdateSupplyRequest struct {
	Change FlexDecimal `json:"change"`
}

// SupplyResponse un insumo.
type SupplyResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SupplyLogResponse una entrada del historial de un insumo.
type SupplyLogResponse struct {
	ID             string          `json:"id"`
	ChangeAmount   decimal.Decimal `json:"change_amount"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}
