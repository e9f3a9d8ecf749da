package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/finance"
	"github.com/jhoicas/panaderia-api/pkg/money"
)

// CreateBatchRequest body para POST /api/batches.
// Price y QuantityMade aceptan número o texto; Date es "YYYY-MM-DD" u RFC3339 (vacío = hoy).
type CreateBatchRequest struct {
	BreadType    string      `json:"breadType" validate:"required,max=120"`
	QuantityMade FlexInt     `json:"quantityMade"`
	Price        FlexDecimal `json:"price"`
	Date         string      `json:"date"`
}

// UpdateBatchDateRequest body para PATCH /api/batches/:id/date.
type UpdateBatchDateRequest struct {
	Date string `json:"date" validate:"required"`
}

// CreateSaleRequest body para POST /api/batches/:id/sales.
type CreateSaleRequest struct {
	PersonName   string  `json:"personName" validate:"required,max=120"`
	QuantitySold FlexInt `json:"quantitySold"`
	IsPaid       bool    `json:"isPaid"`
	IsDelivered  bool    `json:"isDelivered"`
	IsGift       bool    `json:"isGift"`
}

// UpdateSaleRequest body para PATCH /api/batches/:id/sales/:saleId. Solo se aplican los campos presentes.
type UpdateSaleRequest struct {
	PersonName  *string `json:"personName" validate:"omitempty,min=1,max=120"`
	IsPaid      *bool   `json:"isPaid"`
	IsDelivered *bool   `json:"isDelivered"`
	IsGift      *bool   `json:"isGift"`
}

// SaleResponse una venta con su monto ya calculado.
type SaleResponse struct {
	ID           string          `json:"id"`
	PersonName   string          `json:"personName"`
	QuantitySold int             `json:"quantitySold"`
	IsPaid       bool            `json:"isPaid"`
	IsDelivered  bool            `json:"isDelivered"`
	IsGift       bool            `json:"isGift"`
	Amount       decimal.Decimal `json:"amount"`
	Outstanding  decimal.Decimal `json:"outstanding"` // lo que falta cobrar de esta venta
	CreatedAt    time.Time       `json:"createdAt"`
}

// BatchResponse un lote con sus ventas y cifras.
type BatchResponse struct {
	ID            string          `json:"id"`
	BreadType     string          `json:"breadType"`
	QuantityMade  int             `json:"quantityMade"`
	Price         decimal.Decimal `json:"price"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"createdBy"`
	Sales         []SaleResponse  `json:"sales"`
	TotalSold     int             `json:"totalSold"`
	Remaining     int             `json:"remaining"`
	Revenue       decimal.Decimal `json:"revenue"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
}

// ToBatchResponse calcula las cifras sobre las ventas que trae b y redondea los montos.
func ToBatchResponse(b entity.Batch) BatchResponse {
	return ToBatchResponseWithFigures(b, finance.Summarize(b))
}

// ToBatchResponseWithFigures usa cifras ya calculadas.
func ToBatchResponseWithFigures(b entity.Batch, f finance.Figures) BatchResponse {
	sales := make([]SaleResponse, 0, len(b.Sales))
	for _, sale := range b.Sales {
		sales = append(sales, ToSaleResponse(sale, b.Price))
	}
	return BatchResponse{
		ID:            b.ID,
		BreadType:     b.BreadType,
		QuantityMade:  b.QuantityMade,
		Price:         money.Round2(b.Price),
		Date:          b.Date,
		CreatedBy:     b.CreatedBy,
		Sales:         sales,
		TotalSold:     f.TotalSold,
		Remaining:     f.DisplayRemaining,
		Revenue:       money.Round2(f.Revenue),
		PendingAmount: money.Round2(f.PendingAmount),
	}
}

// ToSaleResponse calcula el monto de la venta al precio del lote.
func ToSaleResponse(s entity.Sale, price decimal.Decimal) SaleResponse {
	amount := finance.SaleAmount(s, price)
	outstanding := decimal.Zero
	if !s.IsPaid && !s.IsGift {
		outstanding = amount
	}
	return SaleResponse{
		ID:           s.ID,
		PersonName:   s.PersonName,
		QuantitySold: s.QuantitySold,
		IsPaid:       s.IsPaid,
		IsDelivered:  s.IsDelivered,
		IsGift:       s.IsGift,
		Amount:       money.Round2(amount),
		Outstanding:  money.Round2(outstanding),
		CreatedAt:    s.CreatedAt,
	}
}
