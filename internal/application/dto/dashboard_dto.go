package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/access"
	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
)

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Capabilities access.Capabilities `json:"capabilities"`
	Filters      batchview.Criteria  `json:"filters"`
	Groups       []DateGroupResponse `json:"groups"`
	Totals       DashboardTotals     `json:"totals"`
}

// DateGroupResponse lotes de un día.
type DateGroupResponse struct {
	Date    string          `json:"date"`  // "2006-01-02"
	Label   string          `json:"label"` // "jueves, 15 de octubre de 2026"
	Batches []BatchResponse `json:"batches"`
}

// DashboardTotals cifras globales; se calculan sobre todos los lotes, sin filtro.
type DashboardTotals struct {
	MoneyToCollect      decimal.Decimal `json:"moneyToCollect"`
	MoneyToCollectLabel string          `json:"moneyToCollectLabel"`
}

// StockCardResponse respuesta de GET /api/stock-card.
type StockCardResponse struct {
	From   string            `json:"from"`
	To     string            `json:"to"`
	View   string            `json:"view"`
	Totals StockCardTotals   `json:"totals"`
	Rows   []StockCardRowDTO `json:"rows"`
}

// StockCardTotals totales del rango.
type StockCardTotals struct {
	Made         int             `json:"made"`
	Sold         int             `json:"sold"`
	Remaining    int             `json:"remaining"`
	Revenue      decimal.Decimal `json:"revenue"`
	RevenueLabel string          `json:"revenueLabel"`
}

// StockCardRowDTO fila de la tarjeta de estiba.
type StockCardRowDTO struct {
	BatchID      string          `json:"batchId"`
	BreadType    string          `json:"breadType"`
	Date         string          `json:"date"`
	QuantityMade int             `json:"quantityMade"`
	Price        decimal.Decimal `json:"price"`
	TotalSold    int             `json:"totalSold"`
	Remaining    int             `json:"remaining"`
	Revenue      decimal.Decimal `json:"revenue"`
}
