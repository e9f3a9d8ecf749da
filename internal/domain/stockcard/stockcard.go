// Package stockcard arma la tarjeta de estiba: producción, ventas e ingresos de
// los lotes de un rango de días.
package stockcard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/finance"
)

// Vistas de la tabla.
const (
	ViewAll       = "all"
	ViewSold      = "sold"      // lotes con al menos una unidad vendida
	ViewRemaining = "remaining" // lotes con remanente
)

// ParseView normaliza la vista; lo desconocido es "all".
func ParseView(v string) string {
	switch v {
	case ViewSold, ViewRemaining:
		return v
	}
	return ViewAll
}

// Range es un rango de días calendario, ambos extremos incluidos.
type Range struct {
	From time.Time
	To   time.Time
}

// DefaultRange devuelve los últimos days días terminando hoy.
func DefaultRange(now time.Time, days int) Range {
	return Range{From: now.AddDate(0, 0, -days), To: now}
}

// Row es una fila de la tabla.
type Row struct {
	BatchID      string
	BreadType    string
	Date         time.Time
	QuantityMade int
	Price        decimal.Decimal
	TotalSold    int
	Remaining    int
	Revenue      decimal.Decimal
}

// Totals resume el rango completo, antes de aplicar la vista.
type Totals struct {
	Made      int
	Sold      int
	Remaining int
	Revenue   decimal.Decimal
}

// Report es la tarjeta de estiba.
type Report struct {
	Range  Range
	View   string
	Totals Totals
	Rows   []Row
}

// Build filtra por rango (días en loc), totaliza y luego aplica la vista a las filas.
// Los totales no dependen de la vista.
func Build(batches []entity.Batch, r Range, view string, loc *time.Location) Report {
	view = ParseView(view)
	from, to := batchview.DateKey(r.From, loc), batchview.DateKey(r.To, loc)
	rep := Report{Range: r, View: view, Totals: Totals{Revenue: decimal.Zero}}

	for _, b := range batches {
		key := batchview.DateKey(b.Date, loc)
		if key < from || key > to {
			continue
		}
		f := finance.Summarize(b)
		rep.Totals.Made += b.QuantityMade
		rep.Totals.Sold += f.TotalSold
		rep.Totals.Revenue = rep.Totals.Revenue.Add(f.Revenue)

		switch view {
		case ViewSold:
			if f.TotalSold <= 0 {
				continue
			}
		case ViewRemaining:
			if f.Remaining <= 0 {
				continue
			}
		}
		rep.Rows = append(rep.Rows, Row{
			BatchID:      b.ID,
			BreadType:    b.BreadType,
			Date:         b.Date,
			QuantityMade: b.QuantityMade,
			Price:        b.Price,
			TotalSold:    f.TotalSold,
			Remaining:    f.Remaining,
			Revenue:      f.Revenue,
		})
	}
	rep.Totals.Remaining = rep.Totals.Made - rep.Totals.Sold
	return rep
}
