// Package finance calcula las cifras de ventas de los lotes: unidades vendidas,
// remanente, ingreso y saldo pendiente. Las ventas regalo cuentan como unidades
// pero nunca como dinero. Todo el acumulado es sin redondeo; redondear es cosa
// de la presentación.
package finance

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// Figures son las cifras de un lote listas para mostrar en su tarjeta.
type Figures struct {
	TotalSold        int
	Remaining        int // puede ser negativo si hubo escrituras concurrentes
	DisplayRemaining int // Remaining acotado a 0
	Revenue          decimal.Decimal
	PendingAmount    decimal.Decimal
}

// SaleAmount es el monto de una venta: 0 si es regalo.
func SaleAmount(sale entity.Sale, price decimal.Decimal) decimal.Decimal {
	if sale.IsGift {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(sale.QuantitySold)))
}

// BatchTotalSold suma las unidades de todas las ventas, regalos incluidos.
func BatchTotalSold(b entity.Batch) int {
	total := 0
	for _, s := range b.Sales {
		total += s.QuantitySold
	}
	return total
}

// BatchRevenue suma los montos de las ventas del lote.
func BatchRevenue(b entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Sales {
		total = total.Add(SaleAmount(s, b.Price))
	}
	return total
}

// BatchPendingAmount suma lo que falta cobrar: ventas no pagadas y no regaladas.
func BatchPendingAmount(b entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, s := range b.Sales {
		if s.IsPaid || s.IsGift {
			continue
		}
		total = total.Add(SaleAmount(s, b.Price))
	}
	return total
}

// BatchRemaining devuelve QuantityMade - TotalSold tal cual, aunque sea negativo.
func BatchRemaining(b entity.Batch) int {
	return b.QuantityMade - BatchTotalSold(b)
}

// DisplayRemaining es el remanente que ve la interfaz: nunca menor que 0.
func DisplayRemaining(b entity.Batch) int {
	if r := BatchRemaining(b); r > 0 {
		return r
	}
	return 0
}

// Summarize calcula todas las cifras del lote en una pasada.
func Summarize(b entity.Batch) Figures {
	f := Figures{Revenue: decimal.Zero, PendingAmount: decimal.Zero}
	for _, s := range b.Sales {
		f.TotalSold += s.QuantitySold
		amount := SaleAmount(s, b.Price)
		f.Revenue = f.Revenue.Add(amount)
		if !s.IsPaid && !s.IsGift {
			f.PendingAmount = f.PendingAmount.Add(amount)
		}
	}
	f.Remaining = b.QuantityMade - f.TotalSold
	if f.Remaining > 0 {
		f.DisplayRemaining = f.Remaining
	}
	return f
}

// MoneyToCollect es el total adeudado a la panadería sobre todos los lotes.
func MoneyToCollect(batches []entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(BatchPendingAmount(b))
	}
	return total
}

// CheckSaleQuantity valida una venta nueva contra el remanente actual del lote.
// Es una verificación previa; la base de datos sigue siendo la autoridad.
func CheckSaleQuantity(b entity.Batch, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidInput
	}
	if quantity > DisplayRemaining(b) {
		return domain.ErrInsufficientStock
	}
	return nil
}
