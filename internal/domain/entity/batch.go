package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es un lote de producción de un tipo de pan, con cantidad y precio unitario fijos.
// El lote es dueño exclusivo de su lista de ventas.
type Batch struct {
	ID           string
	BreadType    string
	QuantityMade int
	Price        decimal.Decimal // precio unitario; 0 si el dato de origen era inválido
	Date         time.Time
	CreatedBy    string // email de quien lo registró
	Sales        []Sale
	CreatedAt    time.Time
}

// Sale es la entrega de unidades de un lote a una persona.
// Una venta regalo (IsGift) nunca genera ingreso ni saldo pendiente.
type Sale struct {
	ID           string
	BatchID      string
	PersonName   string
	QuantitySold int
	IsPaid       bool
	IsDelivered  bool
	IsGift       bool
	CreatedAt    time.Time
}
