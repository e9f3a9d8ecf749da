package batchview

import "github.com/jhoicas/panaderia-api/internal/domain/entity"

// Valores de filtro de pago.
const (
	PaidAll     = "all"
	PaidYes     = "paid"
	PaidNo      = "not_paid"
	DeliveryAll = "all"
	DeliveryYes = "delivered"
	DeliveryNo  = "not_delivered"
)

// Criteria es el filtro de ventas elegido en pantalla.
type Criteria struct {
	Paid      string `json:"paid"`
	Delivered string `json:"delivered"`
}

// ParseCriteria normaliza los valores recibidos; lo desconocido o vacío es "all".
func ParseCriteria(paid, delivered string) Criteria {
	c := Criteria{Paid: PaidAll, Delivered: DeliveryAll}
	switch paid {
	case PaidYes, PaidNo:
		c.Paid = paid
	}
	switch delivered {
	case DeliveryYes, DeliveryNo:
		c.Delivered = delivered
	}
	return c
}

// IsAll indica si el filtro no descarta nada.
func (c Criteria) IsAll() bool {
	return c.Paid != PaidYes && c.Paid != PaidNo && c.Delivered != DeliveryYes && c.Delivered != DeliveryNo
}

// Match decide si una venta pasa el filtro.
// Con "not_paid" un regalo nunca aparece: no se le debe nada a la panadería.
func (c Criteria) Match(s entity.Sale) bool {
	paidMatch := true
	switch c.Paid {
	case PaidYes:
		paidMatch = s.IsPaid
	case PaidNo:
		paidMatch = !s.IsPaid && !s.IsGift
	}
	deliveredMatch := true
	switch c.Delivered {
	case DeliveryYes:
		deliveredMatch = s.IsDelivered
	case DeliveryNo:
		deliveredMatch = !s.IsDelivered
	}
	return paidMatch && deliveredMatch
}

// Filter poda ventas, lotes y grupos según c.
//
// Un lote sobrevive si le queda al menos una venta; un grupo, si le queda al
// menos un lote. Con c.IsAll() el resultado es igual a la entrada, pero siempre
// en slices nuevos: mutar la salida nunca afecta a la entrada.
func Filter(groups []DateGroup, c Criteria) []DateGroup {
	var out []DateGroup
	all := c.IsAll()
	for _, g := range groups {
		var batches []entity.Batch
		for _, b := range g.Batches {
			if all {
				batches = append(batches, cloneBatch(b, b.Sales))
				continue
			}
			var sales []entity.Sale
			for _, s := range b.Sales {
				if c.Match(s) {
					sales = append(sales, s)
				}
			}
			if len(sales) == 0 {
				continue
			}
			batches = append(batches, cloneBatch(b, sales))
		}
		if len(batches) == 0 && !all {
			continue
		}
		out = append(out, DateGroup{Key: g.Key, Label: g.Label, Batches: batches})
	}
	return out
}
