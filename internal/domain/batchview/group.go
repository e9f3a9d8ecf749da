// Package batchview arma la vista de lotes del tablero: agrupación por día
// calendario y filtrado de ventas por estado de pago y entrega.
package batchview

import (
	"sort"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// DateGroup son los lotes de un mismo día calendario.
type DateGroup struct {
	Key     string // "2006-01-02"
	Label   string // fecha larga en español
	Batches []entity.Batch
}

// GroupByDate agrupa los lotes por día calendario en loc.
//
// Orden: grupos del día más reciente al más antiguo; dentro de un grupo se
// respeta el orden de entrada. No filtra nada; una entrada vacía da nil.
// Los lotes se copian con su propio slice de ventas, así el resultado no
// comparte memoria mutable con la entrada.
func GroupByDate(batches []entity.Batch, loc *time.Location) []DateGroup {
	if len(batches) == 0 {
		return nil
	}
	index := make(map[string]int)
	var groups []DateGroup
	for _, b := range batches {
		key := DateKey(b.Date, loc)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DateGroup{Key: key, Label: LongDateLabel(b.Date, loc)})
		}
		groups[i].Batches = append(groups[i].Batches, cloneBatch(b, b.Sales))
	}
	// Las claves ISO ordenan igual que las fechas.
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key > groups[j].Key })
	return groups
}

func cloneBatch(b entity.Batch, sales []entity.Sale) entity.Batch {
	out := b
	if sales == nil {
		out.Sales = nil
		return out
	}
	out.Sales = make([]entity.Sale, len(sales))
	copy(out.Sales, sales)
	return out
}
