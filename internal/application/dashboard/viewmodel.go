// Package dashboard compone la vista del tablero de lotes: capacidades del
// usuario, lotes agrupados por día y filtrados, y el saldo total a cobrar.
package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/access"
	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/finance"
)

// ViewModel es lo que consume la capa de presentación.
type ViewModel struct {
	Capabilities   access.Capabilities
	Criteria       batchview.Criteria
	Groups         []GroupView
	MoneyToCollect decimal.Decimal // sobre todos los lotes, sin filtro
}

// GroupView es un día del tablero.
type GroupView struct {
	Key     string
	Label   string
	Batches []BatchView
}

// BatchView es un lote con las ventas que pasaron el filtro y sus cifras.
type BatchView struct {
	Batch   entity.Batch
	Figures finance.Figures // calculadas sobre las ventas filtradas
}

// Build arma la vista para user a partir de los lotes crudos.
//
// Las cifras de cada tarjeta salen de las ventas filtradas; MoneyToCollect sale
// de los lotes sin filtrar, así que no cambia al cambiar el filtro.
// Sin usuario el resultado es el estado vacío: sin capacidades, sin grupos y en 0.
func Build(user *entity.User, batches []entity.Batch, c batchview.Criteria, loc *time.Location) ViewModel {
	vm := ViewModel{
		Capabilities:   access.Resolve(user),
		Criteria:       c,
		MoneyToCollect: decimal.Zero,
	}
	if user == nil || len(batches) == 0 {
		return vm
	}

	vm.MoneyToCollect = finance.MoneyToCollect(batches)
	for _, g := range batchview.Filter(batchview.GroupByDate(batches, loc), c) {
		gv := GroupView{Key: g.Key, Label: g.Label, Batches: make([]BatchView, 0, len(g.Batches))}
		for _, b := range g.Batches {
			gv.Batches = append(gv.Batches, BatchView{Batch: b, Figures: finance.Summarize(b)})
		}
		vm.Groups = append(vm.Groups, gv)
	}
	return vm
}
