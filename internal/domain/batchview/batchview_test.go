package batchview_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/domain/batchview"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

var art = time.FixedZone("ART", -3*60*60)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, art)
}

func sampleBatches() []entity.Batch {
	return []entity.Batch{
		{ID: "viejo", Date: at(2026, 10, 14, 7), QuantityMade: 10, Sales: []entity.Sale{
			{ID: "v1", QuantitySold: 1, IsPaid: true, IsDelivered: true},
		}},
		{ID: "manana", Date: at(2026, 10, 15, 6), QuantityMade: 10, Sales: []entity.Sale{
			{ID: "m1", QuantitySold: 3, IsPaid: true},
			{ID: "m2", QuantitySold: 2},
			{ID: "m3", QuantitySold: 1, IsGift: true},
		}},
		{ID: "tarde", Date: at(2026, 10, 15, 18), QuantityMade: 5, Sales: []entity.Sale{
			{ID: "t1", QuantitySold: 2, IsDelivered: true},
		}},
		{ID: "vacio", Date: at(2026, 10, 15, 20), QuantityMade: 8},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// GroupByDate
// ──────────────────────────────────────────────────────────────────────────────

func TestGroupByDate_MismoDiaCalendarioMismoGrupo(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	require.Len(t, groups, 2)

	assert.Equal(t, "2026-10-15", groups[0].Key, "el día más reciente va primero")
	assert.Equal(t, "jueves, 15 de octubre de 2026", groups[0].Label)
	assert.Equal(t, []string{"manana", "tarde", "vacio"}, ids(groups[0].Batches), "dentro del día se respeta el orden de entrada")

	assert.Equal(t, "2026-10-14", groups[1].Key)
	assert.Equal(t, "miércoles, 14 de octubre de 2026", groups[1].Label)
}

func TestGroupByDate_OrdenDescendenteConEntradaAscendente(t *testing.T) {
	in := []entity.Batch{
		{ID: "a", Date: at(2026, 1, 1, 10)},
		{ID: "b", Date: at(2026, 3, 1, 10)},
		{ID: "c", Date: at(2026, 2, 1, 10)},
	}
	groups := batchview.GroupByDate(in, art)
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"2026-03-01", "2026-02-01", "2026-01-01"}, keys)
	assert.Equal(t, "domingo, 1 de marzo de 2026", groups[0].Label)
}

func TestGroupByDate_UsaLaZonaHoraria(t *testing.T) {
	// 01:00 UTC del 16 sigue siendo el 15 en Buenos Aires.
	b := entity.Batch{ID: "x", Date: time.Date(2026, 10, 16, 1, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2026-10-15", batchview.GroupByDate([]entity.Batch{b}, art)[0].Key)
	assert.Equal(t, "2026-10-16", batchview.GroupByDate([]entity.Batch{b}, nil)[0].Key, "sin zona se usa UTC")
}

func TestGroupByDate_Vacio(t *testing.T) {
	assert.Empty(t, batchview.GroupByDate(nil, art))
	assert.Empty(t, batchview.GroupByDate([]entity.Batch{}, art))
}

func TestGroupByDate_NoComparteMemoriaConEntrada(t *testing.T) {
	in := sampleBatches()
	groups := batchview.GroupByDate(in, art)
	groups[0].Batches[0].Sales[0].IsPaid = false
	assert.True(t, in[1].Sales[0].IsPaid, "mutar la salida no debe tocar la entrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Filter
// ──────────────────────────────────────────────────────────────────────────────

func TestFilter_NoPagadoExcluyeRegalos(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	out := batchview.Filter(groups, batchview.Criteria{Paid: batchview.PaidNo, Delivered: batchview.DeliveryAll})

	require.Len(t, out, 1, "el día 14 solo tiene ventas pagadas y desaparece")
	assert.Equal(t, []string{"manana", "tarde"}, ids(out[0].Batches), "el lote sin ventas se descarta")
	assert.Equal(t, []string{"m2"}, saleIDs(out[0].Batches[0]), "el regalo no aparece como no pagado")
	assert.Equal(t, []string{"t1"}, saleIDs(out[0].Batches[1]))
}

func TestFilter_PagadoYEntregado(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	out := batchview.Filter(groups, batchview.Criteria{Paid: batchview.PaidYes, Delivered: batchview.DeliveryYes})

	require.Len(t, out, 1)
	assert.Equal(t, "2026-10-14", out[0].Key)
	assert.Equal(t, []string{"v1"}, saleIDs(out[0].Batches[0]))
}

func TestFilter_NoEntregadoIncluyeRegalos(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	out := batchview.Filter(groups, batchview.Criteria{Paid: batchview.PaidAll, Delivered: batchview.DeliveryNo})

	require.Len(t, out, 1)
	assert.Equal(t, []string{"m1", "m2", "m3"}, saleIDs(out[0].Batches[0]), "la exclusión de regalos solo aplica a not_paid")
}

func TestFilter_TodoEsIdentidad(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	out := batchview.Filter(groups, batchview.Criteria{Paid: batchview.PaidAll, Delivered: batchview.DeliveryAll})

	assert.Equal(t, groups, out, "sin filtro la salida es igual a la entrada, lotes vacíos incluidos")

	out[0].Batches[0].Sales[0].PersonName = "cambiado"
	assert.Empty(t, groups[0].Batches[0].Sales[0].PersonName, "pero no comparte los slices de ventas")
}

func TestFilter_Idempotente(t *testing.T) {
	groups := batchview.GroupByDate(sampleBatches(), art)
	criterias := []batchview.Criteria{
		{Paid: batchview.PaidAll, Delivered: batchview.DeliveryAll},
		{Paid: batchview.PaidYes, Delivered: batchview.DeliveryAll},
		{Paid: batchview.PaidNo, Delivered: batchview.DeliveryAll},
		{Paid: batchview.PaidNo, Delivered: batchview.DeliveryYes},
		{Paid: batchview.PaidAll, Delivered: batchview.DeliveryNo},
	}
	for _, c := range criterias {
		once := batchview.Filter(groups, c)
		twice := batchview.Filter(once, c)
		assert.Equal(t, once, twice, "criterio %+v", c)
	}
}

func TestFilter_SinCoincidenciasDevuelveVacio(t *testing.T) {
	in := []entity.Batch{{ID: "a", Date: at(2026, 10, 15, 8), Sales: []entity.Sale{{ID: "s", IsPaid: true}}}}
	out := batchview.Filter(batchview.GroupByDate(in, art), batchview.Criteria{Paid: batchview.PaidNo, Delivered: batchview.DeliveryAll})
	assert.Empty(t, out)
}

func TestParseCriteria_ValoresDesconocidosSonAll(t *testing.T) {
	c := batchview.ParseCriteria("", "quizás")
	assert.Equal(t, batchview.Criteria{Paid: batchview.PaidAll, Delivered: batchview.DeliveryAll}, c)
	assert.True(t, c.IsAll())

	c = batchview.ParseCriteria("not_paid", "delivered")
	assert.Equal(t, batchview.Criteria{Paid: batchview.PaidNo, Delivered: batchview.DeliveryYes}, c)
	assert.False(t, c.IsAll())
}

func ids(batches []entity.Batch) []string {
	out := make([]string, 0, len(batches))
	for _, b := range batches {
		out = append(out, b.ID)
	}
	return out
}

func saleIDs(b entity.Batch) []string {
	out := make([]string, 0, len(b.Sales))
	for _, s := range b.Sales {
		out = append(out, s.ID)
	}
	return out
}
