package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/application/usecase"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

var art = time.FixedZone("ART", -3*60*60)

func fiveBatch() entity.Batch {
	return entity.Batch{
		ID:           "b1",
		BreadType:    "francés",
		QuantityMade: 5,
		Price:        decimal.RequireFromString("2.50"),
		Date:         time.Date(2026, 10, 15, 0, 0, 0, 0, art),
		CreatedBy:    "admin@pan.com",
	}
}

func newBatchUC(repo *memBatchRepo, n *recordingNotifier) *usecase.BatchUseCase {
	return usecase.NewBatchUseCase(repo, n, logger.Nop(), art)
}

func createBatchReq(t *testing.T, raw string) dto.CreateBatchRequest {
	t.Helper()
	var req dto.CreateBatchRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_PrecioComoTexto(t *testing.T) {
	repo := newMemBatchRepo()
	n := &recordingNotifier{}
	uc := newBatchUC(repo, n)

	req := createBatchReq(t, `{"breadType":"francés","quantityMade":"12","price":"1.75","date":"2026-10-15"}`)
	resp, err := uc.Create(context.Background(), req, "manager@pan.com")
	require.NoError(t, err)

	assert.Equal(t, 12, resp.QuantityMade)
	assert.Equal(t, "1.75", resp.Price.String())
	assert.Equal(t, "manager@pan.com", resp.CreatedBy)
	assert.Equal(t, 12, resp.Remaining)
	assert.Equal(t, "2026-10-15", resp.Date.In(art).Format("2006-01-02"))
	assert.Equal(t, []string{ports.EventBatchCreated}, n.types())
	assert.Len(t, repo.batches, 1)
}

func TestCreateBatch_EntradasInvalidas(t *testing.T) {
	uc := newBatchUC(newMemBatchRepo(), &recordingNotifier{})

	cases := map[string]string{
		"sin tipo":           `{"breadType":"","quantityMade":1,"price":1}`,
		"cantidad cero":      `{"breadType":"x","quantityMade":0,"price":1}`,
		"cantidad texto":     `{"breadType":"x","quantityMade":"muchos","price":1}`,
		"precio negativo":    `{"breadType":"x","quantityMade":1,"price":-1}`,
		"precio ausente":     `{"breadType":"x","quantityMade":1}`,
		"precio no numérico": `{"breadType":"x","quantityMade":1,"price":"abc"}`,
		"fecha inválida":     `{"breadType":"x","quantityMade":1,"price":1,"date":"15/10"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), createBatchReq(t, raw), "a@pan.com")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateBatchDate(t *testing.T) {
	repo := newMemBatchRepo(fiveBatch())
	n := &recordingNotifier{}

	resp, err := newBatchUC(repo, n).UpdateDate(context.Background(), "b1", dto.UpdateBatchDateRequest{Date: "2026-10-01"})
	require.NoError(t, err)

	assert.Equal(t, "2026-10-01", resp.Date.In(art).Format("2006-01-02"))
	assert.Equal(t, []string{ports.EventBatchUpdated}, n.types())
}

func TestDeleteBatch_NoExiste(t *testing.T) {
	err := newBatchUC(newMemBatchRepo(), &recordingNotifier{}).Delete(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_HastaAgotarYLuegoRechaza(t *testing.T) {
	repo := newMemBatchRepo(fiveBatch())
	uc := newBatchUC(repo, &recordingNotifier{})
	ctx := context.Background()

	resp, err := uc.CreateSale(ctx, "b1", dto.CreateSaleRequest{PersonName: "Ana", QuantitySold: dto.FlexInt{Value: 5, Valid: true}})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Remaining)
	assert.Equal(t, "12.5", resp.PendingAmount.String())

	_, err = uc.CreateSale(ctx, "b1", dto.CreateSaleRequest{PersonName: "Beto", QuantitySold: dto.FlexInt{Value: 1, Valid: true}})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Len(t, repo.batches["b1"].Sales, 1)
}

func TestCreateSale_Regalo(t *testing.T) {
	uc := newBatchUC(newMemBatchRepo(fiveBatch()), &recordingNotifier{})

	resp, err := uc.CreateSale(context.Background(), "b1", dto.CreateSaleRequest{
		PersonName: "Vecina", QuantitySold: dto.FlexInt{Value: 2, Valid: true}, IsGift: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.TotalSold)
	assert.True(t, resp.Revenue.IsZero())
	assert.True(t, resp.PendingAmount.IsZero())
	require.Len(t, resp.Sales, 1)
	assert.True(t, resp.Sales[0].Amount.IsZero())
}

func TestCreateSale_Invalida(t *testing.T) {
	uc := newBatchUC(newMemBatchRepo(fiveBatch()), &recordingNotifier{})
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, "b1", dto.CreateSaleRequest{PersonName: "Ana", QuantitySold: dto.FlexInt{Value: 0, Valid: true}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(ctx, "b1", dto.CreateSaleRequest{PersonName: "  ", QuantitySold: dto.FlexInt{Value: 1, Valid: true}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(ctx, "otro", dto.CreateSaleRequest{PersonName: "Ana", QuantitySold: dto.FlexInt{Value: 1, Valid: true}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateSale_Parcial(t *testing.T) {
	b := fiveBatch()
	b.Sales = []entity.Sale{{ID: "s1", BatchID: "b1", PersonName: "Ana", QuantitySold: 2, IsDelivered: true}}
	repo := newMemBatchRepo(b)
	n := &recordingNotifier{}
	paid := true

	resp, err := newBatchUC(repo, n).UpdateSale(context.Background(), "b1", "s1", dto.UpdateSaleRequest{IsPaid: &paid})
	require.NoError(t, err)

	assert.True(t, resp.IsPaid)
	assert.True(t, resp.IsDelivered, "los campos ausentes no cambian")
	assert.Equal(t, "Ana", resp.PersonName)
	assert.True(t, resp.Outstanding.IsZero())
	assert.Equal(t, "5", resp.Amount.String())
	assert.Equal(t, []string{ports.EventSaleUpdated}, n.types())
}

func TestDeleteSale(t *testing.T) {
	b := fiveBatch()
	b.Sales = []entity.Sale{{ID: "s1", BatchID: "b1", QuantitySold: 2}}
	repo := newMemBatchRepo(b)
	n := &recordingNotifier{}

	require.NoError(t, newBatchUC(repo, n).DeleteSale(context.Background(), "b1", "s1"))
	assert.Empty(t, repo.batches["b1"].Sales)
	assert.Equal(t, []string{ports.EventSaleDeleted}, n.types())
}
