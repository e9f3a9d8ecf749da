package repository

import (
	"context"
	"time"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes y sus ventas.
// Los lotes siempre se devuelven con su lista de ventas cargada.
type BatchRepository interface {
	List(ctx context.Context) ([]entity.Batch, error)
	// ListByDateRange devuelve los lotes con fecha en [from, to); cualquiera de los dos puede ser nil.
	ListByDateRange(ctx context.Context, from, to *time.Time) ([]entity.Batch, error)
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	Create(ctx context.Context, batch *entity.Batch) error
	UpdateDate(ctx context.Context, id string, date time.Time) error
	Delete(ctx context.Context, id string) error

	CreateSale(ctx context.Context, sale *entity.Sale) error
	GetSale(ctx context.Context, batchID, saleID string) (*entity.Sale, error)
	UpdateSale(ctx context.Context, sale *entity.Sale) error
	DeleteSale(ctx context.Context, batchID, saleID string) error
}
