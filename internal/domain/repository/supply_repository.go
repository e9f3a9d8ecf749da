package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain/entity"
)

// SupplyRepository define el puerto de persistencia para insumos y su historial.
type SupplyRepository interface {
	Create(ctx context.Context, supply *entity.Supply) error
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Supply, error)
	List(ctx context.Context) ([]*entity.Supply, error)
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	Delete(ctx context.Context, id string) error

	CreateLog(ctx context.Context, log *entity.SupplyLog) error
	ListLogs(ctx context.Context, supplyID string) ([]*entity.SupplyLog, error)
}
