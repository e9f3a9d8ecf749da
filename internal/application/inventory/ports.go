package inventory

import (
	"context"

	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio atado a esa tx.
// Garantiza que el cambio de cantidad y su registro en el historial se escriban juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(supplyRepo repository.SupplyRepository) error) error
}
