package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

// SupplyUseCase gestiona los insumos de la panadería y su historial de cambios.
type SupplyUseCase struct {
	txRunner TxRunner
	repo     repository.SupplyRepository
	notifier ports.Notifier
	log      *logger.Logger
}

// NewSupplyUseCase construye el caso de uso.
func NewSupplyUseCase(txRunner TxRunner, repo repository.SupplyRepository, notifier ports.Notifier, log *logger.Logger) *SupplyUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SupplyUseCase{txRunner: txRunner, repo: repo, notifier: notifier, log: log.Component("inventory")}
}

// List devuelve los insumos ordenados por nombre.
func (uc *SupplyUseCase) List(ctx context.Context) ([]dto.SupplyResponse, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toSupplyResponse(s))
	}
	return out, nil
}

// Create da de alta un insumo con su cantidad inicial (no negativa).
func (uc *SupplyUseCase) Create(ctx context.Context, in dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if name == "" || unit == "" || !in.Quantity.Valid || in.Quantity.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supply{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  in.Quantity.Value,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("supply_id", s.ID).Str("name", s.Name).Msg("insumo creado")
	uc.publish(ctx, s.ID)
	resp := toSupplyResponse(s)
	return &resp, nil
}

// ApplyChange suma change (negativo = consumo) a la cantidad del insumo.
//
// Dentro de una transacción: bloquea la fila (SELECT FOR UPDATE), valida que
// el resultado no quede negativo, actualiza y registra el cambio en el historial.
func (uc *SupplyUseCase) ApplyChange(ctx context.Context, id string, in dto.UpdateSupplyRequest, userEmail string) (*dto.SupplyResponse, error) {
	if !in.Change.Valid || in.Change.Value.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Supply
	err := uc.txRunner.Run(ctx, func(repo repository.SupplyRepository) error {
		s, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		before := s.Quantity
		after := before.Add(in.Change.Value)
		if after.IsNegative() {
			return domain.ErrInsufficientStock
		}
		if err := repo.UpdateQuantity(ctx, id, after); err != nil {
			return err
		}
		now := time.Now()
		if err := repo.CreateLog(ctx, &entity.SupplyLog{
			ID:             uuid.New().String(),
			SupplyID:       id,
			ChangeAmount:   in.Change.Value,
			QuantityBefore: before,
			QuantityAfter:  after,
			CreatedBy:      userEmail,
			CreatedAt:      now,
		}); err != nil {
			return err
		}
		s.Quantity = after
		s.UpdatedAt = now
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("supply_id", id).Str("change", in.Change.Value.String()).Str("quantity", updated.Quantity.String()).Msg("insumo actualizado")
	uc.publish(ctx, id)
	resp := toSupplyResponse(updated)
	return &resp, nil
}

// Delete elimina un insumo y su historial.
func (uc *SupplyUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("supply_id", id).Msg("insumo eliminado")
	uc.publish(ctx, id)
	return nil
}

// Logs devuelve el historial de un insumo, del cambio más reciente al más antiguo.
func (uc *SupplyUseCase) Logs(ctx context.Context, id string) ([]dto.SupplyLogResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	logs, err := uc.repo.ListLogs(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.SupplyLogResponse{
			ID:             l.ID,
			ChangeAmount:   l.ChangeAmount,
			QuantityBefore: l.QuantityBefore,
			QuantityAfter:  l.QuantityAfter,
			CreatedBy:      l.CreatedBy,
			CreatedAt:      l.CreatedAt,
		})
	}
	return out, nil
}

func (uc *SupplyUseCase) publish(ctx context.Context, id string) {
	uc.notifier.Publish(ctx, ports.Event{Type: ports.EventInventoryUpdated, Payload: map[string]string{"supplyId": id}})
}

func toSupplyResponse(s *entity.Supply) dto.SupplyResponse {
	return dto.SupplyResponse{
		ID:        s.ID,
		Name:      s.Name,
		Quantity:  s.Quantity,
		Unit:      s.Unit,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
