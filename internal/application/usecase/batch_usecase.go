package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panaderia-api/internal/application/dto"
	"github.com/jhoicas/panaderia-api/internal/application/ports"
	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/finance"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
	"github.com/jhoicas/panaderia-api/pkg/logger"
)

// BatchUseCase aplica reglas de negocio para lotes y ventas.
type BatchUseCase struct {
	repo     repository.BatchRepository
	notifier ports.Notifier
	log      *logger.Logger
	loc      *time.Location
	now      func() time.Time
}

// NewBatchUseCase construye el caso de uso. loc es la zona en la que se interpretan las fechas "YYYY-MM-DD".
func NewBatchUseCase(repo repository.BatchRepository, notifier ports.Notifier, log *logger.Logger, loc *time.Location) *BatchUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &BatchUseCase{repo: repo, notifier: notifier, log: log.Component("batches"), loc: loc, now: time.Now}
}

// List devuelve todos los lotes con sus ventas, del más reciente al más antiguo.
func (uc *BatchUseCase) List(ctx context.Context) ([]dto.BatchResponse, error) {
	batches, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, dto.ToBatchResponse(b))
	}
	return out, nil
}

// Create registra un lote nuevo. createdBy es el email de quien lo carga.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest, createdBy string) (*dto.BatchResponse, error) {
	breadType := strings.TrimSpace(in.BreadType)
	if breadType == "" || !in.QuantityMade.Valid || in.QuantityMade.Value < 1 {
		return nil, domain.ErrInvalidInput
	}
	if !in.Price.Valid || in.Price.Value.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	date, err := uc.parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	b := &entity.Batch{
		ID:           uuid.New().String(),
		BreadType:    breadType,
		QuantityMade: in.QuantityMade.Value,
		Price:        in.Price.Value,
		Date:         date,
		CreatedBy:    createdBy,
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", b.ID).Str("bread_type", b.BreadType).Int("quantity", b.QuantityMade).Msg("lote creado")
	uc.publish(ctx, ports.EventBatchCreated, b.ID, "")
	resp := dto.ToBatchResponse(*b)
	return &resp, nil
}

// Delete elimina un lote y sus ventas.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", id).Msg("lote eliminado")
	uc.publish(ctx, ports.EventBatchDeleted, id, "")
	return nil
}

// UpdateDate cambia la fecha de un lote.
func (uc *BatchUseCase) UpdateDate(ctx context.Context, id string, in dto.UpdateBatchDateRequest) (*dto.BatchResponse, error) {
	if strings.TrimSpace(in.Date) == "" {
		return nil, domain.ErrInvalidInput
	}
	date, err := uc.parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateDate(ctx, id, date); err != nil {
		return nil, err
	}
	b, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", id).Time("date", date).Msg("fecha de lote actualizada")
	uc.publish(ctx, ports.EventBatchUpdated, id, "")
	resp := dto.ToBatchResponse(*b)
	return &resp, nil
}

// CreateSale registra una venta contra el remanente actual del lote.
// La verificación previa rechaza cantidades mayores al remanente; el
// repositorio repite la verificación dentro de la escritura.
func (uc *BatchUseCase) CreateSale(ctx context.Context, batchID string, in dto.CreateSaleRequest) (*dto.BatchResponse, error) {
	personName := strings.TrimSpace(in.PersonName)
	if personName == "" || !in.QuantitySold.Valid {
		return nil, domain.ErrInvalidInput
	}
	b, err := uc.get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := finance.CheckSaleQuantity(*b, in.QuantitySold.Value); err != nil {
		return nil, err
	}
	s := &entity.Sale{
		ID:           uuid.New().String(),
		BatchID:      batchID,
		PersonName:   personName,
		QuantitySold: in.QuantitySold.Value,
		IsPaid:       in.IsPaid,
		IsDelivered:  in.IsDelivered,
		IsGift:       in.IsGift,
		CreatedAt:    uc.now(),
	}
	if err := uc.repo.CreateSale(ctx, s); err != nil {
		return nil, err
	}
	b.Sales = append(b.Sales, *s)
	uc.log.Info().Str("batch_id", batchID).Str("sale_id", s.ID).Int("quantity", s.QuantitySold).Bool("gift", s.IsGift).Msg("venta registrada")
	uc.publish(ctx, ports.EventSaleCreated, batchID, s.ID)
	resp := dto.ToBatchResponse(*b)
	return &resp, nil
}

// UpdateSale aplica los campos presentes en in (pagado, entregado, regalo, nombre).
func (uc *BatchUseCase) UpdateSale(ctx context.Context, batchID, saleID string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetSale(ctx, batchID, saleID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.PersonName != nil {
		name := strings.TrimSpace(*in.PersonName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		s.PersonName = name
	}
	if in.IsPaid != nil {
		s.IsPaid = *in.IsPaid
	}
	if in.IsDelivered != nil {
		s.IsDelivered = *in.IsDelivered
	}
	if in.IsGift != nil {
		s.IsGift = *in.IsGift
	}
	if err := uc.repo.UpdateSale(ctx, s); err != nil {
		return nil, err
	}
	b, err := uc.get(ctx, batchID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("batch_id", batchID).Str("sale_id", saleID).Bool("paid", s.IsPaid).Bool("delivered", s.IsDelivered).Msg("venta actualizada")
	uc.publish(ctx, ports.EventSaleUpdated, batchID, saleID)
	resp := dto.ToSaleResponse(*s, b.Price)
	return &resp, nil
}

// DeleteSale elimina una venta del lote.
func (uc *BatchUseCase) DeleteSale(ctx context.Context, batchID, saleID string) error {
	if err := uc.repo.DeleteSale(ctx, batchID, saleID); err != nil {
		return err
	}
	uc.log.Info().Str("batch_id", batchID).Str("sale_id", saleID).Msg("venta eliminada")
	uc.publish(ctx, ports.EventSaleDeleted, batchID, saleID)
	return nil
}

func (uc *BatchUseCase) get(ctx context.Context, id string) (*entity.Batch, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// parseDate acepta "YYYY-MM-DD" (medianoche en uc.loc) o RFC3339. Vacío es hoy.
func (uc *BatchUseCase) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := uc.now().In(uc.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, uc.loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.ErrInvalidInput
}

func (uc *BatchUseCase) publish(ctx context.Context, eventType, batchID, saleID string) {
	payload := map[string]string{"batchId": batchID}
	if saleID != "" {
		payload["saleId"] = saleID
	}
	uc.notifier.Publish(ctx, ports.Event{Type: eventType, Payload: payload})
}
