package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/finance"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// List devuelve todos los lotes con sus ventas, del más reciente al más antiguo.
func (r *BatchRepo) List(ctx context.Context) ([]entity.Batch, error) {
	return r.ListByDateRange(ctx, nil, nil)
}

// ListByDateRange devuelve los lotes con fecha en [from, to) y sus ventas.
func (r *BatchRepo) ListByDateRange(ctx context.Context, from, to *time.Time) ([]entity.Batch, error) {
	query := `
		SELECT id, bread_type, quantity_made, price, date, created_by, created_at
		FROM batches
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2::timestamptz IS NULL OR date < $2)
		ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	salesQuery := `
		SELECT s.id, s.batch_id, s.person_name, s.quantity_sold, s.is_paid, s.is_delivered, s.is_gift, s.created_at
		FROM sales s JOIN batches b ON b.id = s.batch_id
		WHERE ($1::timestamptz IS NULL OR b.date >= $1)
		  AND ($2::timestamptz IS NULL OR b.date < $2)
		ORDER BY s.created_at, s.id`
	if err := r.attachSales(ctx, batches, salesQuery, from, to); err != nil {
		return nil, err
	}
	return batches, nil
}

// GetByID obtiene un lote con sus ventas; (nil, nil) si no existe.
func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	query := `
		SELECT id, bread_type, quantity_made, price, date, created_by, created_at
		FROM batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	one := []entity.Batch{*b}
	salesQuery := `
		SELECT id, batch_id, person_name, quantity_sold, is_paid, is_delivered, is_gift, created_at
		FROM sales WHERE batch_id = $1
		ORDER BY created_at, id`
	if err := r.attachSales(ctx, one, salesQuery, id); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// Create persiste un lote (sin ventas).
func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	query := `
		INSERT INTO batches (id, bread_type, quantity_made, price, date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, b.ID, b.BreadType, b.QuantityMade, b.Price, b.Date, b.CreatedBy, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// UpdateDate cambia la fecha de un lote.
func (r *BatchRepo) UpdateDate(ctx context.Context, id string, date time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE batches SET date = $2 WHERE id = $1`, id, date)
	if err != nil {
		return fmt.Errorf("update batch date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un lote; sus ventas caen por ON DELETE CASCADE.
func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateSale inserta una venta verificando el remanente con la fila del lote
// bloqueada (SELECT FOR UPDATE). Dos ventas simultáneas no pueden pasarse del
// total producido.
func (r *BatchRepo) CreateSale(ctx context.Context, s *entity.Sale) error {
	return pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		var made int
		err := tx.QueryRow(ctx, `SELECT quantity_made FROM batches WHERE id = $1 FOR UPDATE`, s.BatchID).Scan(&made)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("lock batch: %w", err)
		}
		var sold int
		err = tx.QueryRow(ctx, `SELECT COALESCE(SUM(quantity_sold), 0) FROM sales WHERE batch_id = $1`, s.BatchID).Scan(&sold)
		if err != nil {
			return fmt.Errorf("sum sales: %w", err)
		}
		if s.QuantitySold > made-sold {
			return domain.ErrInsufficientStock
		}
		query := `
			INSERT INTO sales (id, batch_id, person_name, quantity_sold, is_paid, is_delivered, is_gift, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
		_, err = tx.Exec(ctx, query,
			s.ID, s.BatchID, s.PersonName, s.QuantitySold, s.IsPaid, s.IsDelivered, s.IsGift, s.CreatedAt,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert sale: %w", err)
		}
		return nil
	})
}

// GetSale obtiene una venta del lote; (nil, nil) si no existe.
func (r *BatchRepo) GetSale(ctx context.Context, batchID, saleID string) (*entity.Sale, error) {
	query := `
		SELECT id, batch_id, person_name, quantity_sold, is_paid, is_delivered, is_gift, created_at
		FROM sales WHERE id = $1 AND batch_id = $2`
	s, err := scanSale(r.q.QueryRow(ctx, query, saleID, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// UpdateSale actualiza nombre y estado de una venta. La cantidad no se modifica.
func (r *BatchRepo) UpdateSale(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET person_name = $3, is_paid = $4, is_delivered = $5, is_gift = $6
		WHERE id = $1 AND batch_id = $2`
	tag, err := r.q.Exec(ctx, query, s.ID, s.BatchID, s.PersonName, s.IsPaid, s.IsDelivered, s.IsGift)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteSale elimina una venta del lote.
func (r *BatchRepo) DeleteSale(ctx context.Context, batchID, saleID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND batch_id = $2`, saleID, batchID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// attachSales reparte entre batches las ventas que devuelve query.
// Las ventas de lotes que no están en batches se ignoran.
func (r *BatchRepo) attachSales(ctx context.Context, batches []entity.Batch, query string, args ...any) error {
	if len(batches) == 0 {
		return nil
	}
	index := make(map[string]int, len(batches))
	for i, b := range batches {
		index[b.ID] = i
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return fmt.Errorf("scan sale: %w", err)
		}
		if i, ok := index[s.BatchID]; ok {
			batches[i].Sales = append(batches[i].Sales, *s)
		}
	}
	return rows.Err()
}

// scanBatch lee un lote. Un precio NULL o una cantidad NULL de datos viejos quedan en 0.
func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var (
		b     entity.Batch
		price decimal.NullDecimal
		made  *int
	)
	if err := row.Scan(&b.ID, &b.BreadType, &made, &price, &b.Date, &b.CreatedBy, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.Price = finance.CoercePrice(price)
	if made != nil {
		b.QuantityMade = *made
	}
	return &b, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s   entity.Sale
		qty *int
	)
	if err := row.Scan(&s.ID, &s.BatchID, &s.PersonName, &qty, &s.IsPaid, &s.IsDelivered, &s.IsGift, &s.CreatedAt); err != nil {
		return nil, err
	}
	if qty != nil {
		s.QuantitySold = *qty
	}
	return &s, nil
}
