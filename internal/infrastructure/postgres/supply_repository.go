package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panaderia-api/internal/domain"
	"github.com/jhoicas/panaderia-api/internal/domain/entity"
	"github.com/jhoicas/panaderia-api/internal/domain/repository"
)

var _ repository.SupplyRepository = (*SupplyRepo)(nil)

// SupplyRepo implementación de SupplyRepository sobre PostgreSQL (usable con pool o tx).
type SupplyRepo struct {
	q Querier
}

// NewSupplyRepository construye el adaptador de insumos. Pasar pool o tx (Querier).
func NewSupplyRepository(q Querier) *SupplyRepo {
	return &SupplyRepo{q: q}
}

// Create persiste un insumo nuevo.
func (r *SupplyRepo) Create(ctx context.Context, s *entity.Supply) error {
	query := `
		INSERT INTO supplies (id, name, quantity, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Quantity, s.Unit, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert supply: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo; (nil, nil) si no existe.
func (r *SupplyRepo) GetByID(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT id, name, quantity, unit, created_at, updated_at FROM supplies WHERE id = $1`, id)
}

// GetForUpdate obtiene el insumo y bloquea la fila para update (SELECT FOR UPDATE).
func (r *SupplyRepo) GetForUpdate(ctx context.Context, id string) (*entity.Supply, error) {
	return r.get(ctx, `SELECT id, name, quantity, unit, created_at, updated_at FROM supplies WHERE id = $1 FOR UPDATE`, id)
}

func (r *SupplyRepo) get(ctx context.Context, query, id string) (*entity.Supply, error) {
	var s entity.Supply
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Quantity, &s.Unit, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supply: %w", err)
	}
	return &s, nil
}

// List devuelve todos los insumos ordenados por nombre.
func (r *SupplyRepo) List(ctx context.Context) ([]*entity.Supply, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, quantity, unit, created_at, updated_at FROM supplies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list supplies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supply
	for rows.Next() {
		var s entity.Supply
		if err := rows.Scan(&s.ID, &s.Name, &s.Quantity, &s.Unit, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateQuantity fija la cantidad de un insumo.
func (r *SupplyRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplies SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update supply quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un insumo; su historial cae por ON DELETE CASCADE.
func (r *SupplyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM supplies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLog registra un cambio de cantidad.
func (r *SupplyRepo) CreateLog(ctx context.Context, l *entity.SupplyLog) error {
	query := `
		INSERT INTO supply_logs (id, supply_id, change_amount, quantity_before, quantity_after, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.SupplyID, l.ChangeAmount, l.QuantityBefore, l.QuantityAfter, l.CreatedBy, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert supply log: %w", err)
	}
	return nil
}

// ListLogs devuelve el historial de un insumo, el cambio más reciente primero.
func (r *SupplyRepo) ListLogs(ctx context.Context, supplyID string) ([]*entity.SupplyLog, error) {
	query := `
		SELECT id, supply_id, change_amount, quantity_before, quantity_after, created_by, created_at
		FROM supply_logs WHERE supply_id = $1
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, supplyID)
	if err != nil {
		return nil, fmt.Errorf("list supply logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplyLog
	for rows.Next() {
		var l entity.SupplyLog
		if err := rows.Scan(&l.ID, &l.SupplyID, &l.ChangeAmount, &l.QuantityBefore, &l.QuantityAfter, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supply log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
