package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/editorialarcadia/almacen-api/internal/domain/entity"
	"github.com/editorialarcadia/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL. Los
// movimientos son inmutables: no hay UPDATE ni DELETE sobre movimientos ni
// sobre sus líneas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier);
// Create y NextConsecutive deben ejecutarse con tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta la cabecera del movimiento y sus líneas.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	ctx := context.Background()
	header := `
		INSERT INTO movimientos (
			id, consecutivo, clase, subclase, fecha, bodega_origen_id,
			bodega_destino_id, referencia_financiera, factura_ref, valor_total,
			observaciones, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, header,
		movement.ID, movement.Consecutive, movement.Kind, movement.SubKind,
		movement.Date, movement.FromWarehouseID, movement.ToWarehouseID,
		movement.FinancialReference, movement.InvoiceRef, movement.TotalAmount,
		movement.Observations, movement.CreatedBy, movement.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("consecutivo duplicado: %w", err)
		}
		return fmt.Errorf("create movement: %w", err)
	}

	line := `
		INSERT INTO movimiento_lineas (movimiento_id, posicion, item_id, cantidad)
		VALUES ($1, $2, $3, $4)`
	for i, l := range movement.Lines {
		if _, err := r.q.Exec(ctx, line, movement.ID, i, l.ItemID, l.Quantity); err != nil {
			return fmt.Errorf("create movement line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas; nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	ctx := context.Background()
	query := `
		SELECT id, consecutivo, clase, subclase, fecha,
			COALESCE(bodega_origen_id, ''), COALESCE(bodega_destino_id, ''),
			referencia_financiera, factura_ref, valor_total, observaciones,
			created_by, created_at
		FROM movimientos WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Consecutive, &m.Kind, &m.SubKind, &m.Date,
		&m.FromWarehouseID, &m.ToWarehouseID,
		&m.FinancialReference, &m.InvoiceRef, &m.TotalAmount, &m.Observations,
		&m.CreatedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if err := r.loadLines(ctx, []*entity.Movement{&m}); err != nil {
		return nil, err
	}
	return &m, nil
}

// List devuelve movimientos del más reciente al más antiguo (consecutivo
// descendente). WarehouseID filtra por origen o destino.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	ctx := context.Background()
	var (
		conds []string
		args  []any
	)
	if filter.Kind != "" {
		args = append(args, filter.Kind)
		conds = append(conds, fmt.Sprintf("clase = $%d", len(args)))
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("(bodega_origen_id = $%d OR bodega_destino_id = $%d)", len(args), len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT id, consecutivo, clase, subclase, fecha,
			COALESCE(bodega_origen_id, ''), COALESCE(bodega_destino_id, ''),
			referencia_financiera, factura_ref, valor_total, observaciones,
			created_by, created_at
		FROM movimientos %s
		ORDER BY consecutivo DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.Consecutive, &m.Kind, &m.SubKind, &m.Date,
			&m.FromWarehouseID, &m.ToWarehouseID,
			&m.FinancialReference, &m.InvoiceRef, &m.TotalAmount, &m.Observations,
			&m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// NextConsecutive incrementa y devuelve el contador de movimientos en una sola
// sentencia atómica. El UPDATE del upsert bloquea la fila del contador, de
// modo que dos transacciones concurrentes se serializan y nunca comparten
// número.
func (r *MovementRepo) NextConsecutive() (int64, error) {
	query := `
		INSERT INTO consecutivos (nombre, valor)
		VALUES ('movimientos', 1)
		ON CONFLICT (nombre) DO UPDATE SET valor = consecutivos.valor + 1
		RETURNING valor`
	var next int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&next); err != nil {
		return 0, fmt.Errorf("next consecutive: %w", err)
	}
	return next, nil
}

func (r *MovementRepo) loadLines(ctx context.Context, movements []*entity.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Movement, len(movements))
	ids := make([]string, 0, len(movements))
	for _, m := range movements {
		byID[m.ID] = m
		ids = append(ids, m.ID)
	}
	query := `
		SELECT movimiento_id, item_id, cantidad
		FROM movimiento_lineas
		WHERE movimiento_id = ANY($1)
		ORDER BY movimiento_id, posicion`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			movID string
			line  entity.MovementLine
		)
		if err := rows.Scan(&movID, &line.ItemID, &line.Quantity); err != nil {
			return fmt.Errorf("scan movement line: %w", err)
		}
		if m, ok := byID[movID]; ok {
			m.Lines = append(m.Lines, line)
		}
	}
	return rows.Err()
}
