package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

var _ repository.CajaRepository = (*CajaRepo)(nil)

// CajaRepo implementación de CajaRepository sobre PostgreSQL.
type CajaRepo struct {
	q Querier
}

func NewCajaRepository(q Querier) *CajaRepo {
	return &CajaRepo{q: q}
}

const cajaColumns = `id, fecha, concepto, moneda, entrada, salida, saldo, tasa_cambio, created_at`

func scanCaja(row pgx.Row) (*entity.CajaTransaccion, error) {
	var t entity.CajaTransaccion
	err := row.Scan(&t.ID, &t.Fecha, &t.Concepto, &t.Moneda, &t.Entrada, &t.Salida, &t.Saldo, &t.TasaCambio, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *CajaRepo) Create(ctx context.Context, t *entity.CajaTransaccion) error {
	query := `
		INSERT INTO caja_transacciones (` + cajaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, t.ID, t.Fecha, t.Concepto, t.Moneda, t.Entrada, t.Salida, t.Saldo, t.TasaCambio, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create movimiento de caja: %w", err)
	}
	return nil
}

func (r *CajaRepo) GetByID(ctx context.Context, id string) (*entity.CajaTransaccion, error) {
	query := `SELECT ` + cajaColumns + ` FROM caja_transacciones WHERE id = $1`
	t, err := scanCaja(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("movimiento de caja %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get movimiento de caja: %w", err)
	}
	return t, nil
}

func (r *CajaRepo) Update(ctx context.Context, t *entity.CajaTransaccion) error {
	query := `
		UPDATE caja_transacciones SET
			fecha = $2, concepto = $3, moneda = $4, entrada = $5, salida = $6, tasa_cambio = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Fecha, t.Concepto, t.Moneda, t.Entrada, t.Salida, t.TasaCambio)
	if err != nil {
		return fmt.Errorf("update movimiento de caja: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("movimiento de caja %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *CajaRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM caja_transacciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento de caja: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("movimiento de caja %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *CajaRepo) List(ctx context.Context, limit, offset int) ([]*entity.CajaTransaccion, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM caja_transacciones`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count caja: %w", err)
	}

	query := `SELECT ` + cajaColumns + ` FROM caja_transacciones ORDER BY fecha DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limitOrDefault(limit), offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list caja: %w", err)
	}
	defer rows.Close()

	var movimientos []*entity.CajaTransaccion
	for rows.Next() {
		t, err := scanCaja(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movimiento de caja: %w", err)
		}
		movimientos = append(movimientos, t)
	}
	return movimientos, total, rows.Err()
}

// Saldos recalcula los saldos vigentes por moneda desde la suma completa,
// para que ediciones de movimientos históricos no los desincronicen.
func (r *CajaRepo) Saldos(ctx context.Context) (*entity.CajaSaldos, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN moneda = 'USD' THEN entrada - salida END), 0),
			COALESCE(SUM(CASE WHEN moneda = 'Bs' THEN entrada - salida END), 0)
		FROM caja_transacciones`
	var s entity.CajaSaldos
	if err := r.q.QueryRow(ctx, query).Scan(&s.USD, &s.Bs); err != nil {
		return nil, fmt.Errorf("saldos de caja: %w", err)
	}
	return &s, nil
}
