package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

var _ repository.GastoRepository = (*GastoRepo)(nil)

// GastoRepo implementación de GastoRepository sobre PostgreSQL.
type GastoRepo struct {
	q Querier
}

func NewGastoRepository(q Querier) *GastoRepo {
	return &GastoRepo{q: q}
}

const gastoColumns = `id, descripcion, monto, categoria, fecha, created_at, updated_at`

func scanGasto(row pgx.Row) (*entity.Gasto, error) {
	var g entity.Gasto
	err := row.Scan(&g.ID, &g.Descripcion, &g.Monto, &g.Categoria, &g.Fecha, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GastoRepo) Create(ctx context.Context, g *entity.Gasto) error {
	query := `
		INSERT INTO gastos (` + gastoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, g.ID, g.Descripcion, g.Monto, g.Categoria, g.Fecha, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create gasto: %w", err)
	}
	return nil
}

func (r *GastoRepo) GetByID(ctx context.Context, id string) (*entity.Gasto, error) {
	query := `SELECT ` + gastoColumns + ` FROM gastos WHERE id = $1`
	g, err := scanGasto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("gasto %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get gasto: %w", err)
	}
	return g, nil
}

func (r *GastoRepo) Update(ctx context.Context, g *entity.Gasto) error {
	query := `
		UPDATE gastos SET descripcion = $2, monto = $3, categoria = $4, fecha = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, g.ID, g.Descripcion, g.Monto, g.Categoria, g.Fecha)
	if err != nil {
		return fmt.Errorf("update gasto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gasto %s: %w", g.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *GastoRepo) List(ctx context.Context, f repository.GastoFiltro) ([]*entity.Gasto, int, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Categoria != "" {
		add("categoria = $%d", f.Categoria)
	}
	if f.Desde != nil {
		add("fecha >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		add("fecha <= $%d", *f.Hasta)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM gastos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count gastos: %w", err)
	}

	query := `SELECT ` + gastoColumns + ` FROM gastos` + where +
		fmt.Sprintf(` ORDER BY fecha DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list gastos: %w", err)
	}
	defer rows.Close()

	var gastos []*entity.Gasto
	for rows.Next() {
		g, err := scanGasto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan gasto: %w", err)
		}
		gastos = append(gastos, g)
	}
	return gastos, total, rows.Err()
}

func (r *GastoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM gastos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gasto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("gasto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
