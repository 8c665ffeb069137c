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
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

var _ repository.FacturaPendienteRepository = (*FacturaPendienteRepo)(nil)

// FacturaPendienteRepo implementación de FacturaPendienteRepository sobre PostgreSQL.
type FacturaPendienteRepo struct {
	q Querier
}

func NewFacturaPendienteRepository(q Querier) *FacturaPendienteRepo {
	return &FacturaPendienteRepo{q: q}
}

const facturaColumns = `id, fecha, concepto, monto, abono, saldo, created_at, updated_at`

func scanFactura(row pgx.Row) (*entity.FacturaPendiente, error) {
	var f entity.FacturaPendiente
	err := row.Scan(&f.ID, &f.Fecha, &f.Concepto, &f.Monto, &f.Abono, &f.Saldo, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FacturaPendienteRepo) Create(ctx context.Context, f *entity.FacturaPendiente) error {
	query := `
		INSERT INTO facturas_pendientes (` + facturaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, f.ID, f.Fecha, f.Concepto, f.Monto, f.Abono, f.Saldo, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create factura pendiente: %w", err)
	}
	return nil
}

func (r *FacturaPendienteRepo) GetByID(ctx context.Context, id string) (*entity.FacturaPendiente, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas_pendientes WHERE id = $1`
	f, err := scanFactura(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("factura pendiente %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get factura pendiente: %w", err)
	}
	return f, nil
}

func (r *FacturaPendienteRepo) Update(ctx context.Context, f *entity.FacturaPendiente) error {
	query := `
		UPDATE facturas_pendientes SET
			fecha = $2, concepto = $3, monto = $4, abono = $5, saldo = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, f.ID, f.Fecha, f.Concepto, f.Monto, f.Abono, f.Saldo)
	if err != nil {
		return fmt.Errorf("update factura pendiente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura pendiente %s: %w", f.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *FacturaPendienteRepo) List(ctx context.Context, filtro repository.FacturaPendienteFiltro) ([]*entity.FacturaPendiente, int, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	switch filtro.Estado {
	case "pendientes":
		conds = append(conds, "saldo > 0 AND abono = 0")
	case "parciales":
		conds = append(conds, "saldo > 0 AND abono > 0")
	case "pagadas":
		conds = append(conds, "saldo = 0")
	}
	if filtro.Busqueda != "" {
		add("unaccent(lower(concepto)) LIKE '%%' || $%d || '%%'", textutil.NormalizarBusqueda(filtro.Busqueda))
	}
	if filtro.Desde != nil {
		add("fecha >= $%d", *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add("fecha <= $%d", *filtro.Hasta)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM facturas_pendientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count facturas pendientes: %w", err)
	}

	query := `SELECT ` + facturaColumns + ` FROM facturas_pendientes` + where +
		fmt.Sprintf(` ORDER BY fecha DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(filtro.Limit), filtro.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list facturas pendientes: %w", err)
	}
	defer rows.Close()

	var facturas []*entity.FacturaPendiente
	for rows.Next() {
		f, err := scanFactura(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan factura pendiente: %w", err)
		}
		facturas = append(facturas, f)
	}
	return facturas, total, rows.Err()
}

func (r *FacturaPendienteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM facturas_pendientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete factura pendiente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("factura pendiente %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
