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

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementación de LoteRepository sobre PostgreSQL. La tabla
// historial guarda el ledger completo; secuencia es un bigserial que
// desempata el orden FIFO cuando dos lotes comparten fecha.
type LoteRepo struct {
	q Querier
}

func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

const loteColumns = `
	id, secuencia, producto_id, nombre_producto, codigo_producto, operacion,
	cantidad, stock_anterior, stock_nuevo, costo_final, stock_lote, fecha, detalles`

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(
		&l.ID, &l.Secuencia, &l.ProductoID, &l.NombreProducto, &l.CodigoProducto,
		&l.Operacion, &l.Cantidad, &l.StockAnterior, &l.StockNuevo,
		&l.CostoFinal, &l.StockLote, &l.Fecha, &l.Detalles,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LoteRepo) Create(ctx context.Context, l *entity.Lote) error {
	// secuencia la asigna la BD; se devuelve para que el asiento quede completo.
	query := `
		INSERT INTO historial (
			id, producto_id, nombre_producto, codigo_producto, operacion,
			cantidad, stock_anterior, stock_nuevo, costo_final, stock_lote, fecha, detalles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING secuencia`
	err := r.q.QueryRow(ctx, query,
		l.ID, l.ProductoID, l.NombreProducto, l.CodigoProducto, l.Operacion,
		l.Cantidad, l.StockAnterior, l.StockNuevo, l.CostoFinal, l.StockLote,
		l.Fecha, l.Detalles,
	).Scan(&l.Secuencia)
	if err != nil {
		return fmt.Errorf("create asiento: %w", err)
	}
	return nil
}

func (r *LoteRepo) GetByID(ctx context.Context, id string) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM historial WHERE id = $1`
	l, err := scanLote(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("asiento %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get asiento: %w", err)
	}
	return l, nil
}

func (r *LoteRepo) LotesAbiertos(ctx context.Context, productoID string) ([]entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM historial
		WHERE producto_id = $1
		  AND operacion IN ('creacion', 'entrada')
		  AND stock_lote > 0
		ORDER BY fecha, secuencia`
	rows, err := r.q.Query(ctx, query, productoID)
	if err != nil {
		return nil, fmt.Errorf("lotes abiertos: %w", err)
	}
	defer rows.Close()

	var lotes []entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lotes = append(lotes, *l)
	}
	return lotes, rows.Err()
}

func (r *LoteRepo) LotesForUpdate(ctx context.Context, ids []string) (map[string]*entity.Lote, error) {
	if len(ids) == 0 {
		return map[string]*entity.Lote{}, nil
	}
	query := `SELECT ` + loteColumns + ` FROM historial WHERE id = ANY($1) FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("lotes for update: %w", err)
	}
	defer rows.Close()

	lotes := make(map[string]*entity.Lote, len(ids))
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lotes[l.ID] = l
	}
	return lotes, rows.Err()
}

func (r *LoteRepo) DescontarStockLote(ctx context.Context, id string, cantidad int64) error {
	query := `UPDATE historial SET stock_lote = stock_lote - $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, cantidad)
	if err != nil {
		return fmt.Errorf("descontar stock de lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *LoteRepo) AcreditarStockLote(ctx context.Context, id string, cantidad int64) error {
	query := `UPDATE historial SET stock_lote = stock_lote + $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, cantidad)
	if err != nil {
		return fmt.Errorf("acreditar stock de lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lote %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *LoteRepo) LoteMasReciente(ctx context.Context, productoID string) (*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM historial
		WHERE producto_id = $1 AND operacion IN ('creacion', 'entrada')
		ORDER BY secuencia DESC
		LIMIT 1`
	l, err := scanLote(r.q.QueryRow(ctx, query, productoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lote más reciente: %w", err)
	}
	return l, nil
}

func (r *LoteRepo) SumaStockLotes(ctx context.Context, productoID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(stock_lote), 0)
		FROM historial
		WHERE producto_id = $1 AND operacion IN ('creacion', 'entrada')`
	var suma int64
	if err := r.q.QueryRow(ctx, query, productoID).Scan(&suma); err != nil {
		return 0, fmt.Errorf("suma stock de lotes: %w", err)
	}
	return suma, nil
}

func filtroHistorial(f repository.HistorialFiltro) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Operacion != "" {
		add("operacion = $%d", f.Operacion)
	}
	if f.ProductoID != "" {
		add("producto_id = $%d", f.ProductoID)
	}
	if f.Busqueda != "" {
		add("(unaccent(lower(nombre_producto)) LIKE '%%' || $%d || '%%'", textutil.NormalizarBusqueda(f.Busqueda))
		// el mismo parámetro aplica al código
		conds[len(conds)-1] += fmt.Sprintf(" OR unaccent(lower(codigo_producto)) LIKE '%%' || $%d || '%%')", len(args))
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
	return where, args
}

func (r *LoteRepo) List(ctx context.Context, f repository.HistorialFiltro) ([]*entity.Lote, int, error) {
	where, args := filtroHistorial(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM historial`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count historial: %w", err)
	}

	query := `SELECT ` + loteColumns + ` FROM historial` + where +
		fmt.Sprintf(` ORDER BY fecha DESC, secuencia DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list historial: %w", err)
	}
	defer rows.Close()

	var lotes []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan asiento: %w", err)
		}
		lotes = append(lotes, l)
	}
	return lotes, total, rows.Err()
}

func (r *LoteRepo) Totales(ctx context.Context, f repository.HistorialFiltro) (*repository.HistorialTotales, error) {
	where, args := filtroHistorial(f)
	query := `
		SELECT COALESCE(SUM(cantidad), 0), COALESCE(SUM(stock_lote), 0)
		FROM historial` + where
	var t repository.HistorialTotales
	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.TotalCantidad, &t.TotalStockLote); err != nil {
		return nil, fmt.Errorf("totales historial: %w", err)
	}
	return &t, nil
}
