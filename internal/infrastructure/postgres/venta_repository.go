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

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL. Las líneas
// viven en venta_productos y se cargan junto con la cabecera.
type VentaRepo struct {
	q Querier
}

func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaColumns = `
	id, fecha, cliente_id, total, tipo_pago, metodo_pago, banco, nr_factura,
	monto_abonado, saldo_pendiente, tasa_cambio, estado_credito, estado,
	fecha_vencimiento, created_at, updated_at`

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	var clienteID, banco, nrFactura, estadoCredito *string
	err := row.Scan(
		&v.ID, &v.Fecha, &clienteID, &v.Total, &v.TipoPago, &v.MetodoPago,
		&banco, &nrFactura, &v.MontoAbonado, &v.SaldoPendiente, &v.TasaCambio,
		&estadoCredito, &v.Estado, &v.FechaVencimiento, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if clienteID != nil {
		v.ClienteID = *clienteID
	}
	if banco != nil {
		v.Banco = *banco
	}
	if nrFactura != nil {
		v.NrFactura = *nrFactura
	}
	if estadoCredito != nil {
		v.EstadoCredito = *estadoCredito
	}
	return &v, nil
}

func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Fecha, nullIfEmpty(v.ClienteID), v.Total, v.TipoPago, v.MetodoPago,
		nullIfEmpty(v.Banco), nullIfEmpty(v.NrFactura), v.MontoAbonado,
		v.SaldoPendiente, v.TasaCambio, nullIfEmpty(v.EstadoCredito), v.Estado,
		v.FechaVencimiento, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s: %w", v.NrFactura, domain.ErrDuplicate)
		}
		return fmt.Errorf("create venta: %w", err)
	}

	for _, p := range v.Productos {
		_, err := r.q.Exec(ctx, `
			INSERT INTO venta_productos (
				venta_id, producto_id, nombre, codigo, cantidad,
				precio_unitario, costo_unitario, ganancia_unitaria, ganancia_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			v.ID, p.ProductoID, p.Nombre, p.Codigo, p.Cantidad,
			p.PrecioUnitario, p.CostoUnitario, p.GananciaUnitaria, p.GananciaTotal,
		)
		if err != nil {
			return fmt.Errorf("create línea de venta: %w", err)
		}
	}
	return nil
}

func (r *VentaRepo) cargarLineas(ctx context.Context, v *entity.Venta) error {
	rows, err := r.q.Query(ctx, `
		SELECT producto_id, nombre, codigo, cantidad,
		       precio_unitario, costo_unitario, ganancia_unitaria, ganancia_total
		FROM venta_productos WHERE venta_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("líneas de venta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.VentaProducto
		if err := rows.Scan(
			&p.ProductoID, &p.Nombre, &p.Codigo, &p.Cantidad,
			&p.PrecioUnitario, &p.CostoUnitario, &p.GananciaUnitaria, &p.GananciaTotal,
		); err != nil {
			return fmt.Errorf("scan línea de venta: %w", err)
		}
		v.Productos = append(v.Productos, p)
	}
	return rows.Err()
}

func (r *VentaRepo) get(ctx context.Context, id, suffix string) (*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE id = $1` + suffix
	v, err := scanVenta(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	if err := r.cargarLineas(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VentaRepo) GetByID(ctx context.Context, id string) (*entity.Venta, error) {
	return r.get(ctx, id, "")
}

func (r *VentaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venta, error) {
	return r.get(ctx, id, " FOR UPDATE")
}

func filtroVentas(f repository.VentaFiltro) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ClienteID != "" {
		add("cliente_id = $%d", f.ClienteID)
	}
	if f.Estado != "" {
		add("estado = $%d", f.Estado)
	}
	if f.EstadoCredito != "" {
		add("estado_credito = $%d", f.EstadoCredito)
	}
	if f.TipoPago != "" {
		add("tipo_pago = $%d", f.TipoPago)
	}
	if f.Desde != nil {
		add("fecha >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		add("fecha <= $%d", *f.Hasta)
	}
	if f.ConSaldo != nil {
		if *f.ConSaldo {
			conds = append(conds, "saldo_pendiente > 0")
		} else {
			conds = append(conds, "saldo_pendiente = 0")
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	return where, args
}

func (r *VentaRepo) List(ctx context.Context, f repository.VentaFiltro) ([]*entity.Venta, int, error) {
	where, args := filtroVentas(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM ventas`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ventas: %w", err)
	}

	query := `SELECT ` + ventaColumns + ` FROM ventas` + where +
		fmt.Sprintf(` ORDER BY fecha DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var ventas []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venta: %w", err)
		}
		ventas = append(ventas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, v := range ventas {
		if err := r.cargarLineas(ctx, v); err != nil {
			return nil, 0, err
		}
	}
	return ventas, total, nil
}

func (r *VentaRepo) Totales(ctx context.Context, f repository.VentaFiltro) (*repository.VentaTotales, error) {
	where, args := filtroVentas(f)
	query := `
		SELECT COALESCE(SUM(total), 0), COALESCE(SUM(saldo_pendiente), 0)
		FROM ventas` + where
	var t repository.VentaTotales
	if err := r.q.QueryRow(ctx, query, args...).Scan(&t.TotalVentas, &t.TotalSaldoPendiente); err != nil {
		return nil, fmt.Errorf("totales ventas: %w", err)
	}
	return &t, nil
}

func (r *VentaRepo) UpdateAbono(ctx context.Context, v *entity.Venta) error {
	query := `
		UPDATE ventas SET
			monto_abonado = $2, saldo_pendiente = $3, estado_credito = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, v.ID, v.MontoAbonado, v.SaldoPendiente, nullIfEmpty(v.EstadoCredito))
	if err != nil {
		return fmt.Errorf("update abono: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venta %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *VentaRepo) UpdateEstado(ctx context.Context, id, estado string) error {
	tag, err := r.q.Exec(ctx, `UPDATE ventas SET estado = $2, updated_at = now() WHERE id = $1`, id, estado)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *VentaRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM venta_productos WHERE venta_id = $1`, id); err != nil {
		return fmt.Errorf("delete líneas de venta: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *VentaRepo) ExisteNrFactura(ctx context.Context, nr string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM ventas WHERE nr_factura = $1)`, nr).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe nr factura: %w", err)
	}
	return existe, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
