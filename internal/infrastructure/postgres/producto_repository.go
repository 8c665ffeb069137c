package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

const productoColumns = `
	id, codigo, nombre, proveedor, costo_inicial, acarreo, flete, costo_final,
	cantidad, stock, fecha_ingreso, created_at, updated_at`

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Proveedor,
		&p.CostoInicial, &p.Acarreo, &p.Flete, &p.CostoFinal,
		&p.Cantidad, &p.Stock, &p.FechaIngreso, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Proveedor,
		p.CostoInicial, p.Acarreo, p.Flete, p.CostoFinal,
		p.Cantidad, p.Stock, p.FechaIngreso, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", p.Codigo, domain.ErrDuplicate)
		}
		return fmt.Errorf("create producto: %w", err)
	}
	return nil
}

func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

func (r *ProductoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1`
	p, err := scanProducto(r.q.QueryRow(ctx, query, codigo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("producto con código %s: %w", codigo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get producto por código: %w", err)
	}
	return p, nil
}

func (r *ProductoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProducto(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET
			codigo = $2, nombre = $3, proveedor = $4,
			costo_inicial = $5, acarreo = $6, flete = $7, costo_final = $8,
			fecha_ingreso = $9, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Proveedor,
		p.CostoInicial, p.Acarreo, p.Flete, p.CostoFinal, p.FechaIngreso,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("producto %s: %w", p.Codigo, domain.ErrDuplicate)
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductoRepo) UpdateCostos(ctx context.Context, id string, costoInicial, costoFinal decimal.Decimal) error {
	query := `
		UPDATE productos SET costo_inicial = $2, costo_final = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, costoInicial, costoFinal)
	if err != nil {
		return fmt.Errorf("update costos: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductoRepo) UpdateStock(ctx context.Context, id string, stock, cantidad int64) error {
	query := `
		UPDATE productos SET stock = $2, cantidad = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, stock, cantidad)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductoRepo) List(ctx context.Context, f repository.ProductoFiltro) ([]*entity.Producto, int, error) {
	where := ""
	args := []any{}
	if f.Busqueda != "" {
		busqueda := textutil.NormalizarBusqueda(f.Busqueda)
		where = `
		WHERE unaccent(lower(nombre)) LIKE '%' || $1 || '%'
		   OR unaccent(lower(codigo)) LIKE '%' || $1 || '%'
		   OR unaccent(lower(proveedor)) LIKE '%' || $1 || '%'`
		args = append(args, busqueda)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM productos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count productos: %w", err)
	}

	query := `SELECT ` + productoColumns + ` FROM productos` + where +
		fmt.Sprintf(` ORDER BY nombre LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var productos []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan producto: %w", err)
		}
		productos = append(productos, p)
	}
	return productos, total, rows.Err()
}

func (r *ProductoRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
