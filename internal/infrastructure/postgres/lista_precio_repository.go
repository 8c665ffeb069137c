package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
	"github.com/dsrcomercial/backoffice-api/pkg/textutil"
)

var _ repository.ListaPrecioRepository = (*ListaPrecioRepo)(nil)

// ListaPrecioRepo implementación de ListaPrecioRepository sobre PostgreSQL.
type ListaPrecioRepo struct {
	q Querier
}

func NewListaPrecioRepository(q Querier) *ListaPrecioRepo {
	return &ListaPrecioRepo{q: q}
}

const listaPrecioColumns = `
	id, producto_id, nombre_producto, codigo_producto,
	precio1, precio2, precio3, precio_mayorista, descripcion, activo,
	created_at, updated_at`

func scanListaPrecio(row pgx.Row) (*entity.ListaPrecio, error) {
	var lp entity.ListaPrecio
	err := row.Scan(
		&lp.ID, &lp.ProductoID, &lp.NombreProducto, &lp.CodigoProducto,
		&lp.Precio1, &lp.Precio2, &lp.Precio3, &lp.PrecioMayorista,
		&lp.Descripcion, &lp.Activo, &lp.CreatedAt, &lp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

func (r *ListaPrecioRepo) Create(ctx context.Context, lp *entity.ListaPrecio) error {
	query := `
		INSERT INTO lista_precios (` + listaPrecioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		lp.ID, lp.ProductoID, lp.NombreProducto, lp.CodigoProducto,
		lp.Precio1, lp.Precio2, lp.Precio3, lp.PrecioMayorista,
		lp.Descripcion, lp.Activo, lp.CreatedAt, lp.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lista de precios del producto %s: %w", lp.ProductoID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create lista de precios: %w", err)
	}
	return nil
}

func (r *ListaPrecioRepo) GetByID(ctx context.Context, id string) (*entity.ListaPrecio, error) {
	query := `SELECT ` + listaPrecioColumns + ` FROM lista_precios WHERE id = $1`
	lp, err := scanListaPrecio(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lista de precios %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get lista de precios: %w", err)
	}
	return lp, nil
}

func (r *ListaPrecioRepo) GetByProducto(ctx context.Context, productoID string) (*entity.ListaPrecio, error) {
	query := `SELECT ` + listaPrecioColumns + ` FROM lista_precios WHERE producto_id = $1`
	lp, err := scanListaPrecio(r.q.QueryRow(ctx, query, productoID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lista de precios del producto %s: %w", productoID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get lista de precios por producto: %w", err)
	}
	return lp, nil
}

func (r *ListaPrecioRepo) Update(ctx context.Context, lp *entity.ListaPrecio) error {
	query := `
		UPDATE lista_precios SET
			precio1 = $2, precio2 = $3, precio3 = $4, precio_mayorista = $5,
			descripcion = $6, activo = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		lp.ID, lp.Precio1, lp.Precio2, lp.Precio3, lp.PrecioMayorista,
		lp.Descripcion, lp.Activo,
	)
	if err != nil {
		return fmt.Errorf("update lista de precios: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lista de precios %s: %w", lp.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ListaPrecioRepo) List(ctx context.Context, busqueda string, limit, offset int) ([]*entity.ListaPrecio, int, error) {
	where := ""
	args := []any{}
	if busqueda != "" {
		where = `
		WHERE unaccent(lower(nombre_producto)) LIKE '%' || $1 || '%'
		   OR unaccent(lower(codigo_producto)) LIKE '%' || $1 || '%'`
		args = append(args, textutil.NormalizarBusqueda(busqueda))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM lista_precios`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lista de precios: %w", err)
	}

	query := `SELECT ` + listaPrecioColumns + ` FROM lista_precios` + where +
		fmt.Sprintf(` ORDER BY nombre_producto LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(limit), offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lista de precios: %w", err)
	}
	defer rows.Close()

	var listas []*entity.ListaPrecio
	for rows.Next() {
		lp, err := scanListaPrecio(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lista de precios: %w", err)
		}
		listas = append(listas, lp)
	}
	return listas, total, rows.Err()
}

func (r *ListaPrecioRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM lista_precios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lista de precios: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("lista de precios %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
