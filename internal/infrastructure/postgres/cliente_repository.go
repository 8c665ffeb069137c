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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `
	id, nombre, telefono, email, direccion, municipio, rif, categorias,
	fecha_registro, ultima_compra, created_at, updated_at`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Nombre, &c.Telefono, &c.Email, &c.Direccion, &c.Municipio,
		&c.RIF, &c.Categorias, &c.FechaRegistro, &c.UltimaCompra,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Telefono, c.Email, c.Direccion, c.Municipio,
		c.RIF, c.Categorias, c.FechaRegistro, c.UltimaCompra,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente con RIF %s: %w", c.RIF, domain.ErrDuplicate)
		}
		return fmt.Errorf("create cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	c, err := scanCliente(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

func (r *ClienteRepo) GetByRIF(ctx context.Context, rif string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE rif = $1`
	c, err := scanCliente(r.q.QueryRow(ctx, query, rif))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cliente con RIF %s: %w", rif, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get cliente por RIF: %w", err)
	}
	return c, nil
}

func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET
			nombre = $2, telefono = $3, email = $4, direccion = $5, municipio = $6,
			rif = $7, categorias = $8, ultima_compra = $9, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Nombre, c.Telefono, c.Email, c.Direccion, c.Municipio,
		c.RIF, c.Categorias, c.UltimaCompra,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cliente con RIF %s: %w", c.RIF, domain.ErrDuplicate)
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", c.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ClienteRepo) List(ctx context.Context, f repository.ClienteFiltro) ([]*entity.Cliente, int, error) {
	where := ""
	args := []any{}
	if f.Busqueda != "" {
		busqueda := textutil.NormalizarBusqueda(f.Busqueda)
		where = `
		WHERE unaccent(lower(nombre)) LIKE '%' || $1 || '%'
		   OR unaccent(lower(rif)) LIKE '%' || $1 || '%'
		   OR unaccent(lower(municipio)) LIKE '%' || $1 || '%'`
		args = append(args, busqueda)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	query := `SELECT ` + clienteColumns + ` FROM clientes` + where +
		fmt.Sprintf(` ORDER BY nombre LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limitOrDefault(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var clientes []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		clientes = append(clientes, c)
	}
	return clientes, total, rows.Err()
}

func (r *ClienteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
