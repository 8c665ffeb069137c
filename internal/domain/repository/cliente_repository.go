package repository

import (
	"context"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// ClienteFiltro filtros del listado de clientes.
type ClienteFiltro struct {
	Busqueda string // nombre, rif o municipio
	Limit    int
	Offset   int
}

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	GetByRIF(ctx context.Context, rif string) (*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	List(ctx context.Context, f ClienteFiltro) ([]*entity.Cliente, int, error)
	Delete(ctx context.Context, id string) error
}
