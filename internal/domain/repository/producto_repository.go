package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
)

// ProductoFiltro filtros del listado de productos.
type ProductoFiltro struct {
	Busqueda string // nombre, codigo o proveedor (sin acentos, minúsculas)
	Limit    int
	Offset   int
}

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(ctx context.Context, p *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Producto, error)
	Update(ctx context.Context, p *entity.Producto) error
	// UpdateCostos actualiza solo los campos de costo (motor de inventario).
	UpdateCostos(ctx context.Context, id string, costoInicial, costoFinal decimal.Decimal) error
	// UpdateStock fija stock y cantidad acumulada (solo dentro del commit transaccional).
	UpdateStock(ctx context.Context, id string, stock, cantidad int64) error
	List(ctx context.Context, f ProductoFiltro) ([]*entity.Producto, int, error)
	Delete(ctx context.Context, id string) error
}
