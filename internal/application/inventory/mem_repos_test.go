package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// memStore es el estado compartido de los repositorios en memoria que usan
// las pruebas del caso de uso. Simula la BD sin tocar Postgres.
type memStore struct {
	productos map[string]*entity.Producto
	lotes     map[string]*entity.Lote
	ventas    map[string]*entity.Venta
	clientes  map[string]*entity.Cliente
	secuencia int64
}

func newMemStore() *memStore {
	return &memStore{
		productos: map[string]*entity.Producto{},
		lotes:     map[string]*entity.Lote{},
		ventas:    map[string]*entity.Venta{},
		clientes:  map[string]*entity.Cliente{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.secuencia = s.secuencia
	for id, p := range s.productos {
		cp := *p
		c.productos[id] = &cp
	}
	for id, l := range s.lotes {
		cl := *l
		c.lotes[id] = &cl
	}
	for id, v := range s.ventas {
		cv := *v
		cv.Productos = append([]entity.VentaProducto(nil), v.Productos...)
		c.ventas[id] = &cv
	}
	for id, cl := range s.clientes {
		cc := *cl
		c.clientes[id] = &cc
	}
	return c
}

// memTxRunner simula la transacción con copia y restauración del estado: si
// fn devuelve error, el store vuelve al estado previo (rollback). Los hooks
// en antes se ejecutan uno por Run, antes de la "tx", para simular a otro
// proceso escribiendo entre la planificación y el commit.
type memTxRunner struct {
	s     *memStore
	antes []func(*memStore)
	runs  int
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	loteRepo repository.LoteRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
) error) error {
	r.runs++
	if len(r.antes) > 0 {
		hook := r.antes[0]
		r.antes = r.antes[1:]
		hook(r.s)
	}
	snapshot := r.s.clone()
	err := fn(&memLoteRepo{s: r.s}, &memProductoRepo{s: r.s}, &memVentaRepo{s: r.s})
	if err != nil {
		*r.s = *snapshot
	}
	return err
}

// ── Productos ────────────────────────────────────────────────────────────

type memProductoRepo struct{ s *memStore }

func (r *memProductoRepo) Create(_ context.Context, p *entity.Producto) error {
	if _, ok := r.s.productos[p.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) GetByID(_ context.Context, id string) (*entity.Producto, error) {
	p, ok := r.s.productos[id]
	if !ok {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *memProductoRepo) GetByCodigo(_ context.Context, codigo string) (*entity.Producto, error) {
	for _, p := range r.s.productos {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memProductoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	return r.GetByID(ctx, id)
}

func (r *memProductoRepo) Update(_ context.Context, p *entity.Producto) error {
	if _, ok := r.s.productos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.productos[p.ID] = &cp
	return nil
}

func (r *memProductoRepo) UpdateCostos(_ context.Context, id string, costoInicial, costoFinal decimal.Decimal) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostoInicial = costoInicial
	p.CostoFinal = costoFinal
	return nil
}

func (r *memProductoRepo) UpdateStock(_ context.Context, id string, stock, cantidad int64) error {
	p, ok := r.s.productos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.Cantidad = cantidad
	return nil
}

func (r *memProductoRepo) List(_ context.Context, f repository.ProductoFiltro) ([]*entity.Producto, int, error) {
	var out []*entity.Producto
	for _, p := range r.s.productos {
		if f.Busqueda != "" && !strings.Contains(strings.ToLower(p.Nombre), f.Busqueda) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	out = paginar(out, f.Limit, f.Offset)
	return out, total, nil
}

func (r *memProductoRepo) Delete(_ context.Context, id string) error {
	delete(r.s.productos, id)
	return nil
}

// ── Lotes ────────────────────────────────────────────────────────────────

type memLoteRepo struct{ s *memStore }

func (r *memLoteRepo) Create(_ context.Context, l *entity.Lote) error {
	r.s.secuencia++
	cl := *l
	cl.Secuencia = r.s.secuencia
	r.s.lotes[l.ID] = &cl
	return nil
}

func (r *memLoteRepo) GetByID(_ context.Context, id string) (*entity.Lote, error) {
	l, ok := r.s.lotes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cl := *l
	return &cl, nil
}

func (r *memLoteRepo) LotesAbiertos(_ context.Context, productoID string) ([]entity.Lote, error) {
	var out []entity.Lote
	for _, l := range r.s.lotes {
		if l.ProductoID == productoID && l.EsLote() && l.StockLote > 0 {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Fecha.Equal(out[j].Fecha) {
			return out[i].Fecha.Before(out[j].Fecha)
		}
		return out[i].Secuencia < out[j].Secuencia
	})
	return out, nil
}

func (r *memLoteRepo) LotesForUpdate(_ context.Context, ids []string) (map[string]*entity.Lote, error) {
	out := make(map[string]*entity.Lote, len(ids))
	for _, id := range ids {
		if l, ok := r.s.lotes[id]; ok {
			cl := *l
			out[id] = &cl
		}
	}
	return out, nil
}

func (r *memLoteRepo) DescontarStockLote(_ context.Context, id string, cantidad int64) error {
	l, ok := r.s.lotes[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.StockLote -= cantidad
	return nil
}

func (r *memLoteRepo) AcreditarStockLote(_ context.Context, id string, cantidad int64) error {
	l, ok := r.s.lotes[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.StockLote += cantidad
	return nil
}

func (r *memLoteRepo) LoteMasReciente(_ context.Context, productoID string) (*entity.Lote, error) {
	var reciente *entity.Lote
	for _, l := range r.s.lotes {
		if l.ProductoID != productoID || !l.EsLote() {
			continue
		}
		if reciente == nil || l.Secuencia > reciente.Secuencia {
			reciente = l
		}
	}
	if reciente == nil {
		return nil, nil
	}
	cl := *reciente
	return &cl, nil
}

func (r *memLoteRepo) SumaStockLotes(_ context.Context, productoID string) (int64, error) {
	var suma int64
	for _, l := range r.s.lotes {
		if l.ProductoID == productoID && l.EsLote() {
			suma += l.StockLote
		}
	}
	return suma, nil
}

func (r *memLoteRepo) List(_ context.Context, f repository.HistorialFiltro) ([]*entity.Lote, int, error) {
	var out []*entity.Lote
	for _, l := range r.s.lotes {
		if f.Operacion != "" && l.Operacion != f.Operacion {
			continue
		}
		if f.ProductoID != "" && l.ProductoID != f.ProductoID {
			continue
		}
		cl := *l
		out = append(out, &cl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Secuencia > out[j].Secuencia })
	total := len(out)
	out = paginar(out, f.Limit, f.Offset)
	return out, total, nil
}

func (r *memLoteRepo) Totales(ctx context.Context, f repository.HistorialFiltro) (*repository.HistorialTotales, error) {
	lotes, _, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	t := &repository.HistorialTotales{}
	for _, l := range lotes {
		t.TotalCantidad += l.Cantidad
		t.TotalStockLote += l.StockLote
	}
	return t, nil
}

// ── Ventas ───────────────────────────────────────────────────────────────

type memVentaRepo struct{ s *memStore }

func (r *memVentaRepo) Create(_ context.Context, v *entity.Venta) error {
	if _, ok := r.s.ventas[v.ID]; ok {
		return domain.ErrDuplicate
	}
	cv := *v
	cv.Productos = append([]entity.VentaProducto(nil), v.Productos...)
	r.s.ventas[v.ID] = &cv
	return nil
}

func (r *memVentaRepo) GetByID(_ context.Context, id string) (*entity.Venta, error) {
	v, ok := r.s.ventas[id]
	if !ok {
		return nil, fmt.Errorf("venta %s: %w", id, domain.ErrNotFound)
	}
	cv := *v
	cv.Productos = append([]entity.VentaProducto(nil), v.Productos...)
	return &cv, nil
}

func (r *memVentaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venta, error) {
	return r.GetByID(ctx, id)
}

func (r *memVentaRepo) List(_ context.Context, f repository.VentaFiltro) ([]*entity.Venta, int, error) {
	var out []*entity.Venta
	for _, v := range r.s.ventas {
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		cv := *v
		out = append(out, &cv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *memVentaRepo) Totales(ctx context.Context, f repository.VentaFiltro) (*repository.VentaTotales, error) {
	ventas, _, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	t := &repository.VentaTotales{TotalVentas: decimal.Zero, TotalSaldoPendiente: decimal.Zero}
	for _, v := range ventas {
		t.TotalVentas = t.TotalVentas.Add(v.Total)
		t.TotalSaldoPendiente = t.TotalSaldoPendiente.Add(v.SaldoPendiente)
	}
	return t, nil
}

func (r *memVentaRepo) UpdateAbono(_ context.Context, v *entity.Venta) error {
	got, ok := r.s.ventas[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	got.MontoAbonado = v.MontoAbonado
	got.SaldoPendiente = v.SaldoPendiente
	got.EstadoCredito = v.EstadoCredito
	got.UpdatedAt = time.Now()
	return nil
}

func (r *memVentaRepo) UpdateEstado(_ context.Context, id, estado string) error {
	v, ok := r.s.ventas[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	return nil
}

func (r *memVentaRepo) Delete(_ context.Context, id string) error {
	delete(r.s.ventas, id)
	return nil
}

func (r *memVentaRepo) ExisteNrFactura(_ context.Context, nr string) (bool, error) {
	for _, v := range r.s.ventas {
		if v.NrFactura == nr {
			return true, nil
		}
	}
	return false, nil
}

// ── Clientes ─────────────────────────────────────────────────────────────

type memClienteRepo struct{ s *memStore }

func (r *memClienteRepo) Create(_ context.Context, c *entity.Cliente) error {
	cc := *c
	r.s.clientes[c.ID] = &cc
	return nil
}

func (r *memClienteRepo) GetByID(_ context.Context, id string) (*entity.Cliente, error) {
	c, ok := r.s.clientes[id]
	if !ok {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	cc := *c
	return &cc, nil
}

func (r *memClienteRepo) GetByRIF(_ context.Context, rif string) (*entity.Cliente, error) {
	for _, c := range r.s.clientes {
		if c.RIF == rif {
			cc := *c
			return &cc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memClienteRepo) Update(_ context.Context, c *entity.Cliente) error {
	cc := *c
	r.s.clientes[c.ID] = &cc
	return nil
}

func (r *memClienteRepo) List(_ context.Context, f repository.ClienteFiltro) ([]*entity.Cliente, int, error) {
	var out []*entity.Cliente
	for _, c := range r.s.clientes {
		cc := *c
		out = append(out, &cc)
	}
	return out, len(out), nil
}

func (r *memClienteRepo) Delete(_ context.Context, id string) error {
	delete(r.s.clientes, id)
	return nil
}

func paginar[T any](in []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(in) {
			return nil
		}
		in = in[offset:]
	}
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
