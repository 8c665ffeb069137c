package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
	"github.com/dsrcomercial/backoffice-api/internal/domain"
	"github.com/dsrcomercial/backoffice-api/internal/domain/entity"
	"github.com/dsrcomercial/backoffice-api/internal/domain/repository"
)

// ventaRepoStub repositorio en memoria con lo justo para el caso de uso.
type ventaRepoStub struct {
	ventas map[string]*entity.Venta
}

func newVentaRepoStub(ventas ...*entity.Venta) *ventaRepoStub {
	s := &ventaRepoStub{ventas: make(map[string]*entity.Venta)}
	for _, v := range ventas {
		s.ventas[v.ID] = v
	}
	return s
}

func (s *ventaRepoStub) Create(_ context.Context, v *entity.Venta) error {
	s.ventas[v.ID] = v
	return nil
}

func (s *ventaRepoStub) GetByID(_ context.Context, id string) (*entity.Venta, error) {
	v, ok := s.ventas[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copia := *v
	return &copia, nil
}

func (s *ventaRepoStub) GetForUpdate(ctx context.Context, id string) (*entity.Venta, error) {
	return s.GetByID(ctx, id)
}

func (s *ventaRepoStub) List(_ context.Context, f repository.VentaFiltro) ([]*entity.Venta, int, error) {
	var out []*entity.Venta
	for _, v := range s.ventas {
		if f.TipoPago != "" && v.TipoPago != f.TipoPago {
			continue
		}
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		if f.EstadoCredito != "" && v.EstadoCredito != f.EstadoCredito {
			continue
		}
		copia := *v
		out = append(out, &copia)
	}
	return out, len(out), nil
}

func (s *ventaRepoStub) Totales(_ context.Context, _ repository.VentaFiltro) (*repository.VentaTotales, error) {
	return &repository.VentaTotales{}, nil
}

func (s *ventaRepoStub) UpdateAbono(_ context.Context, v *entity.Venta) error {
	copia := *v
	s.ventas[v.ID] = &copia
	return nil
}

func (s *ventaRepoStub) UpdateEstado(_ context.Context, id, estado string) error {
	s.ventas[id].Estado = estado
	return nil
}

func (s *ventaRepoStub) Delete(_ context.Context, id string) error {
	delete(s.ventas, id)
	return nil
}

func (s *ventaRepoStub) ExisteNrFactura(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func ventaCredito(id string, saldo string, vence time.Time) *entity.Venta {
	total, _ := decimal.NewFromString("100")
	pendiente, _ := decimal.NewFromString(saldo)
	return &entity.Venta{
		ID:               id,
		Fecha:            time.Now(),
		Total:            total,
		TipoPago:         entity.PagoCredito,
		MetodoPago:       entity.MetodoEfectivo,
		MontoAbonado:     total.Sub(pendiente),
		SaldoPendiente:   pendiente,
		EstadoCredito:    entity.CreditoVigente,
		Estado:           entity.VentaActiva,
		FechaVencimiento: &vence,
	}
}

// ── RegistrarAbono ───────────────────────────────────────────────────────

func TestRegistrarAbono_DescuentaSaldoYPagaElCredito(t *testing.T) {
	repo := newVentaRepoStub(ventaCredito("v1", "60", time.Now().Add(24*time.Hour)))
	uc := usecase.NewVentaUsecase(repo)

	venta, err := uc.RegistrarAbono(context.Background(), "v1", decimal.NewFromInt(25))
	require.NoError(t, err)
	assert.True(t, venta.SaldoPendiente.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, entity.CreditoVigente, venta.EstadoCredito)

	venta, err = uc.RegistrarAbono(context.Background(), "v1", decimal.NewFromInt(35))
	require.NoError(t, err)
	assert.True(t, venta.SaldoPendiente.IsZero())
	assert.Equal(t, entity.CreditoPagado, venta.EstadoCredito)
}

func TestRegistrarAbono_RechazaMontoMayorAlSaldo(t *testing.T) {
	repo := newVentaRepoStub(ventaCredito("v1", "10", time.Now().Add(24*time.Hour)))
	uc := usecase.NewVentaUsecase(repo)

	_, err := uc.RegistrarAbono(context.Background(), "v1", decimal.NewFromInt(11))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarAbono_SoloVentasACredito(t *testing.T) {
	contado := ventaCredito("v1", "0", time.Now())
	contado.TipoPago = entity.PagoContado
	contado.EstadoCredito = ""
	repo := newVentaRepoStub(contado)
	uc := usecase.NewVentaUsecase(repo)

	_, err := uc.RegistrarAbono(context.Background(), "v1", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── MarcarVencidas ───────────────────────────────────────────────────────

func TestMarcarVencidas_SoloCreditosConFechaPasada(t *testing.T) {
	ahora := time.Now()
	repo := newVentaRepoStub(
		ventaCredito("vencida", "40", ahora.Add(-48*time.Hour)),
		ventaCredito("vigente", "40", ahora.Add(48*time.Hour)),
	)
	uc := usecase.NewVentaUsecase(repo)

	cambiadas, err := uc.MarcarVencidas(context.Background(), ahora)
	require.NoError(t, err)
	assert.Equal(t, 1, cambiadas)

	vencida, err := uc.Get(context.Background(), "vencida")
	require.NoError(t, err)
	assert.Equal(t, entity.CreditoVencido, vencida.EstadoCredito)

	vigente, err := uc.Get(context.Background(), "vigente")
	require.NoError(t, err)
	assert.Equal(t, entity.CreditoVigente, vigente.EstadoCredito)
}

// ── Eliminar ─────────────────────────────────────────────────────────────

func TestEliminar_RechazaVentasActivas(t *testing.T) {
	repo := newVentaRepoStub(ventaCredito("v1", "40", time.Now()))
	uc := usecase.NewVentaUsecase(repo)

	err := uc.Eliminar(context.Background(), "v1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.ventas["v1"].Estado = entity.VentaAnulada
	require.NoError(t, uc.Eliminar(context.Background(), "v1"))
	_, err = uc.Get(context.Background(), "v1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
