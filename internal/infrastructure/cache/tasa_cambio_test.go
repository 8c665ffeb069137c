package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *TasaCambioStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTasaCambioStore(rdb)
}

func TestTasaCambio_GuardarYLeer(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	tasa, _ := decimal.NewFromString("36.50")
	require.NoError(t, store.Guardar(ctx, tasa))

	leida, err := store.Ultima(ctx)
	require.NoError(t, err)
	assert.True(t, leida.Equal(tasa), "leída %s", leida)
}

func TestTasaCambio_SinValorDevuelveCero(t *testing.T) {
	store := newStore(t)

	tasa, err := store.Ultima(context.Background())
	require.NoError(t, err)
	assert.True(t, tasa.IsZero())
}

func TestTasaCambio_SobrescribeLaAnterior(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	primera, _ := decimal.NewFromString("36.50")
	segunda, _ := decimal.NewFromString("37.10")
	require.NoError(t, store.Guardar(ctx, primera))
	require.NoError(t, store.Guardar(ctx, segunda))

	leida, err := store.Ultima(ctx)
	require.NoError(t, err)
	assert.True(t, leida.Equal(segunda))
}
