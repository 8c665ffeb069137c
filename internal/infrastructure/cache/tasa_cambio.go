package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/dsrcomercial/backoffice-api/internal/application/usecase"
)

const tasaCambioKey = "backoffice:tasa_cambio:ultima"

var _ usecase.TasaCambioStore = (*TasaCambioStore)(nil)

// TasaCambioStore guarda en Redis la última tasa de cambio Bs/USD usada, para
// precargarla en el siguiente movimiento de caja. Sin valor guardado devuelve
// cero.
type TasaCambioStore struct {
	rdb *redis.Client
}

func NewTasaCambioStore(rdb *redis.Client) *TasaCambioStore {
	return &TasaCambioStore{rdb: rdb}
}

func (s *TasaCambioStore) Guardar(ctx context.Context, tasa decimal.Decimal) error {
	if err := s.rdb.Set(ctx, tasaCambioKey, tasa.String(), 0).Err(); err != nil {
		return fmt.Errorf("guardar tasa de cambio: %w", err)
	}
	return nil
}

func (s *TasaCambioStore) Ultima(ctx context.Context) (decimal.Decimal, error) {
	val, err := s.rdb.Get(ctx, tasaCambioKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("leer tasa de cambio: %w", err)
	}
	tasa, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tasa de cambio corrupta %q: %w", val, err)
	}
	return tasa, nil
}
