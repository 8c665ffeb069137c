package inventory

import (
	"context"
	"time"

	"github.com/dsrcomercial/backoffice-api/pkg/logger"
)

// ConsistencyJob ejecuta VerificarConsistencia cada cierto intervalo y deja
// constancia en el log de cualquier discrepancia. No corrige nada solo: una
// discrepancia real requiere intervención manual.
type ConsistencyJob struct {
	uc        *Usecase
	intervalo time.Duration
	log       *logger.Logger
}

func NewConsistencyJob(uc *Usecase, intervalo time.Duration, log *logger.Logger) *ConsistencyJob {
	return &ConsistencyJob{uc: uc, intervalo: intervalo, log: log.Componente("consistencia")}
}

// Run bloquea hasta que el contexto se cancele. Está pensado para correr en
// su propia goroutine desde main.
func (j *ConsistencyJob) Run(ctx context.Context) {
	ticker := time.NewTicker(j.intervalo)
	defer ticker.Stop()

	j.log.Info().Dur("intervalo", j.intervalo).Msg("chequeo periódico de consistencia iniciado")
	for {
		select {
		case <-ctx.Done():
			j.log.Info().Msg("chequeo de consistencia detenido")
			return
		case <-ticker.C:
			j.ejecutar(ctx)
		}
	}
}

func (j *ConsistencyJob) ejecutar(ctx context.Context) {
	discrepancias, err := j.uc.VerificarConsistencia(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("el chequeo de consistencia falló")
		return
	}
	if len(discrepancias) == 0 {
		j.log.Debug().Msg("stock y lotes concilian en todos los productos")
		return
	}
	for _, d := range discrepancias {
		j.log.Error().
			Str("producto_id", d.ProductoID).
			Str("producto", d.Nombre).
			Int64("stock", d.Stock).
			Int64("suma_lotes", d.SumaLotes).
			Msg("discrepancia entre stock y suma de lotes")
	}
}
