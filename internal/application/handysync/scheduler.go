package handysync

import (
	"context"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/rs/zerolog"
)

// Job operación programable (PushQuantitiesUseCase.Execute, por ejemplo).
type Job func(ctx context.Context) (*dto.SyncResult, error)

// RunEvery ejecuta job cada interval hasta que ctx se cancele. Las corridas no se
// solapan: un tick que llega durante una corrida se descarta.
func RunEvery(ctx context.Context, interval time.Duration, name string, job Job, log zerolog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	log.Info().Str("job", name).Dur("interval", interval).Msg("tarea programada iniciada")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("job", name).Msg("tarea programada detenida")
			return
		case <-ticker.C:
			if _, err := job(ctx); err != nil {
				log.Error().Err(err).Str("job", name).Msg("tarea programada falló")
			}
		}
	}
}
