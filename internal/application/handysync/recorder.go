package handysync

import (
	"context"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
	"github.com/rs/zerolog"
)

// MetricsRecorder recibe el resultado de cada corrida (Prometheus en producción).
type MetricsRecorder interface {
	RecordSyncRun(operation, status string, created, updated, failed int, elapsed time.Duration)
}

// Recorder persiste el historial de corridas y los fallos recuperables.
type Recorder struct {
	runs    repository.SyncRunRepository
	errLogs repository.ErrorLogRepository
	metrics MetricsRecorder
	log     zerolog.Logger
}

// NewRecorder construye el registrador. metrics puede ser nil.
func NewRecorder(
	runs repository.SyncRunRepository,
	errLogs repository.ErrorLogRepository,
	metrics MetricsRecorder,
	log zerolog.Logger,
) *Recorder {
	return &Recorder{runs: runs, errLogs: errLogs, metrics: metrics, log: log}
}

// LogError escribe un fallo recuperable en el error log y en el log estructurado.
// Un fallo al persistir la entrada solo se registra en el log.
func (r *Recorder) LogError(ctx context.Context, title string, err error) {
	r.log.Error().Err(err).Str("title", title).Msg("fallo recuperable")
	entry := &entity.ErrorLog{Title: title, Message: err.Error(), CreatedAt: time.Now()}
	if werr := r.errLogs.Create(context.WithoutCancel(ctx), entry); werr != nil {
		r.log.Warn().Err(werr).Str("title", title).Msg("no se pudo guardar en error_logs")
	}
}

// Finish completa el estado del resultado y guarda la corrida. La escritura no se cancela
// aunque el llamador ya se haya ido.
func (r *Recorder) Finish(ctx context.Context, operation string, started time.Time, res *dto.SyncResult, err error) {
	finished := time.Now()
	res.Status = entity.SyncStatusSuccess
	if err != nil {
		res.Status = entity.SyncStatusError
		res.Message = err.Error()
	}

	ev := r.log.Info()
	if err != nil {
		ev = r.log.Error().Err(err)
	}
	ev.Str("operation", operation).
		Int("processed", res.Processed).Int("created", res.Created).
		Int("updated", res.Updated).Int("failed", res.Failed).
		Dur("elapsed", finished.Sub(started)).
		Msg("sincronización terminada")

	if r.metrics != nil {
		r.metrics.RecordSyncRun(operation, res.Status, res.Created, res.Updated, res.Failed, finished.Sub(started))
	}
	run := &entity.SyncRun{
		Operation:  operation,
		Status:     res.Status,
		Message:    res.Message,
		Processed:  res.Processed,
		Created:    res.Created,
		Updated:    res.Updated,
		Failed:     res.Failed,
		StartedAt:  started,
		FinishedAt: finished,
	}
	if werr := r.runs.Create(context.WithoutCancel(ctx), run); werr != nil {
		r.log.Warn().Err(werr).Str("operation", operation).Msg("no se pudo guardar la corrida")
	}
}

// ListRecent devuelve las últimas corridas para GET /api/handy/sync-runs.
func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]dto.SyncRunResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	runs, err := r.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SyncRunResponse, 0, len(runs))
	for _, s := range runs {
		out = append(out, dto.SyncRunResponse{
			ID:         s.ID,
			Operation:  s.Operation,
			Status:     s.Status,
			Message:    s.Message,
			Processed:  s.Processed,
			Created:    s.Created,
			Updated:    s.Updated,
			Failed:     s.Failed,
			StartedAt:  s.StartedAt,
			FinishedAt: s.FinishedAt,
		})
	}
	return out, nil
}
