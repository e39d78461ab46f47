package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

var (
	_ repository.HandySettingsRepository = (*HandySettingsRepo)(nil)
	_ repository.ErrorLogRepository      = (*ErrorLogRepo)(nil)
	_ repository.SyncRunRepository       = (*SyncRunRepo)(nil)
)

// HandySettingsRepo registro único (id = 1) de configuración de Handy.
type HandySettingsRepo struct {
	q Querier
}

// NewHandySettingsRepository construye el adaptador.
func NewHandySettingsRepository(q Querier) *HandySettingsRepo {
	return &HandySettingsRepo{q: q}
}

// Get devuelve la configuración o nil si aún no se ha guardado.
func (r *HandySettingsRepo) Get(ctx context.Context) (*entity.HandySettings, error) {
	var s entity.HandySettings
	err := r.q.QueryRow(ctx, `SELECT api_key, updated_at FROM handy_settings WHERE id = 1`).
		Scan(&s.APIKey, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get handy settings: %w", err)
	}
	return &s, nil
}

// Save sobrescribe la configuración.
func (r *HandySettingsRepo) Save(ctx context.Context, s *entity.HandySettings) error {
	_, err := upsertByKey(ctx, r.q, upsertSpec{
		Table:  "handy_settings",
		Keys:   []column{{"id", 1}},
		Fields: []column{{"api_key", s.APIKey}},
		Touch:  true,
	})
	return err
}

// ErrorLogRepo registro de fallos recuperables.
type ErrorLogRepo struct {
	q Querier
}

// NewErrorLogRepository construye el adaptador.
func NewErrorLogRepository(q Querier) *ErrorLogRepo {
	return &ErrorLogRepo{q: q}
}

// Create persiste una entrada del error log.
func (r *ErrorLogRepo) Create(ctx context.Context, e *entity.ErrorLog) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO error_logs (id, title, message, created_at) VALUES ($1, $2, $3, $4)`,
		e.ID, e.Title, e.Message, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert error log: %w", err)
	}
	return nil
}

// SyncRunRepo historial de corridas de sincronización.
type SyncRunRepo struct {
	q Querier
}

// NewSyncRunRepository construye el adaptador.
func NewSyncRunRepository(q Querier) *SyncRunRepo {
	return &SyncRunRepo{q: q}
}

// Create persiste una corrida terminada.
func (r *SyncRunRepo) Create(ctx context.Context, run *entity.SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	query := `
		INSERT INTO handy_sync_runs (id, operation, status, message, processed, created, updated, failed, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		run.ID, run.Operation, run.Status, run.Message,
		run.Processed, run.Created, run.Updated, run.Failed,
		run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas corridas, la más reciente primero.
func (r *SyncRunRepo) ListRecent(ctx context.Context, limit int) ([]*entity.SyncRun, error) {
	query := `
		SELECT id, operation, status, message, processed, created, updated, failed, started_at, finished_at
		FROM handy_sync_runs ORDER BY started_at DESC LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SyncRun
	for rows.Next() {
		var s entity.SyncRun
		if err := rows.Scan(&s.ID, &s.Operation, &s.Status, &s.Message,
			&s.Processed, &s.Created, &s.Updated, &s.Failed, &s.StartedAt, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
