package repository

import (
	"context"

	"github.com/jhoicas/handy-sync/internal/domain/entity"
)

// HandySettingsRepository lee/escribe el registro único de configuración de Handy.
type HandySettingsRepository interface {
	Get(ctx context.Context) (*entity.HandySettings, error)
	Save(ctx context.Context, settings *entity.HandySettings) error
}

// ErrorLogRepository persiste fallos recuperables.
type ErrorLogRepository interface {
	Create(ctx context.Context, entry *entity.ErrorLog) error
}

// SyncRunRepository persiste el historial de corridas de sincronización.
type SyncRunRepository interface {
	Create(ctx context.Context, run *entity.SyncRun) error
	ListRecent(ctx context.Context, limit int) ([]*entity.SyncRun, error)
}
