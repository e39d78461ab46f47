package handysync

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/handy-sync/internal/application/dto"
	"github.com/jhoicas/handy-sync/internal/application/ports"
	"github.com/jhoicas/handy-sync/internal/domain"
	"github.com/jhoicas/handy-sync/internal/domain/entity"
	"github.com/jhoicas/handy-sync/internal/domain/repository"
)

// CredentialsProvider resuelve la API key de Handy en cada invocación:
// primero el registro handy_settings, luego la key de configuración (HANDY_API_KEY).
type CredentialsProvider struct {
	settings    repository.HandySettingsRepository
	fallbackKey string
}

// NewCredentialsProvider construye el proveedor.
func NewCredentialsProvider(settings repository.HandySettingsRepository, fallbackKey string) *CredentialsProvider {
	return &CredentialsProvider{settings: settings, fallbackKey: strings.TrimSpace(fallbackKey)}
}

// Resolve devuelve las credenciales o domain.ErrMissingCredentials si no hay key.
func (p *CredentialsProvider) Resolve(ctx context.Context) (ports.Credentials, error) {
	s, err := p.settings.Get(ctx)
	if err != nil {
		return ports.Credentials{}, err
	}
	if s != nil && strings.TrimSpace(s.APIKey) != "" {
		return ports.Credentials{APIKey: strings.TrimSpace(s.APIKey)}, nil
	}
	if p.fallbackKey != "" {
		return ports.Credentials{APIKey: p.fallbackKey}, nil
	}
	return ports.Credentials{}, domain.ErrMissingCredentials
}

// SettingsUseCase lectura (enmascarada) y escritura de la configuración de Handy.
type SettingsUseCase struct {
	settings repository.HandySettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(settings repository.HandySettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get devuelve la configuración sin exponer la key completa.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.HandySettingsResponse, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil || s.APIKey == "" {
		return &dto.HandySettingsResponse{}, nil
	}
	return &dto.HandySettingsResponse{
		APIKeyMasked: maskKey(s.APIKey),
		Configured:   true,
		UpdatedAt:    s.UpdatedAt,
	}, nil
}

// Save guarda la API key.
func (uc *SettingsUseCase) Save(ctx context.Context, in dto.HandySettingsRequest) (*dto.HandySettingsResponse, error) {
	key := strings.TrimSpace(in.APIKey)
	if key == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.HandySettings{APIKey: key, UpdatedAt: time.Now()}
	if err := uc.settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return &dto.HandySettingsResponse{APIKeyMasked: maskKey(key), Configured: true, UpdatedAt: s.UpdatedAt}, nil
}

// maskKey deja visibles solo los últimos 4 caracteres.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
