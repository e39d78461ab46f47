package dto

import "time"

// SyncResult respuesta de una operación de sincronización (RPC y CLI).
type SyncResult struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
}

// SyncRunResponse corrida registrada en el historial.
type SyncRunResponse struct {
	ID         string    `json:"id"`
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	Processed  int       `json:"processed"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// HandySettingsRequest body para PUT /api/handy/settings.
type HandySettingsRequest struct {
	APIKey string `json:"api_key" validate:"required,min=8"`
}

// HandySettingsResponse configuración con la API key enmascarada.
type HandySettingsResponse struct {
	APIKeyMasked string    `json:"api_key_masked"`
	Configured   bool      `json:"configured"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}
