package entity

import "time"

// HandySettings registro único con la credencial de la API de Handy.
type HandySettings struct {
	APIKey    string
	UpdatedAt time.Time
}

// ErrorLog registro de un fallo recuperable durante una sincronización.
type ErrorLog struct {
	ID        string
	Title     string
	Message   string
	CreatedAt time.Time
}

// Operaciones de sincronización registradas en handy_sync_runs.
const (
	SyncOpCustomers  = "customers"
	SyncOpProducts   = "products"
	SyncOpPriceLists = "price_lists"
	SyncOpRoutes     = "routes"
	SyncOpQuantities = "quantities"
)

// Estados de una corrida.
const (
	SyncStatusSuccess = "success"
	SyncStatusError   = "error"
)

// SyncRun resultado persistido de una invocación de sincronización.
type SyncRun struct {
	ID         string
	Operation  string
	Status     string
	Message    string
	Processed  int
	Created    int
	Updated    int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}
