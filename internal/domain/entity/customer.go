package entity

import "time"

// Valores por defecto del cliente sincronizado desde Handy.
const (
	DefaultCustomerName  = "Sin nombre"
	DefaultCustomerType  = "Company"
	DefaultTerritory     = "All Territories"
	DefaultCustomerGroup = "Commercial"
)

// Customer representa un cliente del ERP. HandyCode es la clave natural que lo une con Handy.
type Customer struct {
	ID               string
	Name             string
	HandyCode        string
	CustomerGroup    string
	CustomerType     string
	Territory        string
	Phone            string
	Email            string
	Disabled         bool
	HandyPaymentType string
	HandyCreditDays  int
	Latitude         *float64
	Longitude        *float64
	ZoneID           *int64
	ZoneName         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CustomerGroup agrupa clientes; se identifica por nombre.
type CustomerGroup struct {
	Name      string
	CreatedAt time.Time
}
