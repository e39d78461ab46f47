package entity

import "time"

// Warehouse representa una bodega. El nombre lleva el sufijo de empresa ("Ruta 227 - D").
type Warehouse struct {
	Name      string
	CreatedAt time.Time
}
