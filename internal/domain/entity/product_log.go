package entity

import "time"

// Prefijos de acción del registro de auditoría de productos.
const (
	ProductActionCreate = "CREATE"
	ProductActionUpdate = "UPDATE"
	ProductActionDelete = "DELETE"
)

// ProductLog registro de auditoría (append-only) de cambios sobre productos.
type ProductLog struct {
	ID        string
	UserID    string
	ProductID string
	Action    string // CREATE:<producto>, UPDATE:<producto>, DELETE
	CreatedAt time.Time
}
