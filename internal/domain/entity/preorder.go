package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PreorderStatus estado de una preorden. Solo avanza: PENDING → FULFILLED | CANCELLED.
type PreorderStatus string

const (
	PreorderStatusPending   PreorderStatus = "PENDING"
	PreorderStatusFulfilled PreorderStatus = "FULFILLED"
	PreorderStatusCancelled PreorderStatus = "CANCELLED"
)

// ParsePreorderStatus convierte un string en PreorderStatus.
func ParsePreorderStatus(s string) (PreorderStatus, error) {
	return parseEnum("preorder status", s, PreorderStatusPending, PreorderStatusFulfilled, PreorderStatusCancelled)
}

// CanTransitionTo indica si el cambio de estado es hacia adelante.
func (s PreorderStatus) CanTransitionTo(next PreorderStatus) bool {
	return s == PreorderStatusPending && (next == PreorderStatusFulfilled || next == PreorderStatusCancelled)
}

// Preorder reserva de stock futuro a un precio fijado al crearla.
// No toca stock ni saldo: es una intención, no un compromiso.
type Preorder struct {
	ID         string
	UserID     string
	ProductID  string
	Quantity   int64
	UnitPrice  decimal.Decimal // precio del producto al crear la preorden
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	Status     PreorderStatus
}
