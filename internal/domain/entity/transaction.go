package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction registro inmutable de un canje: se crea una vez y nunca se modifica.
// TotalPrice es la foto de price × quantity al momento de la compra.
type Transaction struct {
	ID         string
	UserID     string
	ProductID  string
	Quantity   int64
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}
