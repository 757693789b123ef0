package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto canjeable con vouchers.
// Quantity solo se modifica vía inventario (decremento atómico en compras o reposición del admin).
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal // precio unitario en vouchers, >= 0
	Quantity    int64           // unidades disponibles, >= 0
	Photo       []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// String resume el producto para el registro de auditoría (sin la foto).
func (p *Product) String() string {
	return fmt.Sprintf("Product[id=%s, name=%s, category=%s, price=%s, quantity=%d]",
		p.ID, p.Name, p.Category, p.Price.String(), p.Quantity)
}
