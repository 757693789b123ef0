package repository

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste los datos descriptivos y el precio. No modifica Quantity (se maneja vía inventario).
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*entity.Product, error)

	// SetQuantity fija el stock (reposición del administrador).
	SetQuantity(ctx context.Context, id string, quantity int64) (*entity.Product, error)
	// Decrement descuenta qty solo si quantity >= qty (compare-and-decrement atómico).
	// ErrNotFound si no existe, ErrInsufficientStock si no alcanza.
	Decrement(ctx context.Context, id string, qty int64) (*entity.Product, error)
}
