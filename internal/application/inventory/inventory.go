// Package inventory concentra las mutaciones de stock de productos.
package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// Decrement descuenta qty (> 0) del stock; el repositorio comprueba y aplica en una sola operación.
// Devuelve el producto con la cantidad y el precio vigentes tras el descuento.
func Decrement(ctx context.Context, products repository.ProductRepository, productID string, qty int64) (*entity.Product, error) {
	if productID == "" {
		return nil, fmt.Errorf("%w: productId requerido", domain.ErrInvalidInput)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero, se recibió %d", domain.ErrInvalidInput, qty)
	}
	p, err := products.Decrement(ctx, productID, qty)
	if err != nil {
		return nil, fmt.Errorf("decrement %s: %w", productID, err)
	}
	return p, nil
}

// Restock fija el stock disponible (reposición del administrador). quantity >= 0.
func Restock(ctx context.Context, products repository.ProductRepository, productID string, quantity int64) (*entity.Product, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	p, err := products.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, fmt.Errorf("restock %s: %w", productID, err)
	}
	return p, nil
}
