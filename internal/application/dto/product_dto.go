package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Photo va en base64 dentro del JSON.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Photo       []byte          `json:"photo,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Quantity: se repone aparte).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Photo       []byte           `json:"photo,omitempty"`
}

// QuantityRequest reposición de stock o cambio de cantidad de una preorden.
type QuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Photo       []byte          `json:"photo,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromProduct convierte la entidad en respuesta.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Photo:       p.Photo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
