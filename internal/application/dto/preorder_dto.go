package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// CreatePreorderRequest entrada para reservar stock futuro.
type CreatePreorderRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PreorderResponse salida de una preorden.
type PreorderResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

func FromPreorder(p *entity.Preorder) *PreorderResponse {
	if p == nil {
		return nil
	}
	return &PreorderResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		ProductID:  p.ProductID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		TotalPrice: p.TotalPrice,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
	}
}

func FromPreorders(list []*entity.Preorder) []PreorderResponse {
	out := make([]PreorderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *FromPreorder(p))
	}
	return out
}
