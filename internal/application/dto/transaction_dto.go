package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// PurchaseRequest entrada para canjear vouchers. El precio nunca viene del cliente.
type PurchaseRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ProductID  string          `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

func FromTransaction(t *entity.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:         t.ID,
		UserID:     t.UserID,
		ProductID:  t.ProductID,
		Quantity:   t.Quantity,
		TotalPrice: t.TotalPrice,
		CreatedAt:  t.CreatedAt,
	}
}

func FromTransactions(list []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *FromTransaction(t))
	}
	return out
}
