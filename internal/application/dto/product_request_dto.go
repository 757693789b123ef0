package dto

import (
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// CreateProductRequestRequest solicitud de un residente para que se agregue un producto.
type CreateProductRequestRequest struct {
	UserID             string `json:"user_id"`
	ProductName        string `json:"product_name"`
	ProductDescription string `json:"product_description"`
}

type ProductRequestResponse struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	ProductName        string    `json:"product_name"`
	ProductDescription string    `json:"product_description"`
	CreatedAt          time.Time `json:"created_at"`
}

func FromProductRequest(r *entity.ProductRequest) *ProductRequestResponse {
	if r == nil {
		return nil
	}
	return &ProductRequestResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		ProductName:        r.ProductName,
		ProductDescription: r.ProductDescription,
		CreatedAt:          r.CreatedAt,
	}
}

// ProductLogResponse entrada del registro de auditoría de productos.
type ProductLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

func FromProductLog(l *entity.ProductLog) *ProductLogResponse {
	if l == nil {
		return nil
	}
	return &ProductLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		ProductID: l.ProductID,
		Action:    l.Action,
		CreatedAt: l.CreatedAt,
	}
}
