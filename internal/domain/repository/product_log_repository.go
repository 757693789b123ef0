package repository

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// ProductLogRepository puerto del registro de auditoría de productos.
type ProductLogRepository interface {
	Create(ctx context.Context, log *entity.ProductLog) error
	List(ctx context.Context) ([]*entity.ProductLog, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLog, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductLog, error)
}
