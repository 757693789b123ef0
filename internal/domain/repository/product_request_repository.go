package repository

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// ProductRequestRepository puerto para solicitudes de productos nuevos.
type ProductRequestRepository interface {
	Create(ctx context.Context, r *entity.ProductRequest) error
	GetByID(ctx context.Context, id string) (*entity.ProductRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.ProductRequest, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.ProductRequest, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductRequest, error)
}
