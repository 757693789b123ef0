package repository

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// TransactionRepository puerto para el registro append-only de canjes.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error)
}
