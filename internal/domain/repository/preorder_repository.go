package repository

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// PreorderRepository puerto de persistencia para preórdenes.
type PreorderRepository interface {
	Create(ctx context.Context, p *entity.Preorder) error
	GetByID(ctx context.Context, id string) (*entity.Preorder, error)
	// UpdatePending persiste cantidad y total solo si la preorden sigue PENDING.
	// Devuelve false si no existe o ya no está pendiente.
	UpdatePending(ctx context.Context, p *entity.Preorder) (bool, error)
	// TransitionStatus cambia el estado from → to como compare-and-set.
	TransitionStatus(ctx context.Context, id string, from, to entity.PreorderStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Preorder, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Preorder, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Preorder, error)
	ListByStatus(ctx context.Context, status entity.PreorderStatus) ([]*entity.Preorder, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Preorder, error)
}
