package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID devuelve (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// Update persiste nombre, rol y estado. El saldo NO se toca aquí.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error)

	// Credit suma amount al saldo en una sola operación atómica.
	// ErrNotFound si no existe, ErrInvalidState si la cuenta está archivada.
	Credit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error)
	// Debit resta amount solo si saldo >= amount, comprobado y aplicado atómicamente.
	// ErrNotFound si no existe, ErrInsufficientBalance si no alcanza.
	Debit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error)
}
