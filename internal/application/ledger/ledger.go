// Package ledger es el único punto por el que cambia el saldo de vouchers de un usuario.
// Las funciones Credit y Debit validan el monto y delegan la comprobación atómica
// en el repositorio, que puede estar atado a una transacción (compras, pagos de tareas)
// o al pool (ajustes del administrador).
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// Credit abona amount (> 0) al saldo del usuario.
func Credit(ctx context.Context, users repository.UserRepository, userID string, amount decimal.Decimal) (*entity.User, error) {
	if err := validate(userID, amount); err != nil {
		return nil, err
	}
	u, err := users.Credit(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("credit %s: %w", userID, err)
	}
	return u, nil
}

// Debit descuenta amount (> 0) solo si el saldo alcanza.
func Debit(ctx context.Context, users repository.UserRepository, userID string, amount decimal.Decimal) (*entity.User, error) {
	if err := validate(userID, amount); err != nil {
		return nil, err
	}
	u, err := users.Debit(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("debit %s: %w", userID, err)
	}
	return u, nil
}

func validate(userID string, amount decimal.Decimal) error {
	if userID == "" {
		return fmt.Errorf("%w: userId requerido", domain.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor que cero, se recibió %s", domain.ErrInvalidInput, amount)
	}
	if !entity.HasMoneyScale(amount) {
		return fmt.Errorf("%w: el monto admite a lo sumo %d decimales, se recibió %s", domain.ErrInvalidInput, entity.MoneyScale, amount)
	}
	return nil
}

// AccountLedger expone credit/debit fuera de una unidad de trabajo (addBalance/deductBalance).
type AccountLedger struct {
	users repository.UserRepository
}

// NewAccountLedger construye el ledger sobre el repositorio de usuarios.
func NewAccountLedger(users repository.UserRepository) *AccountLedger {
	return &AccountLedger{users: users}
}

func (l *AccountLedger) Credit(ctx context.Context, userID string, amount decimal.Decimal) (*entity.User, error) {
	return Credit(ctx, l.users, userID, amount)
}

func (l *AccountLedger) Debit(ctx context.Context, userID string, amount decimal.Decimal) (*entity.User, error) {
	return Debit(ctx, l.users, userID, amount)
}
