// Package purchase implementa el motor de canjes: descuenta stock y saldo y registra
// la transacción como un hecho inmutable, todo en una misma unidad de trabajo.
package purchase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/application/inventory"
	"github.com/jhoicas/emart-api/internal/application/ledger"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// UseCase motor de transacciones (canjes de vouchers por productos).
type UseCase struct {
	txRunner    TxRunner
	ids         IDGenerator
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
	now         func() time.Time
}

// NewUseCase construye el motor.
func NewUseCase(
	txRunner TxRunner,
	ids IDGenerator,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		ids:         ids,
		userRepo:    userRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Purchase canjea qty unidades de productID con el saldo de userID.
//
// La lectura previa solo sirve para fallar rápido con el error correcto; la decisión real
// se toma dentro de la unidad de trabajo con operaciones condicionales (stock primero,
// luego saldo), de modo que dos compras concurrentes nunca pasan con datos viejos.
// El precio sale siempre del producto, nunca del cliente.
func (uc *UseCase) Purchase(ctx context.Context, userID, productID string, qty int64) (*entity.Transaction, error) {
	if userID == "" || productID == "" {
		return nil, fmt.Errorf("%w: userId y productId son obligatorios", domain.ErrInvalidInput)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero, se recibió %d", domain.ErrInvalidInput, qty)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("purchase: get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("purchase: get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}

	total := totalPrice(product.Price, qty)
	if product.Quantity < qty {
		return nil, fmt.Errorf("%w: producto %s tiene %d, se pidieron %d",
			domain.ErrInsufficientStock, productID, product.Quantity, qty)
	}
	if user.VoucherBalance.LessThan(total) {
		return nil, fmt.Errorf("%w: usuario %s tiene %s, requiere %s",
			domain.ErrInsufficientBalance, userID, user.VoucherBalance, total)
	}

	var created *entity.Transaction
	err = uc.txRunner.RunPurchase(ctx, func(
		userRepo repository.UserRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		locked, err := inventory.Decrement(ctx, productRepo, productID, qty)
		if err != nil {
			return err
		}
		// El precio puede haber cambiado desde la lectura previa; vale el de la fila bloqueada.
		total := totalPrice(locked.Price, qty)
		// Un producto gratuito no mueve el saldo; el ledger solo acepta montos positivos.
		if !total.IsZero() {
			if _, err := ledger.Debit(ctx, userRepo, userID, total); err != nil {
				return err
			}
		}
		id, err := uc.ids.NextID(ctx, entity.EntityTransaction)
		if err != nil {
			return err
		}
		tx := &entity.Transaction{
			ID:         id,
			UserID:     userID,
			ProductID:  productID,
			Quantity:   qty,
			TotalPrice: total,
			CreatedAt:  uc.now(),
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func totalPrice(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

// GetByID devuelve la transacción o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return tx, nil
}

func (uc *UseCase) List(ctx context.Context) ([]*entity.Transaction, error) {
	return uc.txRepo.List(ctx)
}

func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByUser(ctx, userID)
}

func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByProduct(ctx, productID)
}

// ListBetween lista las transacciones con fecha en [from, to].
func (uc *UseCase) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return uc.txRepo.ListBetween(ctx, from, to)
}

// Delete borra el registro administrativamente. NO devuelve stock ni saldo.
// TODO: confirmar con producto si el borrado debe revertir stock y saldo.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.txRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, id)
	}
	return nil
}
