// Package preorder gestiona reservas de stock futuro a un precio fijado al crearlas.
// Ninguna operación de este paquete toca stock ni saldo.
package preorder

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// IDGenerator emite IDs de preórdenes.
type IDGenerator interface {
	NextID(ctx context.Context, entityType entity.EntityType) (string, error)
}

// UseCase flujo de preórdenes.
type UseCase struct {
	ids          IDGenerator
	preorderRepo repository.PreorderRepository
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	ids IDGenerator,
	preorderRepo repository.PreorderRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
) *UseCase {
	return &UseCase{
		ids:          ids,
		preorderRepo: preorderRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create valida usuario y producto, toma el precio actual como referencia y guarda la preorden PENDING.
func (uc *UseCase) Create(ctx context.Context, userID, productID string, qty int64) (*entity.Preorder, error) {
	if userID == "" || productID == "" {
		return nil, fmt.Errorf("%w: userId y productId son obligatorios", domain.ErrInvalidInput)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero, se recibió %d", domain.ErrInvalidInput, qty)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	id, err := uc.ids.NextID(ctx, entity.EntityPreorder)
	if err != nil {
		return nil, err
	}
	p := &entity.Preorder{
		ID:         id,
		UserID:     userID,
		ProductID:  productID,
		Quantity:   qty,
		UnitPrice:  product.Price,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(qty)),
		CreatedAt:  uc.now(),
		Status:     entity.PreorderStatusPending,
	}
	if err := uc.preorderRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create preorder: %w", err)
	}
	return p, nil
}

// GetByID devuelve la preorden o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Preorder, error) {
	p, err := uc.preorderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get preorder: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: preorden %s", domain.ErrNotFound, id)
	}
	return p, nil
}

func (uc *UseCase) List(ctx context.Context) ([]*entity.Preorder, error) {
	return uc.preorderRepo.List(ctx)
}

func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]*entity.Preorder, error) {
	return uc.preorderRepo.ListByUser(ctx, userID)
}

func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.Preorder, error) {
	return uc.preorderRepo.ListByProduct(ctx, productID)
}

func (uc *UseCase) ListByStatus(ctx context.Context, status string) ([]*entity.Preorder, error) {
	s, err := entity.ParsePreorderStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.preorderRepo.ListByStatus(ctx, s)
}

func (uc *UseCase) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Preorder, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return uc.preorderRepo.ListBetween(ctx, from, to)
}

// UpdateQuantity cambia la cantidad de una preorden PENDING manteniendo el precio unitario original.
func (uc *UseCase) UpdateQuantity(ctx context.Context, id string, qty int64) (*entity.Preorder, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero, se recibió %d", domain.ErrInvalidInput, qty)
	}
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != entity.PreorderStatusPending {
		return nil, fmt.Errorf("%w: la preorden %s está %s", domain.ErrInvalidState, id, p.Status)
	}
	p.Quantity = qty
	p.TotalPrice = p.UnitPrice.Mul(decimal.NewFromInt(qty))
	ok, err := uc.preorderRepo.UpdatePending(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update preorder: %w", err)
	}
	if !ok {
		return nil, uc.lostRace(ctx, id)
	}
	return p, nil
}

// UpdateStatus mueve la preorden hacia adelante: PENDING → FULFILLED | CANCELLED.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Preorder, error) {
	next, err := entity.ParsePreorderStatus(status)
	if err != nil {
		return nil, err
	}
	p, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: la preorden %s no puede pasar de %s a %s", domain.ErrInvalidState, id, p.Status, next)
	}
	ok, err := uc.preorderRepo.TransitionStatus(ctx, id, p.Status, next)
	if err != nil {
		return nil, fmt.Errorf("update preorder status: %w", err)
	}
	if !ok {
		return nil, uc.lostRace(ctx, id)
	}
	p.Status = next
	return p, nil
}

// lostRace distingue una preorden borrada de una que cambió de estado entre la lectura y la escritura.
func (uc *UseCase) lostRace(ctx context.Context, id string) error {
	p, err := uc.preorderRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get preorder: %w", err)
	}
	if p == nil {
		return fmt.Errorf("%w: preorden %s", domain.ErrNotFound, id)
	}
	return fmt.Errorf("%w: la preorden %s está %s", domain.ErrInvalidState, id, p.Status)
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.preorderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete preorder: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: preorden %s", domain.ErrNotFound, id)
	}
	return nil
}
