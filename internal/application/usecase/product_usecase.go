package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/inventory"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cada alta, cambio o baja queda en la auditoría
// con el usuario que la hizo. Quantity solo cambia por compras o por SetQuantity.
type ProductUseCase struct {
	repo  repository.ProductRepository
	ids   IDGenerator
	audit AuditRecorder
	now   func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ids IDGenerator, audit AuditRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, ids: ids, audit: audit, now: func() time.Time { return time.Now().UTC() }}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrInvalidInput)
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
	}
	id, err := uc.ids.NextID(ctx, entity.EntityProduct)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	product := &entity.Product{
		ID:          id,
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Photo:       in.Photo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	uc.audit.Record(ctx, actorID, product.ID, entity.ProductActionCreate+":"+product.String())
	return dto.FromProduct(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromProduct(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

// Update actualiza datos descriptivos y precio. No permite modificar Quantity.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del producto es obligatorio", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
		product.Price = *in.Price
	}
	if len(in.Photo) > 0 {
		product.Photo = in.Photo
	}
	product.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	// Update no toca Quantity; se relee para devolver el stock vigente.
	if fresh, err := uc.repo.GetByID(ctx, id); err == nil && fresh != nil {
		product = fresh
	}
	uc.audit.Record(ctx, actorID, product.ID, entity.ProductActionUpdate+":"+product.String())
	return dto.FromProduct(product), nil
}

// SetQuantity reposición de stock por el administrador; se audita como UPDATE.
func (uc *ProductUseCase) SetQuantity(ctx context.Context, actorID, id string, quantity int64) (*dto.ProductResponse, error) {
	product, err := inventory.Restock(ctx, uc.repo, id, quantity)
	if err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, actorID, product.ID, entity.ProductActionUpdate+":"+product.String())
	return dto.FromProduct(product), nil
}

func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return toProductResponses(list), nil
}

func (uc *ProductUseCase) ListByCategory(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return toProductResponses(list), nil
}

// Delete elimina un producto por ID y deja constancia en la auditoría.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	uc.audit.Record(ctx, actorID, id, entity.ProductActionDelete)
	return nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.FromProduct(p))
	}
	return out
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if !entity.HasMoneyScale(price) {
		return fmt.Errorf("%w: el precio admite a lo sumo %d decimales", domain.ErrInvalidInput, entity.MoneyScale)
	}
	return nil
}
