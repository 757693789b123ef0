package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
	j *journal
}

func cloneProduct(p entity.Product) *entity.Product {
	if p.Photo != nil {
		p.Photo = append([]byte(nil), p.Photo...)
	}
	return &p
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.products[product.ID]; ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrDuplicate, product.ID)
		}
		r.s.products[product.ID] = *cloneProduct(*product)
		id := product.ID
		return func() { delete(r.s.products, id) }, nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.read(ctx, func() {
		if p, ok := r.s.products[id]; ok {
			out = cloneProduct(p)
		}
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.products[product.ID]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, product.ID)
		}
		next := *cloneProduct(*product)
		next.Quantity = prev.Quantity
		next.CreatedAt = prev.CreatedAt
		r.s.products[product.ID] = next
		return func() { r.s.products[prev.ID] = prev }, nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.products[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.products, id)
		deleted = true
		return func() { r.s.products[id] = prev }, nil
	})
	return deleted, err
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	return r.filter(ctx, func(*entity.Product) bool { return true })
}

func (r *ProductRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Product, error) {
	return r.filter(ctx, func(p *entity.Product) bool { return strings.EqualFold(p.Category, category) })
}

func (r *ProductRepo) filter(ctx context.Context, keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.s.read(ctx, func() {
		for _, p := range r.s.products {
			if keep(&p) {
				list = append(list, cloneProduct(p))
			}
		}
	})
	sortByCreated(list, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	return list, err
}

func (r *ProductRepo) SetQuantity(ctx context.Context, id string, quantity int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.products[id]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		next := prev
		next.Quantity = quantity
		next.UpdatedAt = time.Now().UTC()
		r.s.products[id] = next
		out = cloneProduct(next)
		return func() { r.s.products[id] = prev }, nil
	})
	return out, err
}

// Decrement descuenta qty si hay stock suficiente; comprobación y escritura bajo el mismo candado.
func (r *ProductRepo) Decrement(ctx context.Context, id string, qty int64) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		p, ok := r.s.products[id]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
		if p.Quantity < qty {
			return nil, fmt.Errorf("%w: producto %s tiene %d, se pidieron %d",
				domain.ErrInsufficientStock, id, p.Quantity, qty)
		}
		p.Quantity -= qty
		r.s.products[id] = p
		out = cloneProduct(p)
		return func() {
			if cur, ok := r.s.products[id]; ok {
				cur.Quantity += qty
				r.s.products[id] = cur
			}
		}, nil
	})
	return out, err
}
