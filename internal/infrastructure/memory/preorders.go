package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.PreorderRepository = (*PreorderRepo)(nil)

// PreorderRepo implementación en memoria de PreorderRepository.
type PreorderRepo struct {
	s *Store
	j *journal
}

func (r *PreorderRepo) Create(ctx context.Context, p *entity.Preorder) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.preorders[p.ID]; ok {
			return nil, fmt.Errorf("%w: preorden %s", domain.ErrDuplicate, p.ID)
		}
		r.s.preorders[p.ID] = *p
		id := p.ID
		return func() { delete(r.s.preorders, id) }, nil
	})
}

func (r *PreorderRepo) GetByID(ctx context.Context, id string) (*entity.Preorder, error) {
	var out *entity.Preorder
	err := r.s.read(ctx, func() {
		if p, ok := r.s.preorders[id]; ok {
			out = &p
		}
	})
	return out, err
}

func (r *PreorderRepo) UpdatePending(ctx context.Context, p *entity.Preorder) (bool, error) {
	var updated bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.preorders[p.ID]
		if !ok || prev.Status != entity.PreorderStatusPending {
			return nil, nil
		}
		next := prev
		next.Quantity = p.Quantity
		next.TotalPrice = p.TotalPrice
		r.s.preorders[p.ID] = next
		updated = true
		return func() { r.s.preorders[prev.ID] = prev }, nil
	})
	return updated, err
}

func (r *PreorderRepo) TransitionStatus(ctx context.Context, id string, from, to entity.PreorderStatus) (bool, error) {
	var updated bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.preorders[id]
		if !ok || prev.Status != from {
			return nil, nil
		}
		next := prev
		next.Status = to
		r.s.preorders[id] = next
		updated = true
		return func() { r.s.preorders[id] = prev }, nil
	})
	return updated, err
}

func (r *PreorderRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.preorders[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.preorders, id)
		deleted = true
		return func() { r.s.preorders[id] = prev }, nil
	})
	return deleted, err
}

func (r *PreorderRepo) List(ctx context.Context) ([]*entity.Preorder, error) {
	return r.filter(ctx, func(*entity.Preorder) bool { return true })
}

func (r *PreorderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Preorder, error) {
	return r.filter(ctx, func(p *entity.Preorder) bool { return p.UserID == userID })
}

func (r *PreorderRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Preorder, error) {
	return r.filter(ctx, func(p *entity.Preorder) bool { return p.ProductID == productID })
}

func (r *PreorderRepo) ListByStatus(ctx context.Context, status entity.PreorderStatus) ([]*entity.Preorder, error) {
	return r.filter(ctx, func(p *entity.Preorder) bool { return p.Status == status })
}

func (r *PreorderRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Preorder, error) {
	return r.filter(ctx, func(p *entity.Preorder) bool { return inRange(p.CreatedAt, from, to) })
}

func (r *PreorderRepo) filter(ctx context.Context, keep func(*entity.Preorder) bool) ([]*entity.Preorder, error) {
	var list []*entity.Preorder
	err := r.s.read(ctx, func() {
		for _, p := range r.s.preorders {
			p := p
			if keep(&p) {
				list = append(list, &p)
			}
		}
	})
	sortByCreated(list, func(p *entity.Preorder) time.Time { return p.CreatedAt }, func(p *entity.Preorder) string { return p.ID })
	return list, err
}
