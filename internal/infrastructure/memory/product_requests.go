package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.ProductRequestRepository = (*ProductRequestRepo)(nil)

type ProductRequestRepo struct {
	s *Store
	j *journal
}

func (r *ProductRequestRepo) Create(ctx context.Context, req *entity.ProductRequest) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.productRequests[req.ID]; ok {
			return nil, fmt.Errorf("%w: solicitud %s", domain.ErrDuplicate, req.ID)
		}
		r.s.productRequests[req.ID] = *req
		id := req.ID
		return func() { delete(r.s.productRequests, id) }, nil
	})
}

func (r *ProductRequestRepo) GetByID(ctx context.Context, id string) (*entity.ProductRequest, error) {
	var out *entity.ProductRequest
	err := r.s.read(ctx, func() {
		if pr, ok := r.s.productRequests[id]; ok {
			out = &pr
		}
	})
	return out, err
}

func (r *ProductRequestRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.productRequests[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.productRequests, id)
		deleted = true
		return func() { r.s.productRequests[id] = prev }, nil
	})
	return deleted, err
}

func (r *ProductRequestRepo) List(ctx context.Context) ([]*entity.ProductRequest, error) {
	return r.filter(ctx, func(*entity.ProductRequest) bool { return true })
}

func (r *ProductRequestRepo) ListByUser(ctx context.Context, userID string) ([]*entity.ProductRequest, error) {
	return r.filter(ctx, func(pr *entity.ProductRequest) bool { return pr.UserID == userID })
}

func (r *ProductRequestRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductRequest, error) {
	return r.filter(ctx, func(pr *entity.ProductRequest) bool { return inRange(pr.CreatedAt, from, to) })
}

func (r *ProductRequestRepo) filter(ctx context.Context, keep func(*entity.ProductRequest) bool) ([]*entity.ProductRequest, error) {
	var list []*entity.ProductRequest
	err := r.s.read(ctx, func() {
		for _, pr := range r.s.productRequests {
			pr := pr
			if keep(&pr) {
				list = append(list, &pr)
			}
		}
	})
	sortByCreated(list, func(pr *entity.ProductRequest) time.Time { return pr.CreatedAt }, func(pr *entity.ProductRequest) string { return pr.ID })
	return list, err
}
