package memory

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.ProductLogRepository = (*ProductLogRepo)(nil)

// ProductLogRepo bitácora append-only; conserva el orden de inserción.
type ProductLogRepo struct {
	s *Store
	j *journal
}

func (r *ProductLogRepo) Create(ctx context.Context, log *entity.ProductLog) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		r.s.productLogs = append(r.s.productLogs, *log)
		n := len(r.s.productLogs) - 1
		return func() { r.s.productLogs = r.s.productLogs[:n] }, nil
	})
}

func (r *ProductLogRepo) List(ctx context.Context) ([]*entity.ProductLog, error) {
	return r.filter(ctx, func(*entity.ProductLog) bool { return true })
}

func (r *ProductLogRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLog, error) {
	return r.filter(ctx, func(l *entity.ProductLog) bool { return l.ProductID == productID })
}

func (r *ProductLogRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductLog, error) {
	return r.filter(ctx, func(l *entity.ProductLog) bool { return inRange(l.CreatedAt, from, to) })
}

func (r *ProductLogRepo) filter(ctx context.Context, keep func(*entity.ProductLog) bool) ([]*entity.ProductLog, error) {
	var list []*entity.ProductLog
	err := r.s.read(ctx, func() {
		for i := range r.s.productLogs {
			l := r.s.productLogs[i]
			if keep(&l) {
				list = append(list, &l)
			}
		}
	})
	return list, err
}
