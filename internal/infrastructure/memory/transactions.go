package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo registro append-only de canjes en memoria.
type TransactionRepo struct {
	s *Store
	j *journal
}

func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.transactions[tx.ID]; ok {
			return nil, fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, tx.ID)
		}
		r.s.transactions[tx.ID] = *tx
		id := tx.ID
		return func() { delete(r.s.transactions, id) }, nil
	})
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.s.read(ctx, func() {
		if t, ok := r.s.transactions[id]; ok {
			out = &t
		}
	})
	return out, err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.transactions[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.transactions, id)
		deleted = true
		return func() { r.s.transactions[id] = prev }, nil
	})
	return deleted, err
}

func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	return r.filter(ctx, func(*entity.Transaction) bool { return true })
}

func (r *TransactionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return r.filter(ctx, func(t *entity.Transaction) bool { return t.UserID == userID })
}

func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	return r.filter(ctx, func(t *entity.Transaction) bool { return t.ProductID == productID })
}

func (r *TransactionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.filter(ctx, func(t *entity.Transaction) bool { return inRange(t.CreatedAt, from, to) })
}

func (r *TransactionRepo) filter(ctx context.Context, keep func(*entity.Transaction) bool) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	err := r.s.read(ctx, func() {
		for _, t := range r.s.transactions {
			t := t
			if keep(&t) {
				list = append(list, &t)
			}
		}
	})
	sortByCreated(list, func(t *entity.Transaction) time.Time { return t.CreatedAt }, func(t *entity.Transaction) string { return t.ID })
	return list, err
}
