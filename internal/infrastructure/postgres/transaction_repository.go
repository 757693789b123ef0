package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id, user_id, product_id, quantity, total_price, created_at`

// TransactionRepo registro append-only de canjes (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

func scanTransaction(s scanner) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := s.Scan(&t.ID, &t.UserID, &t.ProductID, &t.Quantity, &t.TotalPrice, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, product_id, quantity, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, t.ID, t.UserID, t.ProductID, t.Quantity, t.TotalPrice, t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, t.ID)
		}
		return storageErr("insert transaction", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get transaction by id", err)
	}
	return t, nil
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete transaction", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TransactionRepo) List(ctx context.Context) ([]*entity.Transaction, error) {
	return r.list(ctx, "list transactions", `TRUE`)
}

func (r *TransactionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	return r.list(ctx, "list transactions by user", `user_id = $1`, userID)
}

func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	return r.list(ctx, "list transactions by product", `product_id = $1`, productID)
}

func (r *TransactionRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Transaction, error) {
	return r.list(ctx, "list transactions between", `created_at BETWEEN $1 AND $2`, from, to)
}

func (r *TransactionRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return collect(rows, op, scanTransaction)
}
