package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.ProductLogRepository = (*ProductLogRepo)(nil)

const productLogColumns = `id, user_id, product_id, action, created_at`

// ProductLogRepo bitácora de auditoría de productos (solo inserción).
type ProductLogRepo struct {
	q Querier
}

func NewProductLogRepository(q Querier) *ProductLogRepo {
	return &ProductLogRepo{q: q}
}

func scanProductLog(s scanner) (*entity.ProductLog, error) {
	var l entity.ProductLog
	if err := s.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Action, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ProductLogRepo) Create(ctx context.Context, l *entity.ProductLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_logs (`+productLogColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.UserID, l.ProductID, l.Action, l.CreatedAt)
	if err != nil {
		return storageErr("insert product log", err)
	}
	return nil
}

func (r *ProductLogRepo) List(ctx context.Context) ([]*entity.ProductLog, error) {
	return r.list(ctx, "list product logs", `TRUE`)
}

func (r *ProductLogRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLog, error) {
	return r.list(ctx, "list product logs by product", `product_id = $1`, productID)
}

func (r *ProductLogRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductLog, error) {
	return r.list(ctx, "list product logs between", `created_at BETWEEN $1 AND $2`, from, to)
}

func (r *ProductLogRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.ProductLog, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productLogColumns+` FROM product_logs WHERE `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return collect(rows, op, scanProductLog)
}
