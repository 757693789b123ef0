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

var _ repository.ProductRequestRepository = (*ProductRequestRepo)(nil)

const productRequestColumns = `id, user_id, product_name, product_description, created_at`

type ProductRequestRepo struct {
	q Querier
}

func NewProductRequestRepository(q Querier) *ProductRequestRepo {
	return &ProductRequestRepo{q: q}
}

func scanProductRequest(s scanner) (*entity.ProductRequest, error) {
	var pr entity.ProductRequest
	if err := s.Scan(&pr.ID, &pr.UserID, &pr.ProductName, &pr.ProductDescription, &pr.CreatedAt); err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *ProductRequestRepo) Create(ctx context.Context, pr *entity.ProductRequest) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO product_requests (`+productRequestColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		pr.ID, pr.UserID, pr.ProductName, pr.ProductDescription, pr.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: solicitud %s", domain.ErrDuplicate, pr.ID)
		}
		return storageErr("insert product request", err)
	}
	return nil
}

func (r *ProductRequestRepo) GetByID(ctx context.Context, id string) (*entity.ProductRequest, error) {
	pr, err := scanProductRequest(r.q.QueryRow(ctx, `SELECT `+productRequestColumns+` FROM product_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product request by id", err)
	}
	return pr, nil
}

func (r *ProductRequestRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM product_requests WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete product request", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProductRequestRepo) List(ctx context.Context) ([]*entity.ProductRequest, error) {
	return r.list(ctx, "list product requests", `TRUE`)
}

func (r *ProductRequestRepo) ListByUser(ctx context.Context, userID string) ([]*entity.ProductRequest, error) {
	return r.list(ctx, "list product requests by user", `user_id = $1`, userID)
}

func (r *ProductRequestRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.ProductRequest, error) {
	return r.list(ctx, "list product requests between", `created_at BETWEEN $1 AND $2`, from, to)
}

func (r *ProductRequestRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.ProductRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productRequestColumns+` FROM product_requests WHERE `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return collect(rows, op, scanProductRequest)
}
