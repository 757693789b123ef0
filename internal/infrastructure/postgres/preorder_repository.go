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

var _ repository.PreorderRepository = (*PreorderRepo)(nil)

const preorderColumns = `id, user_id, product_id, quantity, unit_price, total_price, created_at, status`

// PreorderRepo implementación de PreorderRepository sobre PostgreSQL.
type PreorderRepo struct {
	q Querier
}

// NewPreorderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPreorderRepository(q Querier) *PreorderRepo {
	return &PreorderRepo{q: q}
}

func scanPreorder(s scanner) (*entity.Preorder, error) {
	var p entity.Preorder
	if err := s.Scan(&p.ID, &p.UserID, &p.ProductID, &p.Quantity, &p.UnitPrice, &p.TotalPrice, &p.CreatedAt, &p.Status); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PreorderRepo) Create(ctx context.Context, p *entity.Preorder) error {
	query := `
		INSERT INTO preorders (id, user_id, product_id, quantity, unit_price, total_price, created_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.UserID, p.ProductID, p.Quantity, p.UnitPrice, p.TotalPrice, p.CreatedAt, p.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: preorden %s", domain.ErrDuplicate, p.ID)
		}
		return storageErr("insert preorder", err)
	}
	return nil
}

func (r *PreorderRepo) GetByID(ctx context.Context, id string) (*entity.Preorder, error) {
	p, err := scanPreorder(r.q.QueryRow(ctx, `SELECT `+preorderColumns+` FROM preorders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get preorder by id", err)
	}
	return p, nil
}

// UpdatePending actualiza cantidad y total solo si la preorden sigue PENDING.
func (r *PreorderRepo) UpdatePending(ctx context.Context, p *entity.Preorder) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE preorders SET quantity = $2, total_price = $3 WHERE id = $1 AND status = $4`,
		p.ID, p.Quantity, p.TotalPrice, entity.PreorderStatusPending)
	if err != nil {
		return false, storageErr("update preorder", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TransitionStatus cambia el estado solo si sigue siendo from.
func (r *PreorderRepo) TransitionStatus(ctx context.Context, id string, from, to entity.PreorderStatus) (bool, error) {
	tag, err := r.q.Exec(ctx, `UPDATE preorders SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return false, storageErr("update preorder status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PreorderRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM preorders WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete preorder", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PreorderRepo) List(ctx context.Context) ([]*entity.Preorder, error) {
	return r.list(ctx, "list preorders", `TRUE`)
}

func (r *PreorderRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Preorder, error) {
	return r.list(ctx, "list preorders by user", `user_id = $1`, userID)
}

func (r *PreorderRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Preorder, error) {
	return r.list(ctx, "list preorders by product", `product_id = $1`, productID)
}

func (r *PreorderRepo) ListByStatus(ctx context.Context, status entity.PreorderStatus) ([]*entity.Preorder, error) {
	return r.list(ctx, "list preorders by status", `status = $1`, status)
}

func (r *PreorderRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Preorder, error) {
	return r.list(ctx, "list preorders between", `created_at BETWEEN $1 AND $2`, from, to)
}

func (r *PreorderRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Preorder, error) {
	rows, err := r.q.Query(ctx, `SELECT `+preorderColumns+` FROM preorders WHERE `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return collect(rows, op, scanPreorder)
}
