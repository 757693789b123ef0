package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, role, voucher_balance, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(s scanner) (*entity.User, error) {
	var u entity.User
	if err := s.Scan(&u.ID, &u.Name, &u.Role, &u.VoucherBalance, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, role, voucher_balance, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Name, user.Role, user.VoucherBalance, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, user.ID)
		}
		return storageErr("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user by id", err)
	}
	return u, nil
}

// Update actualiza nombre, rol y estado. voucher_balance no se toca.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET name = $2, role = $3, status = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Role, user.Status, user.UpdatedAt)
	if err != nil {
		return storageErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, user.ID)
	}
	return nil
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete user", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return collect(rows, "scan user", scanUser)
}

func (r *UserRepo) ListByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE status = $1 ORDER BY created_at, id`, status)
	if err != nil {
		return nil, storageErr("list users by status", err)
	}
	return collect(rows, "scan user", scanUser)
}

// Credit suma amount en una sola sentencia; las cuentas archivadas no reciben abonos.
func (r *UserRepo) Credit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error) {
	query := `
		UPDATE users SET voucher_balance = voucher_balance + $2, updated_at = now()
		WHERE id = $1 AND status <> $3
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query, id, amount, entity.UserStatusArchived))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageErr("credit user", err)
	}
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return nil, fmt.Errorf("%w: la cuenta %s está %s", domain.ErrInvalidState, id, cur.Status)
}

// Debit resta amount solo si el saldo alcanza: la condición y la resta son la misma sentencia,
// así dos débitos concurrentes nunca dejan el saldo negativo.
func (r *UserRepo) Debit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error) {
	query := `
		UPDATE users SET voucher_balance = voucher_balance - $2, updated_at = now()
		WHERE id = $1 AND voucher_balance >= $2
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query, id, amount))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageErr("debit user", err)
	}
	cur, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return nil, fmt.Errorf("%w: usuario %s tiene %s, requiere %s",
		domain.ErrInsufficientBalance, id, cur.VoucherBalance, amount)
}
