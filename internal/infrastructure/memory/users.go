package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s *Store
	j *journal
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.users[user.ID]; ok {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, user.ID)
		}
		r.s.users[user.ID] = *user
		id := user.ID
		return func() { delete(r.s.users, id) }, nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(ctx, func() {
		if u, ok := r.s.users[id]; ok {
			out = &u
		}
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.users[user.ID]
		if !ok {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, user.ID)
		}
		next := prev
		next.Name = user.Name
		next.Role = user.Role
		next.Status = user.Status
		next.UpdatedAt = user.UpdatedAt
		r.s.users[user.ID] = next
		return func() { r.s.users[prev.ID] = prev }, nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.users[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.users, id)
		deleted = true
		return func() { r.s.users[id] = prev }, nil
	})
	return deleted, err
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	return r.filter(ctx, func(*entity.User) bool { return true })
}

func (r *UserRepo) ListByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error) {
	return r.filter(ctx, func(u *entity.User) bool { return u.Status == status })
}

func (r *UserRepo) filter(ctx context.Context, keep func(*entity.User) bool) ([]*entity.User, error) {
	var list []*entity.User
	err := r.s.read(ctx, func() {
		for _, u := range r.s.users {
			u := u
			if keep(&u) {
				list = append(list, &u)
			}
		}
	})
	sortByCreated(list, func(u *entity.User) time.Time { return u.CreatedAt }, func(u *entity.User) string { return u.ID })
	return list, err
}

// Credit suma amount al saldo; la verificación y la escritura ocurren bajo el mismo candado.
func (r *UserRepo) Credit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error) {
	var out entity.User
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		u, ok := r.s.users[id]
		if !ok {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
		}
		if !u.CanReceiveCredit() {
			return nil, fmt.Errorf("%w: la cuenta %s está %s", domain.ErrInvalidState, id, u.Status)
		}
		u.VoucherBalance = u.VoucherBalance.Add(amount)
		r.s.users[id] = u
		out = u
		return func() { r.adjust(id, amount.Neg()) }, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Debit resta amount solo si el saldo alcanza (compare-and-set bajo candado).
func (r *UserRepo) Debit(ctx context.Context, id string, amount decimal.Decimal) (*entity.User, error) {
	var out entity.User
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		u, ok := r.s.users[id]
		if !ok {
			return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
		}
		if u.VoucherBalance.LessThan(amount) {
			return nil, fmt.Errorf("%w: usuario %s tiene %s, requiere %s",
				domain.ErrInsufficientBalance, id, u.VoucherBalance, amount)
		}
		u.VoucherBalance = u.VoucherBalance.Sub(amount)
		r.s.users[id] = u
		out = u
		return func() { r.adjust(id, amount) }, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// adjust se usa solo al deshacer; se llama con r.s.mu tomado.
func (r *UserRepo) adjust(id string, delta decimal.Decimal) {
	if u, ok := r.s.users[id]; ok {
		u.VoucherBalance = u.VoucherBalance.Add(delta)
		r.s.users[id] = u
	}
}
