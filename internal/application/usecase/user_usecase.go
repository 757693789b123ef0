package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/ledger"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo     repository.UserRepository
	accounts *ledger.AccountLedger
	ids      IDGenerator
	now      func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, ids IDGenerator) *UserUseCase {
	return &UserUseCase{
		repo:     repo,
		accounts: ledger.NewAccountLedger(repo),
		ids:      ids,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create registra un usuario con saldo cero. Si in.ID viene vacío se asigna uno nuevo;
// un ID externo no puede tener la forma U<n>.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	role := entity.RoleResident
	if in.Role != "" {
		r, err := entity.ParseRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	status := entity.UserStatusActive
	if in.Status != "" {
		s, err := entity.ParseUserStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	id := strings.TrimSpace(in.ID)
	// Los IDs U<n> pertenecen al asignador; aceptarlos de afuera provocaría colisiones más adelante.
	if entity.EntityUser.IsAllocatedID(id) {
		return nil, fmt.Errorf("%w: el ID %s está reservado para IDs asignados", domain.ErrInvalidInput, id)
	}
	if id == "" {
		var err error
		if id, err = uc.ids.NextID(ctx, entity.EntityUser); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	user := &entity.User{
		ID:             id,
		Name:           name,
		Role:           role,
		VoucherBalance: decimal.Zero,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return dto.FromUser(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return toUserResponses(list), nil
}

// ListByStatus filtra por estado; un estado desconocido es ErrInvalidInput.
func (uc *UserUseCase) ListByStatus(ctx context.Context, status string) ([]dto.UserResponse, error) {
	s, err := entity.ParseUserStatus(status)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByStatus(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	return toUserResponses(list), nil
}

// Update cambia nombre y rol. El saldo solo cambia vía AddBalance/DeductBalance.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if in.Role != nil {
		r, err := entity.ParseRole(*in.Role)
		if err != nil {
			return nil, err
		}
		user.Role = r
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return dto.FromUser(user), nil
}

// UpdateStatus cambia el estado de la cuenta.
func (uc *UserUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.UserResponse, error) {
	s, err := entity.ParseUserStatus(status)
	if err != nil {
		return nil, err
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Status = s
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user status: %w", err)
	}
	return dto.FromUser(user), nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
	}
	return nil
}

// AddBalance abono manual del administrador.
func (uc *UserUseCase) AddBalance(ctx context.Context, id string, amount decimal.Decimal) (*dto.UserResponse, error) {
	user, err := uc.accounts.Credit(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// DeductBalance descuento manual del administrador; falla si el saldo no alcanza.
func (uc *UserUseCase) DeductBalance(ctx context.Context, id string, amount decimal.Decimal) (*dto.UserResponse, error) {
	user, err := uc.accounts.Debit(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}

// Leaderboard ranking de residentes activos por saldo, de mayor a menor. limit <= 0 devuelve todos.
func (uc *UserUseCase) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	list, err := uc.repo.ListByStatus(ctx, entity.UserStatusActive)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	residents := make([]*entity.User, 0, len(list))
	for _, u := range list {
		if u.Role == entity.RoleResident {
			residents = append(residents, u)
		}
	}
	sort.SliceStable(residents, func(i, k int) bool {
		return residents[i].VoucherBalance.GreaterThan(residents[k].VoucherBalance)
	})
	if limit > 0 && len(residents) > limit {
		residents = residents[:limit]
	}
	out := make([]dto.LeaderboardEntry, 0, len(residents))
	for i, u := range residents {
		out = append(out, dto.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         u.ID,
			Name:           u.Name,
			VoucherBalance: u.VoucherBalance,
		})
	}
	return out, nil
}

func toUserResponses(list []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.FromUser(u))
	}
	return out
}
