package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/dto"
	"github.com/jhoicas/emart-api/internal/application/sequence"
	"github.com/jhoicas/emart-api/internal/application/usecase"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func newUserUC() *usecase.UserUseCase {
	store := memory.NewStore()
	return usecase.NewUserUseCase(store.Users(), sequence.NewAllocator(store.Sequences()))
}

func TestUserCreate_ValoresPorDefecto(t *testing.T) {
	uc := newUserUC()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "U1", out.ID)
	assert.Equal(t, "RESIDENT", out.Role)
	assert.Equal(t, "ACTIVE", out.Status)
	assert.True(t, out.VoucherBalance.IsZero())

	ext, err := uc.Create(ctx, dto.CreateUserRequest{ID: "auth0|abc", Name: "Beto", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "auth0|abc", ext.ID, "un ID externo se conserva")
	assert.Equal(t, "ADMIN", ext.Role)

	_, err = uc.Create(ctx, dto.CreateUserRequest{ID: "auth0|abc", Name: "Beto"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "x", Role: "owner"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUserBalance_AbonoYDescuento(t *testing.T) {
	uc := newUserUC()
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana"})
	require.NoError(t, err)

	out, err := uc.AddBalance(ctx, u.ID, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, out.VoucherBalance.Equal(decimal.NewFromInt(20)))

	_, err = uc.DeductBalance(ctx, u.ID, decimal.NewFromInt(21))
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))

	out, err = uc.DeductBalance(ctx, u.ID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.True(t, out.VoucherBalance.Equal(decimal.NewFromInt(15)))

	_, err = uc.UpdateStatus(ctx, u.ID, "ARCHIVED")
	require.NoError(t, err)
	_, err = uc.AddBalance(ctx, u.ID, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
}

func TestUserUpdate_NoCambiaSaldo(t *testing.T) {
	uc := newUserUC()
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana"})
	require.NoError(t, err)
	_, err = uc.AddBalance(ctx, u.ID, decimal.NewFromInt(3))
	require.NoError(t, err)

	name := "Ana María"
	out, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, out.Name)
	assert.True(t, out.VoucherBalance.Equal(decimal.NewFromInt(3)))

	_, err = uc.Update(ctx, "U404", dto.UpdateUserRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLeaderboard_SoloResidentesActivos(t *testing.T) {
	uc := newUserUC()
	ctx := context.Background()
	mk := func(name, role, status string, balance int64) string {
		u, err := uc.Create(ctx, dto.CreateUserRequest{Name: name, Role: role, Status: status})
		require.NoError(t, err)
		if balance > 0 {
			_, err = uc.AddBalance(ctx, u.ID, decimal.NewFromInt(balance))
			require.NoError(t, err)
		}
		return u.ID
	}
	ana := mk("Ana", "", "", 30)
	mk("Admin", "ADMIN", "", 500)
	beto := mk("Beto", "", "", 50)
	mk("Ciro", "", "INACTIVE", 90)
	mk("Dora", "", "", 10)

	board, err := uc.Leaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, beto, board[0].UserID)
	assert.Equal(t, 2, board[1].Rank)
	assert.Equal(t, ana, board[1].UserID)

	all, err := uc.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserCreate_IDConFormaDeAsignador_InvalidInput(t *testing.T) {
	uc := newUserUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{ID: "U2", Name: "Ana"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	first, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Ana"})
	require.NoError(t, err)
	second, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Beto"})
	require.NoError(t, err, "el asignador nunca choca con un ID externo")
	assert.Equal(t, []string{"U1", "U2"}, []string{first.ID, second.ID})

	ext, err := uc.Create(ctx, dto.CreateUserRequest{ID: "Uriel", Name: "Uriel"})
	require.NoError(t, err)
	assert.Equal(t, "Uriel", ext.ID)
}
