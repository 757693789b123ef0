package preorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/preorder"
	"github.com/jhoicas/emart-api/internal/application/sequence"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
)

func setup(t *testing.T) (*preorder.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(ctx, &entity.User{
		ID: "U1", Name: "Ana", Role: entity.RoleResident, Status: entity.UserStatusActive, VoucherBalance: decimal.NewFromInt(1),
	}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID: "P1", Name: "Arroz", Price: decimal.RequireFromString("4.50"), Quantity: 0,
	}))
	uc := preorder.NewUseCase(sequence.NewAllocator(store.Sequences()), store.Preorders(), store.Users(), store.Products())
	return uc, store
}

func TestCreate_FijaPrecioYNoTocaStockNiSaldo(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, "U1", "P1", 4)
	require.NoError(t, err)
	assert.Equal(t, "PO1", p.ID)
	assert.Equal(t, entity.PreorderStatusPending, p.Status)
	assert.True(t, p.UnitPrice.Equal(decimal.RequireFromString("4.50")))
	assert.True(t, p.TotalPrice.Equal(decimal.NewFromInt(18)))

	u, err := store.Users().GetByID(ctx, "U1")
	require.NoError(t, err)
	assert.True(t, u.VoucherBalance.Equal(decimal.NewFromInt(1)), "una preorden no cobra")
	prod, err := store.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), prod.Quantity, "se puede preordenar sin stock")
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "U1", "P1", 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = uc.Create(ctx, "U9", "P1", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = uc.Create(ctx, "U1", "P9", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateQuantity_MantienePrecioOriginal(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, "U1", "P1", 2)
	require.NoError(t, err)

	// el precio del producto cambia después de la preorden
	prod, err := store.Products().GetByID(ctx, "P1")
	require.NoError(t, err)
	prod.Price = decimal.NewFromInt(100)
	require.NoError(t, store.Products().Update(ctx, prod))

	out, err := uc.UpdateQuantity(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Quantity)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("13.50")))

	_, err = uc.UpdateQuantity(ctx, p.ID, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateStatus_SoloHaciaAdelante(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, "U1", "P1", 1)
	require.NoError(t, err)

	out, err := uc.UpdateStatus(ctx, p.ID, "fulfilled")
	require.NoError(t, err)
	assert.Equal(t, entity.PreorderStatusFulfilled, out.Status)

	_, err = uc.UpdateStatus(ctx, p.ID, "PENDING")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	_, err = uc.UpdateStatus(ctx, p.ID, "CANCELLED")
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	_, err = uc.UpdateQuantity(ctx, p.ID, 5)
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "solo las preórdenes PENDING cambian de cantidad")
	_, err = uc.UpdateStatus(ctx, p.ID, "LOST")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PreorderStatusFulfilled, got.Status)
	assert.Equal(t, int64(1), got.Quantity)
}

func TestListados(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, "U1", "P1", 1)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "U1", "P1", 2)
	require.NoError(t, err)
	_, err = uc.UpdateStatus(ctx, a.ID, "CANCELLED")
	require.NoError(t, err)

	pending, err := uc.ListByStatus(ctx, "PENDING")
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	byUser, err := uc.ListByUser(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	require.NoError(t, uc.Delete(ctx, a.ID))
	err = uc.Delete(ctx, a.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
