package purchase_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/application/sequence"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
)

type mockIDs struct {
	mock.Mock
}

func (m *mockIDs) NextID(ctx context.Context, t entity.EntityType) (string, error) {
	args := m.Called(ctx, t)
	return args.String(0), args.Error(1)
}

type fixture struct {
	store *memory.Store
	uc    *purchase.UseCase
}

func newFixture(t *testing.T, ids purchase.IDGenerator) *fixture {
	t.Helper()
	store := memory.NewStore()
	if ids == nil {
		ids = sequence.NewAllocator(store.Sequences())
	}
	uc := purchase.NewUseCase(store, ids, store.Users(), store.Products(), store.Transactions())
	return &fixture{store: store, uc: uc}
}

func (f *fixture) user(t *testing.T, id string, balance int64) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{
		ID: id, Name: id, Role: entity.RoleResident, Status: entity.UserStatusActive,
		VoucherBalance: decimal.NewFromInt(balance),
	}))
}

func (f *fixture) product(t *testing.T, id string, price, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: id, Price: decimal.NewFromInt(price), Quantity: qty,
	}))
}

func (f *fixture) state(t *testing.T, userID, productID string) (decimal.Decimal, int64) {
	t.Helper()
	ctx := context.Background()
	u, err := f.store.Users().GetByID(ctx, userID)
	require.NoError(t, err)
	p, err := f.store.Products().GetByID(ctx, productID)
	require.NoError(t, err)
	return u.VoucherBalance, p.Quantity
}

func TestPurchase_DescuentaStockYSaldo(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 100)
	f.product(t, "P1", 10, 5)

	tx, err := f.uc.Purchase(context.Background(), "U1", "P1", 3)
	require.NoError(t, err)
	assert.Equal(t, "TX1", tx.ID)
	assert.Equal(t, int64(3), tx.Quantity)
	assert.True(t, tx.TotalPrice.Equal(decimal.NewFromInt(30)))

	balance, stock := f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, int64(2), stock)

	// segunda compra de 3 con solo 2 en stock
	_, err = f.uc.Purchase(context.Background(), "U1", "P1", 3)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	balance, stock = f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(70)))
	assert.Equal(t, int64(2), stock)

	list, err := f.uc.ListByUser(context.Background(), "U1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPurchase_SaldoInsuficiente_SinEfectos(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 25)
	f.product(t, "P1", 10, 5)

	_, err := f.uc.Purchase(context.Background(), "U1", "P1", 3)
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))

	balance, stock := f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, int64(5), stock)
	list, err := f.uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchase_EntradaInvalida(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 100)
	f.product(t, "P1", 10, 5)

	for _, qty := range []int64{0, -1} {
		_, err := f.uc.Purchase(context.Background(), "U1", "P1", qty)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "qty %d", qty)
	}
	_, err := f.uc.Purchase(context.Background(), "", "P1", 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPurchase_Inexistentes_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 100)
	f.product(t, "P1", 10, 5)

	_, err := f.uc.Purchase(context.Background(), "U9", "P1", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.uc.Purchase(context.Background(), "U1", "P9", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPurchase_FalloAlAsignarID_Rollback(t *testing.T) {
	ids := new(mockIDs)
	ids.On("NextID", mock.Anything, entity.EntityTransaction).
		Return("", errors.Join(domain.ErrStorageUnavailable, errors.New("timeout")))
	f := newFixture(t, ids)
	f.user(t, "U1", 100)
	f.product(t, "P1", 10, 5)

	_, err := f.uc.Purchase(context.Background(), "U1", "P1", 2)
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))

	balance, stock := f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "el débito se deshace")
	assert.Equal(t, int64(5), stock, "el descuento de stock se deshace")
	ids.AssertExpectations(t)
}

func TestPurchase_Concurrente_UltimaUnidad(t *testing.T) {
	const buyers = 20
	f := newFixture(t, nil)
	f.product(t, "P1", 5, 1)
	for i := 0; i < buyers; i++ {
		f.user(t, "U"+string(rune('A'+i)), 100)
	}

	var (
		wg        sync.WaitGroup
		succeeded int32
		noStock   int32
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			_, err := f.uc.Purchase(context.Background(), userID, "P1", 1)
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case errors.Is(err, domain.ErrInsufficientStock):
				atomic.AddInt32(&noStock, 1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}("U" + string(rune('A'+i)))
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded, "solo una compra puede llevarse la última unidad")
	assert.Equal(t, int32(buyers-1), noStock)
	p, err := f.store.Products().GetByID(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Quantity)
}

func TestPurchase_Concurrente_MismoUsuarioNoSobregira(t *testing.T) {
	const attempts = 10
	f := newFixture(t, nil)
	f.user(t, "U1", 30)
	f.product(t, "P1", 10, 100)

	var (
		wg        sync.WaitGroup
		succeeded int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.uc.Purchase(context.Background(), "U1", "P1", 1); err == nil {
				atomic.AddInt32(&succeeded, 1)
			} else {
				assert.True(t, errors.Is(err, domain.ErrInsufficientBalance), "%v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), succeeded)
	balance, stock := f.state(t, "U1", "P1")
	assert.True(t, balance.IsZero())
	assert.Equal(t, int64(97), stock)
}

func TestDelete_NoRevierteStockNiSaldo(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 100)
	f.product(t, "P1", 10, 5)

	tx, err := f.uc.Purchase(context.Background(), "U1", "P1", 1)
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), tx.ID))

	_, err = f.uc.GetByID(context.Background(), tx.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	balance, stock := f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, int64(4), stock)

	err = f.uc.Delete(context.Background(), tx.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPurchase_PrecioCero(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 100)
	f.product(t, "P1", 0, 5)

	tx, err := f.uc.Purchase(context.Background(), "U1", "P1", 2)
	require.NoError(t, err)
	assert.Equal(t, "TX1", tx.ID)
	assert.True(t, tx.TotalPrice.IsZero())

	balance, qty := f.state(t, "U1", "P1")
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "el saldo no cambia")
	assert.Equal(t, int64(3), qty)
}

func TestPurchase_PrecioCero_SaldoCero(t *testing.T) {
	f := newFixture(t, nil)
	f.user(t, "U1", 0)
	f.product(t, "P1", 0, 1)

	_, err := f.uc.Purchase(context.Background(), "U1", "P1", 1)
	require.NoError(t, err)
	_, qty := f.state(t, "U1", "P1")
	assert.Equal(t, int64(0), qty)
}
