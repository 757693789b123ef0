package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/ledger"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
)

func newLedger(t *testing.T, users ...*entity.User) (*ledger.AccountLedger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, u := range users {
		require.NoError(t, store.Users().Create(context.Background(), u))
	}
	return ledger.NewAccountLedger(store.Users()), store
}

func balanceOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	u, err := store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u.VoucherBalance
}

func TestCredit_SumaAlSaldo(t *testing.T) {
	l, store := newLedger(t, &entity.User{ID: "U1", Status: entity.UserStatusActive, VoucherBalance: decimal.NewFromInt(10)})

	u, err := l.Credit(context.Background(), "U1", decimal.RequireFromString("2.5"))
	require.NoError(t, err)
	assert.True(t, u.VoucherBalance.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, balanceOf(t, store, "U1").Equal(decimal.RequireFromString("12.5")))
}

func TestCredit_MontoNoPositivo_InvalidInput(t *testing.T) {
	l, store := newLedger(t, &entity.User{ID: "U1", Status: entity.UserStatusActive, VoucherBalance: decimal.NewFromInt(10)})

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := l.Credit(context.Background(), "U1", amount)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "monto %s", amount)
		_, err = l.Debit(context.Background(), "U1", amount)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "monto %s", amount)
	}
	assert.True(t, balanceOf(t, store, "U1").Equal(decimal.NewFromInt(10)))
}

func TestCredit_CuentaArchivada_InvalidState(t *testing.T) {
	l, store := newLedger(t, &entity.User{ID: "U1", Status: entity.UserStatusArchived, VoucherBalance: decimal.NewFromInt(3)})

	_, err := l.Credit(context.Background(), "U1", decimal.NewFromInt(5))
	assert.True(t, errors.Is(err, domain.ErrInvalidState))
	assert.True(t, balanceOf(t, store, "U1").Equal(decimal.NewFromInt(3)))
}

func TestDebit_SaldoInsuficiente_NoModifica(t *testing.T) {
	l, store := newLedger(t, &entity.User{ID: "U1", Status: entity.UserStatusActive, VoucherBalance: decimal.NewFromInt(10)})

	_, err := l.Debit(context.Background(), "U1", decimal.RequireFromString("10.01"))
	assert.True(t, errors.Is(err, domain.ErrInsufficientBalance))
	assert.True(t, balanceOf(t, store, "U1").Equal(decimal.NewFromInt(10)))

	u, err := l.Debit(context.Background(), "U1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.True(t, u.VoucherBalance.IsZero(), "se puede dejar el saldo exactamente en cero")
}

func TestDebit_UsuarioInexistente_NotFound(t *testing.T) {
	l, _ := newLedger(t)

	_, err := l.Debit(context.Background(), "U404", decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = ledger.Credit(context.Background(), memory.NewStore().Users(), "", decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestMonto_MasDeDosDecimales_InvalidInput(t *testing.T) {
	l, store := newLedger(t, &entity.User{ID: "U1", Status: entity.UserStatusActive, VoucherBalance: decimal.NewFromInt(10)})
	ctx := context.Background()

	_, err := l.Credit(ctx, "U1", decimal.RequireFromString("0.001"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = l.Debit(ctx, "U1", decimal.RequireFromString("1.005"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, balanceOf(t, store, "U1").Equal(decimal.NewFromInt(10)), "el saldo no cambia")

	u, err := l.Credit(ctx, "U1", decimal.RequireFromString("0.250"))
	require.NoError(t, err, "ceros a la derecha no cuentan como decimales")
	assert.True(t, u.VoucherBalance.Equal(decimal.RequireFromString("10.25")))
}
