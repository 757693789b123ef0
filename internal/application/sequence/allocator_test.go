package sequence_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/application/sequence"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
)

type mockSequenceRepo struct {
	mock.Mock
}

func (m *mockSequenceRepo) Next(ctx context.Context, name entity.EntityType) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func TestNextID_PrefijoPorTipo(t *testing.T) {
	ctx := context.Background()
	alloc := sequence.NewAllocator(memory.NewStore().Sequences())

	first, err := alloc.NextID(ctx, entity.EntityUser)
	require.NoError(t, err)
	second, err := alloc.NextID(ctx, entity.EntityUser)
	require.NoError(t, err)
	tx, err := alloc.NextID(ctx, entity.EntityTransaction)
	require.NoError(t, err)
	po, err := alloc.NextID(ctx, entity.EntityPreorder)
	require.NoError(t, err)

	assert.Equal(t, "U1", first)
	assert.Equal(t, "U2", second)
	assert.Equal(t, "TX1", tx, "cada tipo tiene su propio contador")
	assert.Equal(t, "PO1", po)
}

func TestNextID_Concurrente_SinDuplicadosNiHuecos(t *testing.T) {
	const n = 200
	ctx := context.Background()
	alloc := sequence.NewAllocator(memory.NewStore().Sequences())

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make([]string, 0, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := alloc.NextID(ctx, entity.EntityProduct)
			assert.NoError(t, err)
			mu.Lock()
			ids = append(ids, id)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, ids, n)
	nums := make([]int, 0, n)
	for _, id := range ids {
		require.True(t, strings.HasPrefix(id, "P"), id)
		v, err := strconv.Atoi(strings.TrimPrefix(id, "P"))
		require.NoError(t, err)
		nums = append(nums, v)
	}
	sort.Ints(nums)
	for i, v := range nums {
		assert.Equal(t, i+1, v, "los IDs deben ser exactamente P1..P%d", n)
	}
}

func TestNextID_TipoDesconocido_InvalidInput(t *testing.T) {
	repo := new(mockSequenceRepo)
	alloc := sequence.NewAllocator(repo)

	_, err := alloc.NextID(context.Background(), entity.EntityType("Invoice"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	repo.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
}

func TestNextID_FalloDelContador_StorageUnavailable(t *testing.T) {
	repo := new(mockSequenceRepo)
	repo.On("Next", mock.Anything, entity.EntityTask).Return(int64(0), errors.New("connection refused"))
	alloc := sequence.NewAllocator(repo)

	id, err := alloc.NextID(context.Background(), entity.EntityTask)
	require.Error(t, err)
	assert.Empty(t, id, "nunca se devuelve un ID inventado")
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
	repo.AssertExpectations(t)
}
