// Package memory implementa todos los puertos de persistencia en proceso.
// Se usa en modo desarrollo (STORAGE_DRIVER=memory) y en los tests de casos de uso.
//
// Las escrituras se serializan con writeMu; una unidad de trabajo (RunPurchase/RunTask)
// retiene writeMu durante todo el callback y deshace sus cambios si el callback falla.
// Las secuencias usan su propio candado para poder asignar IDs dentro de una unidad de trabajo.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/application/tasks"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ purchase.TxRunner = (*Store)(nil)
var _ tasks.TxRunner = (*Store)(nil)

// Store datos en memoria compartidos por todos los repositorios.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	seqMu   sync.Mutex

	users           map[string]entity.User
	products        map[string]entity.Product
	transactions    map[string]entity.Transaction
	preorders       map[string]entity.Preorder
	tasks           map[string]entity.Task
	productRequests map[string]entity.ProductRequest
	productLogs     []entity.ProductLog
	sequences       map[entity.EntityType]int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:           make(map[string]entity.User),
		products:        make(map[string]entity.Product),
		transactions:    make(map[string]entity.Transaction),
		preorders:       make(map[string]entity.Preorder),
		tasks:           make(map[string]entity.Task),
		productRequests: make(map[string]entity.ProductRequest),
		sequences:       make(map[entity.EntityType]int64),
	}
}

// journal acumula las operaciones inversas de una unidad de trabajo.
type journal struct {
	undo []func()
}

func (j *journal) rollback() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
}

// mutate aplica fn bajo el candado de datos. Fuera de una unidad de trabajo (j == nil)
// toma además writeMu; dentro, registra la operación inversa en el journal.
func (s *Store) mutate(ctx context.Context, j *journal, fn func() (undo func(), err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if j == nil {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}
	s.mu.Lock()
	undo, err := fn()
	s.mu.Unlock()
	if err == nil && j != nil && undo != nil {
		j.undo = append(j.undo, func() {
			s.mu.Lock()
			undo()
			s.mu.Unlock()
		})
	}
	return err
}

func (s *Store) read(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
	return nil
}

// run ejecuta fn como unidad de trabajo: todo o nada.
func (s *Store) run(ctx context.Context, fn func(j *journal) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	j := &journal{}
	if err := fn(j); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// RunPurchase ejecuta fn con repositorios atados a una misma unidad de trabajo.
func (s *Store) RunPurchase(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return s.run(ctx, func(j *journal) error {
		return fn(&UserRepo{s: s, j: j}, &ProductRepo{s: s, j: j}, &TransactionRepo{s: s, j: j})
	})
}

// RunTask ejecuta fn con los repositorios de tareas y usuarios en una misma unidad de trabajo.
func (s *Store) RunTask(ctx context.Context, fn func(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.run(ctx, func(j *journal) error {
		return fn(&TaskRepo{s: s, j: j}, &UserRepo{s: s, j: j})
	})
}

// Repositorios fuera de transacción.
func (s *Store) Users() *UserRepo                     { return &UserRepo{s: s} }
func (s *Store) Products() *ProductRepo               { return &ProductRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo       { return &TransactionRepo{s: s} }
func (s *Store) Preorders() *PreorderRepo             { return &PreorderRepo{s: s} }
func (s *Store) Tasks() *TaskRepo                     { return &TaskRepo{s: s} }
func (s *Store) ProductRequests() *ProductRequestRepo { return &ProductRequestRepo{s: s} }
func (s *Store) ProductLogs() *ProductLogRepo         { return &ProductLogRepo{s: s} }
func (s *Store) Sequences() *SequenceRepo             { return &SequenceRepo{s: s} }

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// sortByCreated ordena por fecha de creación y luego por ID para listados deterministas.
func sortByCreated[T any](list []*T, created func(*T) time.Time, id func(*T) string) {
	sort.Slice(list, func(i, k int) bool {
		ci, ck := created(list[i]), created(list[k])
		if ci.Equal(ck) {
			return id(list[i]) < id(list[k])
		}
		return ci.Before(ck)
	})
}
