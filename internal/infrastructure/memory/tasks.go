package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo guarda el agregado Task completo; los participantes se copian en cada lectura y escritura.
type TaskRepo struct {
	s *Store
	j *journal
}

func cloneTask(t entity.Task) *entity.Task {
	t.Contributors = append([]entity.Contributor(nil), t.Contributors...)
	return &t
}

func (r *TaskRepo) Create(ctx context.Context, task *entity.Task) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		if _, ok := r.s.tasks[task.ID]; ok {
			return nil, fmt.Errorf("%w: tarea %s", domain.ErrDuplicate, task.ID)
		}
		r.s.tasks[task.ID] = *cloneTask(*task)
		id := task.ID
		return func() { delete(r.s.tasks, id) }, nil
	})
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var out *entity.Task
	err := r.s.read(ctx, func() {
		if t, ok := r.s.tasks[id]; ok {
			out = cloneTask(t)
		}
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de RunTask el writeMu ya excluye a otros escritores.
func (r *TaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.Task, error) {
	return r.GetByID(ctx, id)
}

func (r *TaskRepo) Update(ctx context.Context, task *entity.Task) error {
	return r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.tasks[task.ID]
		if !ok {
			return nil, fmt.Errorf("%w: tarea %s", domain.ErrNotFound, task.ID)
		}
		r.s.tasks[task.ID] = *cloneTask(*task)
		return func() { r.s.tasks[prev.ID] = prev }, nil
	})
}

func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.s.mutate(ctx, r.j, func() (func(), error) {
		prev, ok := r.s.tasks[id]
		if !ok {
			return nil, nil
		}
		delete(r.s.tasks, id)
		deleted = true
		return func() { r.s.tasks[id] = prev }, nil
	})
	return deleted, err
}

func (r *TaskRepo) List(ctx context.Context) ([]*entity.Task, error) {
	return r.filter(ctx, func(*entity.Task) bool { return true })
}

func (r *TaskRepo) ListByStatus(ctx context.Context, status entity.TaskStatus) ([]*entity.Task, error) {
	return r.filter(ctx, func(t *entity.Task) bool { return t.Status == status })
}

func (r *TaskRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	return r.filter(ctx, func(t *entity.Task) bool { return inRange(t.CreatedOn, from, to) })
}

func (r *TaskRepo) filter(ctx context.Context, keep func(*entity.Task) bool) ([]*entity.Task, error) {
	var list []*entity.Task
	err := r.s.read(ctx, func() {
		for _, t := range r.s.tasks {
			if keep(&t) {
				list = append(list, cloneTask(t))
			}
		}
	})
	sortByCreated(list, func(t *entity.Task) time.Time { return t.CreatedOn }, func(t *entity.Task) string { return t.ID })
	return list, err
}
