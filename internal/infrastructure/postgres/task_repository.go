package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

const taskColumns = `id, name, description, reward, created_on, status, contributors`

// TaskRepo guarda el agregado Task en una sola fila; los participantes van en la columna JSONB contributors.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

func scanTask(s scanner) (*entity.Task, error) {
	var t entity.Task
	var raw []byte
	if err := s.Scan(&t.ID, &t.Name, &t.Description, &t.Reward, &t.CreatedOn, &t.Status, &raw); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &t.Contributors); err != nil {
			return nil, fmt.Errorf("decode contributors: %w", err)
		}
	}
	return &t, nil
}

func encodeContributors(list []entity.Contributor) ([]byte, error) {
	if list == nil {
		list = []entity.Contributor{}
	}
	return json.Marshal(list)
}

func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	contributors, err := encodeContributors(t.Contributors)
	if err != nil {
		return fmt.Errorf("encode contributors: %w", err)
	}
	query := `
		INSERT INTO tasks (id, name, description, reward, created_on, status, contributors)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(ctx, query, t.ID, t.Name, t.Description, t.Reward, t.CreatedOn, t.Status, contributors)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tarea %s", domain.ErrDuplicate, t.ID)
		}
		return storageErr("insert task", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	return r.get(ctx, "get task by id", `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila de la tarea hasta el fin de la transacción.
func (r *TaskRepo) GetForUpdate(ctx context.Context, id string) (*entity.Task, error) {
	return r.get(ctx, "get task for update", `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id)
}

func (r *TaskRepo) get(ctx context.Context, op, query, id string) (*entity.Task, error) {
	t, err := scanTask(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return t, nil
}

// Update guarda el agregado completo (datos de la tarea y participantes).
func (r *TaskRepo) Update(ctx context.Context, t *entity.Task) error {
	contributors, err := encodeContributors(t.Contributors)
	if err != nil {
		return fmt.Errorf("encode contributors: %w", err)
	}
	query := `
		UPDATE tasks SET name = $2, description = $3, reward = $4, status = $5, contributors = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Name, t.Description, t.Reward, t.Status, contributors)
	if err != nil {
		return storageErr("update task", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, t.ID)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, storageErr("delete task", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]*entity.Task, error) {
	return r.list(ctx, "list tasks", `TRUE`)
}

func (r *TaskRepo) ListByStatus(ctx context.Context, status entity.TaskStatus) ([]*entity.Task, error) {
	return r.list(ctx, "list tasks by status", `status = $1`, status)
}

func (r *TaskRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	return r.list(ctx, "list tasks between", `created_on BETWEEN $1 AND $2`, from, to)
}

func (r *TaskRepo) list(ctx context.Context, op, where string, args ...any) ([]*entity.Task, error) {
	rows, err := r.q.Query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE `+where+` ORDER BY created_on, id`, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	return collect(rows, op, scanTask)
}
