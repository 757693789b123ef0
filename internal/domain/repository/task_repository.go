package repository

import (
	"context"
	"time"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia del agregado Task (tarea + participantes embebidos).
// Se carga y guarda completo para preservar la atomicidad del agregado.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// GetForUpdate carga la tarea bloqueándola hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entity.Task, error)
	ListByStatus(ctx context.Context, status entity.TaskStatus) ([]*entity.Task, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error)
}
