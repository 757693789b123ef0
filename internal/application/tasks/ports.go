package tasks

import (
	"context"

	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una unidad de trabajo con la tarea y los usuarios atados a ella.
// En Postgres GetForUpdate bloquea la fila de la tarea hasta el commit.
type TxRunner interface {
	RunTask(ctx context.Context, fn func(
		taskRepo repository.TaskRepository,
		userRepo repository.UserRepository,
	) error) error
}

// IDGenerator emite IDs de tareas.
type IDGenerator interface {
	NextID(ctx context.Context, entityType entity.EntityType) (string, error)
}
