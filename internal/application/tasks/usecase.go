// Package tasks implementa el flujo de tareas comunitarias: inscripción de participantes,
// decisión de aprobación, pago de recompensas a través del ledger y cierre.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/application/ledger"
	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
	"github.com/jhoicas/emart-api/internal/domain/repository"
)

// errNotPayable indica que, al bloquear la tarea, el participante ya no estaba APPROVED
// (otro proceso lo pagó o lo retiró). No es un fallo de pago.
var errNotPayable = errors.New("participante no pagable")

// UseCase flujo de tareas y participantes.
type UseCase struct {
	txRunner TxRunner
	ids      IDGenerator
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. logger recibe los fallos de pago por participante.
func NewUseCase(
	txRunner TxRunner,
	ids IDGenerator,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		ids:      ids,
		taskRepo: taskRepo,
		userRepo: userRepo,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateInput datos para crear una tarea. Status vacío significa OPEN.
type CreateInput struct {
	Name        string
	Description string
	Reward      decimal.Decimal
	Status      string
}

// UpdateInput campos opcionales de una tarea existente.
type UpdateInput struct {
	Name        *string
	Description *string
	Reward      *decimal.Decimal
	Status      *string
}

func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.Task, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre de la tarea es obligatorio", domain.ErrInvalidInput)
	}
	if err := validateReward(in.Reward); err != nil {
		return nil, err
	}
	status := entity.TaskStatusOpen
	if in.Status != "" {
		s, err := entity.ParseTaskStatus(in.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	id, err := uc.ids.NextID(ctx, entity.EntityTask)
	if err != nil {
		return nil, err
	}
	task := &entity.Task{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Reward:      in.Reward,
		CreatedOn:   uc.now(),
		Status:      status,
	}
	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// GetByID devuelve la tarea o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: tarea %s", domain.ErrNotFound, id)
	}
	return t, nil
}

func (uc *UseCase) List(ctx context.Context) ([]*entity.Task, error) {
	return uc.taskRepo.List(ctx)
}

func (uc *UseCase) ListByStatus(ctx context.Context, status string) ([]*entity.Task, error) {
	s, err := entity.ParseTaskStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.taskRepo.ListByStatus(ctx, s)
}

func (uc *UseCase) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Task, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	return uc.taskRepo.ListBetween(ctx, from, to)
}

// Update modifica nombre, descripción y recompensa. El estado solo puede pasar de OPEN a CLOSED.
func (uc *UseCase) Update(ctx context.Context, id string, in UpdateInput) (*entity.Task, error) {
	var next entity.TaskStatus
	if in.Status != nil {
		s, err := entity.ParseTaskStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		next = s
	}
	if in.Reward != nil {
		if err := validateReward(*in.Reward); err != nil {
			return nil, err
		}
	}
	if in.Name != nil && *in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre de la tarea es obligatorio", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, id, func(t *entity.Task, _ repository.UserRepository) error {
		if next != "" && next != t.Status {
			if next == entity.TaskStatusOpen {
				return fmt.Errorf("%w: una tarea cerrada no se puede reabrir", domain.ErrInvalidState)
			}
			t.Status = next
		}
		if in.Name != nil {
			t.Name = *in.Name
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Reward != nil {
			t.Reward = *in.Reward
		}
		return nil
	})
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, id)
	}
	return nil
}

// AddContributor inscribe a userID como PENDING con una copia de su nombre.
func (uc *UseCase) AddContributor(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	return uc.mutate(ctx, taskID, func(t *entity.Task, users repository.UserRepository) error {
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
		}
		return t.AddContributor(user, uc.now())
	})
}

// RemoveContributor retira a un participante que todavía no cobró.
func (uc *UseCase) RemoveContributor(ctx context.Context, taskID, userID string) (*entity.Task, error) {
	return uc.mutate(ctx, taskID, func(t *entity.Task, _ repository.UserRepository) error {
		return t.RemoveContributor(userID)
	})
}

// SetContributorStatus registra la decisión externa PENDING → APPROVED | REJECTED.
func (uc *UseCase) SetContributorStatus(ctx context.Context, taskID, userID, status string) (*entity.Task, error) {
	next, err := entity.ParseContributorStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, taskID, func(t *entity.Task, _ repository.UserRepository) error {
		i := t.FindContributor(userID)
		if i < 0 {
			return fmt.Errorf("%w: participante %s en tarea %s", domain.ErrNotFound, userID, taskID)
		}
		cur := t.Contributors[i].Status
		if cur == next {
			return nil
		}
		if !cur.CanBeDecidedAs(next) {
			return fmt.Errorf("%w: participante %s no puede pasar de %s a %s", domain.ErrInvalidState, userID, cur, next)
		}
		t.Contributors[i].Status = next
		return nil
	})
}

// Close pasa la tarea a CLOSED aunque queden participantes aprobados sin pagar.
// TODO: confirmar con producto si cerrar debe exigir que no queden pagos pendientes.
func (uc *UseCase) Close(ctx context.Context, taskID string) (*entity.Task, error) {
	return uc.mutate(ctx, taskID, func(t *entity.Task, _ repository.UserRepository) error {
		t.Status = entity.TaskStatusClosed
		return nil
	})
}

// Process paga la recompensa a cada participante APPROVED y lo marca PROCESSED.
//
// Cada pago es su propia unidad de trabajo: abono y cambio de estado se confirman juntos
// o no se aplican. Un fallo con un participante se registra y no detiene a los demás.
// Como el estado se vuelve a comprobar con la tarea bloqueada, dos llamadas concurrentes
// no pagan dos veces al mismo participante.
func (uc *UseCase) Process(ctx context.Context, taskID string) (*entity.Task, error) {
	task, err := uc.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	for _, userID := range task.ApprovedUserIDs() {
		err := uc.payContributor(ctx, taskID, userID)
		switch {
		case err == nil:
		case errors.Is(err, errNotPayable):
			uc.logger.Debug().Str("task_id", taskID).Str("user_id", userID).Msg("participante ya no está aprobado, se omite")
		default:
			uc.logger.Warn().Err(err).Str("task_id", taskID).Str("user_id", userID).Msg("no se pudo pagar la recompensa")
		}
	}
	return uc.GetByID(ctx, taskID)
}

func (uc *UseCase) payContributor(ctx context.Context, taskID, userID string) error {
	return uc.txRunner.RunTask(ctx, func(taskRepo repository.TaskRepository, userRepo repository.UserRepository) error {
		t, err := taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("lock task: %w", err)
		}
		if t == nil {
			return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, taskID)
		}
		i := t.FindContributor(userID)
		if i < 0 || t.Contributors[i].Status != entity.ContributorStatusApproved {
			return errNotPayable
		}
		if _, err := ledger.Credit(ctx, userRepo, userID, t.Reward); err != nil {
			return err
		}
		t.Contributors[i].Status = entity.ContributorStatusProcessed
		if err := taskRepo.Update(ctx, t); err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		return nil
	})
}

// mutate carga la tarea bloqueada, aplica fn y la guarda en la misma unidad de trabajo.
func (uc *UseCase) mutate(ctx context.Context, taskID string, fn func(t *entity.Task, users repository.UserRepository) error) (*entity.Task, error) {
	var out *entity.Task
	err := uc.txRunner.RunTask(ctx, func(taskRepo repository.TaskRepository, userRepo repository.UserRepository) error {
		t, err := taskRepo.GetForUpdate(ctx, taskID)
		if err != nil {
			return fmt.Errorf("lock task: %w", err)
		}
		if t == nil {
			return fmt.Errorf("%w: tarea %s", domain.ErrNotFound, taskID)
		}
		if err := fn(t, userRepo); err != nil {
			return err
		}
		if err := taskRepo.Update(ctx, t); err != nil {
			return fmt.Errorf("save task: %w", err)
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateReward(reward decimal.Decimal) error {
	if !reward.IsPositive() {
		return fmt.Errorf("%w: la recompensa debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.HasMoneyScale(reward) {
		return fmt.Errorf("%w: la recompensa admite a lo sumo %d decimales", domain.ErrInvalidInput, entity.MoneyScale)
	}
	return nil
}
