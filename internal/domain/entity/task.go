package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain"
)

// TaskStatus estado de una tarea comunitaria. OPEN → CLOSED es de una sola vía.
type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "OPEN"
	TaskStatusClosed TaskStatus = "CLOSED"
)

// ParseTaskStatus convierte un string en TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, error) {
	return parseEnum("task status", s, TaskStatusOpen, TaskStatusClosed)
}

// ContributorStatus estado de un participante dentro de una tarea.
type ContributorStatus string

const (
	ContributorStatusPending   ContributorStatus = "PENDING"
	ContributorStatusApproved  ContributorStatus = "APPROVED"
	ContributorStatusRejected  ContributorStatus = "REJECTED"
	ContributorStatusProcessed ContributorStatus = "PROCESSED" // recompensa pagada
)

// ParseContributorStatus convierte un string en ContributorStatus.
func ParseContributorStatus(s string) (ContributorStatus, error) {
	return parseEnum("contributor status", s,
		ContributorStatusPending, ContributorStatusApproved, ContributorStatusRejected, ContributorStatusProcessed)
}

// CanBeDecidedAs indica si una decisión externa puede mover el estado a next.
// PROCESSED no es una decisión: solo lo asigna el pago.
func (s ContributorStatus) CanBeDecidedAs(next ContributorStatus) bool {
	return s == ContributorStatusPending && (next == ContributorStatusApproved || next == ContributorStatusRejected)
}

// Contributor usuario inscrito en una tarea. Name es una copia al momento de inscribirse.
// Se persiste embebido en la tarea (sin ciclo de vida propio).
type Contributor struct {
	TaskID   string            `json:"task_id"`
	UserID   string            `json:"user_id"`
	Name     string            `json:"name"`
	JoinedOn time.Time         `json:"joined_on"`
	Status   ContributorStatus `json:"status"`
}

// Task agregado dueño exclusivo de sus Contributors (lista ordenada por inscripción).
type Task struct {
	ID           string
	Name         string
	Description  string
	Reward       decimal.Decimal // recompensa por participante aprobado
	CreatedOn    time.Time
	Status       TaskStatus
	Contributors []Contributor
}

// FindContributor devuelve el índice del participante o -1.
func (t *Task) FindContributor(userID string) int {
	for i := range t.Contributors {
		if t.Contributors[i].UserID == userID {
			return i
		}
	}
	return -1
}

// AddContributor inscribe a user como PENDING. Solo mientras la tarea esté OPEN y sin duplicados.
func (t *Task) AddContributor(user *User, now time.Time) error {
	if t.Status != TaskStatusOpen {
		return fmt.Errorf("%w: la tarea %s está %s", domain.ErrInvalidState, t.ID, t.Status)
	}
	if t.FindContributor(user.ID) >= 0 {
		return fmt.Errorf("%w: el usuario %s ya participa en la tarea %s", domain.ErrDuplicate, user.ID, t.ID)
	}
	t.Contributors = append(t.Contributors, Contributor{
		TaskID:   t.ID,
		UserID:   user.ID,
		Name:     user.Name,
		JoinedOn: now,
		Status:   ContributorStatusPending,
	})
	return nil
}

// RemoveContributor retira a un participante que aún no cobró.
func (t *Task) RemoveContributor(userID string) error {
	if t.Status != TaskStatusOpen {
		return fmt.Errorf("%w: la tarea %s está %s", domain.ErrInvalidState, t.ID, t.Status)
	}
	i := t.FindContributor(userID)
	if i < 0 {
		return fmt.Errorf("%w: participante %s en tarea %s", domain.ErrNotFound, userID, t.ID)
	}
	if t.Contributors[i].Status == ContributorStatusProcessed {
		return fmt.Errorf("%w: el participante %s ya recibió la recompensa", domain.ErrInvalidState, userID)
	}
	t.Contributors = append(t.Contributors[:i], t.Contributors[i+1:]...)
	return nil
}

// ApprovedUserIDs lista los participantes pendientes de pago, en orden de inscripción.
func (t *Task) ApprovedUserIDs() []string {
	var ids []string
	for _, c := range t.Contributors {
		if c.Status == ContributorStatusApproved {
			ids = append(ids, c.UserID)
		}
	}
	return ids
}
