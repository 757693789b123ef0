package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/emart-api/internal/domain/entity"
)

// CreateTaskRequest entrada para crear una tarea comunitaria.
type CreateTaskRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Reward      decimal.Decimal `json:"reward"`
	Status      string          `json:"status"`
}

// UpdateTaskRequest campos opcionales de una tarea.
type UpdateTaskRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Reward      *decimal.Decimal `json:"reward"`
	Status      *string          `json:"status"`
}

// ContributorRequest usuario que se inscribe en una tarea.
type ContributorRequest struct {
	UserID string `json:"user_id"`
}

// ContributorResponse participante de una tarea.
type ContributorResponse struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	JoinedOn time.Time `json:"joined_on"`
	Status   string    `json:"status"`
}

// TaskResponse salida de una tarea con sus participantes.
type TaskResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Reward       decimal.Decimal       `json:"reward"`
	CreatedOn    time.Time             `json:"created_on"`
	Status       string                `json:"status"`
	Contributors []ContributorResponse `json:"contributors"`
}

func FromTask(t *entity.Task) *TaskResponse {
	if t == nil {
		return nil
	}
	contributors := make([]ContributorResponse, 0, len(t.Contributors))
	for _, c := range t.Contributors {
		contributors = append(contributors, ContributorResponse{
			UserID:   c.UserID,
			Name:     c.Name,
			JoinedOn: c.JoinedOn,
			Status:   string(c.Status),
		})
	}
	return &TaskResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		Reward:       t.Reward,
		CreatedOn:    t.CreatedOn,
		Status:       string(t.Status),
		Contributors: contributors,
	}
}

func FromTasks(list []*entity.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *FromTask(t))
	}
	return out
}
