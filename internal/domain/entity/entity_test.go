package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/emart-api/internal/domain"
	"github.com/jhoicas/emart-api/internal/domain/entity"
)

func TestParseRole_NormalizaMayusculas(t *testing.T) {
	r, err := entity.ParseRole("  admin ")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, r)
}

func TestParseEnums_ValorDesconocido_InvalidInput(t *testing.T) {
	_, err := entity.ParseRole("superuser")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = entity.ParseUserStatus("")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = entity.ParsePreorderStatus("SHIPPED")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = entity.ParseContributorStatus("paid")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestPreorderStatus_SoloAvanzaDesdePending(t *testing.T) {
	cases := []struct {
		from, to entity.PreorderStatus
		ok       bool
	}{
		{entity.PreorderStatusPending, entity.PreorderStatusFulfilled, true},
		{entity.PreorderStatusPending, entity.PreorderStatusCancelled, true},
		{entity.PreorderStatusPending, entity.PreorderStatusPending, false},
		{entity.PreorderStatusFulfilled, entity.PreorderStatusPending, false},
		{entity.PreorderStatusCancelled, entity.PreorderStatusFulfilled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestContributorStatus_ProcessedNoEsDecision(t *testing.T) {
	assert.True(t, entity.ContributorStatusPending.CanBeDecidedAs(entity.ContributorStatusApproved))
	assert.True(t, entity.ContributorStatusPending.CanBeDecidedAs(entity.ContributorStatusRejected))
	assert.False(t, entity.ContributorStatusPending.CanBeDecidedAs(entity.ContributorStatusProcessed))
	assert.False(t, entity.ContributorStatusApproved.CanBeDecidedAs(entity.ContributorStatusRejected))
	assert.False(t, entity.ContributorStatusProcessed.CanBeDecidedAs(entity.ContributorStatusApproved))
}

func TestTask_AddContributor(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	task := &entity.Task{ID: "T1", Status: entity.TaskStatusOpen}
	user := &entity.User{ID: "U1", Name: "Ana"}

	require.NoError(t, task.AddContributor(user, now))
	require.Len(t, task.Contributors, 1)
	c := task.Contributors[0]
	assert.Equal(t, "T1", c.TaskID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, now, c.JoinedOn)
	assert.Equal(t, entity.ContributorStatusPending, c.Status)

	err := task.AddContributor(user, now)
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "un usuario no puede inscribirse dos veces")

	task.Status = entity.TaskStatusClosed
	err = task.AddContributor(&entity.User{ID: "U2"}, now)
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "una tarea cerrada no acepta participantes")
}

func TestTask_RemoveContributor(t *testing.T) {
	task := &entity.Task{
		ID:     "T1",
		Status: entity.TaskStatusOpen,
		Contributors: []entity.Contributor{
			{UserID: "U1", Status: entity.ContributorStatusPending},
			{UserID: "U2", Status: entity.ContributorStatusProcessed},
		},
	}

	err := task.RemoveContributor("U2")
	assert.True(t, errors.Is(err, domain.ErrInvalidState), "un participante pagado no se retira")

	err = task.RemoveContributor("U9")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, task.RemoveContributor("U1"))
	assert.Equal(t, -1, task.FindContributor("U1"))
	assert.Equal(t, 0, task.FindContributor("U2"))
}

func TestTask_ApprovedUserIDs_OrdenDeInscripcion(t *testing.T) {
	task := &entity.Task{Contributors: []entity.Contributor{
		{UserID: "U3", Status: entity.ContributorStatusApproved},
		{UserID: "U1", Status: entity.ContributorStatusRejected},
		{UserID: "U2", Status: entity.ContributorStatusApproved},
		{UserID: "U4", Status: entity.ContributorStatusProcessed},
	}}
	assert.Equal(t, []string{"U3", "U2"}, task.ApprovedUserIDs())
}

func TestUser_CanReceiveCredit(t *testing.T) {
	assert.True(t, (&entity.User{Status: entity.UserStatusSuspended}).CanReceiveCredit())
	assert.False(t, (&entity.User{Status: entity.UserStatusArchived}).CanReceiveCredit())
}

func TestEntityType_Prefix(t *testing.T) {
	p, ok := entity.EntityTransaction.Prefix()
	require.True(t, ok)
	assert.Equal(t, "TX", p)

	_, ok = entity.EntityType("Invoice").Prefix()
	assert.False(t, ok)
}

func TestHasMoneyScale(t *testing.T) {
	assert.True(t, entity.HasMoneyScale(decimal.RequireFromString("12.34")))
	assert.True(t, entity.HasMoneyScale(decimal.RequireFromString("12.340")))
	assert.True(t, entity.HasMoneyScale(decimal.NewFromInt(7)))
	assert.False(t, entity.HasMoneyScale(decimal.RequireFromString("0.001")))
}

func TestIsAllocatedID(t *testing.T) {
	assert.True(t, entity.EntityUser.IsAllocatedID("U12"))
	assert.False(t, entity.EntityUser.IsAllocatedID("U"))
	assert.False(t, entity.EntityUser.IsAllocatedID("Uriel"))
	assert.False(t, entity.EntityUser.IsAllocatedID("auth0|U1"))
	assert.True(t, entity.EntityTransaction.IsAllocatedID("TX3"))
	assert.False(t, entity.EntityType("Invoice").IsAllocatedID("I1"))
}
