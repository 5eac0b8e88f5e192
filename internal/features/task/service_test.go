package task

import (
	"context"
	"testing"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLeads map[string]bool

func (s stubLeads) LeadExists(ctx context.Context, leadID string) bool {
	return s[leadID]
}

func testTaskService() TaskService {
	auditSvc := audit.NewAuditService(audit.NewMemoryAuditRepository(), nil, zap.NewNop())
	return NewTaskService(NewTaskRepository(), stubLeads{"l1": true, "l2": true}, auditSvc)
}

func actor() *models.User {
	return &models.User{ID: "u1", Name: "Sergio Callier", RoleID: models.RoleAdmin}
}

func TestCreateTask(t *testing.T) {
	svc := testTaskService()
	ctx := context.Background()

	t.Run("requires a title", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, actor(), CreateTaskInput{DueDate: "2026-09-01"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("rejects unknown lead references", func(t *testing.T) {
		_, err := svc.CreateTask(ctx, actor(), CreateTaskInput{Title: "Llamar", LeadID: "l_ghost"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("defaults to medium priority, lead optional", func(t *testing.T) {
		task, err := svc.CreateTask(ctx, actor(), CreateTaskInput{Title: "Llamar a López"})
		require.NoError(t, err)
		assert.Equal(t, models.PriorityMedium, task.Priority)
		assert.False(t, task.Completed)
		assert.Empty(t, task.LeadID)
	})
}

func TestToggleTask(t *testing.T) {
	svc := testTaskService()
	ctx := context.Background()

	t.Run("flips only the completion flag", func(t *testing.T) {
		task, err := svc.ToggleTask(ctx, actor(), "t2")
		require.NoError(t, err)
		assert.True(t, task.Completed)
		assert.Equal(t, "SLA: Wireframe TechStore (12:00)", task.Title)
		assert.Equal(t, models.PriorityHigh, task.Priority)
	})

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		first, err := svc.ToggleTask(ctx, actor(), "t1")
		require.NoError(t, err)
		assert.False(t, first.Completed)

		second, err := svc.ToggleTask(ctx, actor(), "t1")
		require.NoError(t, err)
		assert.True(t, second.Completed)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := svc.ToggleTask(ctx, actor(), "t_ghost")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUpdateTaskLeadValidation(t *testing.T) {
	svc := testTaskService()
	ctx := context.Background()

	ghost := "l_ghost"
	_, err := svc.UpdateTask(ctx, actor(), "t2", TaskPatch{LeadID: &ghost})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	detached := ""
	task, err := svc.UpdateTask(ctx, actor(), "t2", TaskPatch{LeadID: &detached})
	require.NoError(t, err)
	assert.Empty(t, task.LeadID)
}

func TestDeleteTask(t *testing.T) {
	svc := testTaskService()
	ctx := context.Background()

	require.NoError(t, svc.DeleteTask(ctx, actor(), "t1"))

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "t2", tasks[0].ID)
}
