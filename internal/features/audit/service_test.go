package audit

import (
	"context"
	"testing"

	"kliernav-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuditService() AuditService {
	return NewAuditService(NewMemoryAuditRepository(), nil, zap.NewNop())
}

func TestLogAndList(t *testing.T) {
	svc := testAuditService()
	ctx := context.Background()
	admin := &models.User{ID: "u1", Name: "Sergio Callier", RoleID: models.RoleAdmin}

	svc.Log(ctx, admin, models.AuditActionCreate, models.ModuleLeads, "lead", "l9", nil, map[string]string{"title": "Landing"})
	svc.Log(ctx, admin, models.AuditActionDelete, models.ModuleUsers, "user", "u9", map[string]string{"name": "X"}, nil)

	logs, err := svc.ListLogs(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	t.Run("newest first", func(t *testing.T) {
		assert.Equal(t, models.AuditActionDelete, logs[0].Action)
		assert.Equal(t, models.AuditActionCreate, logs[1].Action)
	})

	t.Run("entries carry actor and outcome", func(t *testing.T) {
		assert.Equal(t, "u1", logs[0].UserID)
		assert.Equal(t, "Sergio Callier", logs[0].UserName)
		assert.Equal(t, models.AuditSuccess, logs[0].Status)
		assert.NotEmpty(t, logs[0].ID)
		assert.False(t, logs[0].Timestamp.IsZero())
	})
}

func TestLogWithoutActor(t *testing.T) {
	svc := testAuditService()
	ctx := context.Background()

	svc.Log(ctx, nil, models.AuditActionUpdate, models.ModuleLeads, "lead", "l1", nil, nil)

	logs, err := svc.ListLogs(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "system", logs[0].UserName)
}

func TestLogFailedOutcome(t *testing.T) {
	svc := testAuditService()
	ctx := context.Background()
	rep := &models.User{ID: "u2", Name: "Ventas 1", RoleID: models.RoleSales}

	svc.LogFailed(ctx, rep, models.AuditActionDelete, models.ModuleLeads, "lead", "l1")

	logs, err := svc.ListLogs(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.AuditFailed, logs[0].Status)
}

func TestListFilters(t *testing.T) {
	svc := testAuditService()
	ctx := context.Background()
	admin := &models.User{ID: "u1", Name: "Sergio Callier"}
	rep := &models.User{ID: "u2", Name: "Ventas 1"}

	svc.Log(ctx, admin, models.AuditActionCreate, models.ModuleLeads, "lead", "l9", nil, nil)
	svc.Log(ctx, rep, models.AuditActionUpdate, models.ModuleLeads, "lead", "l9", nil, nil)
	svc.Log(ctx, admin, models.AuditActionUpdate, models.ModuleUsers, "user", "u9", nil, nil)

	t.Run("by module", func(t *testing.T) {
		logs, err := svc.ListLogs(ctx, ListFilter{Module: models.ModuleLeads})
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})

	t.Run("by actor", func(t *testing.T) {
		logs, err := svc.ListLogs(ctx, ListFilter{UserID: "u2"})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, models.AuditActionUpdate, logs[0].Action)
	})

	t.Run("limit keeps the newest entries", func(t *testing.T) {
		logs, err := svc.ListLogs(ctx, ListFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, models.ModuleUsers, logs[0].Module)
	})
}
