package role

import (
	"context"
	"testing"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubMembers map[string]int

func (s stubMembers) CountByRole(ctx context.Context, roleID string) (int, error) {
	return s[roleID], nil
}

func testRoleService(members stubMembers) RoleService {
	auditSvc := audit.NewAuditService(audit.NewMemoryAuditRepository(), nil, zap.NewNop())
	return NewRoleService(NewRoleRepository(), permission.NewCatalog(), members, auditSvc)
}

func admin() *models.User {
	return &models.User{ID: "u1", Name: "Sergio Callier", RoleID: models.RoleAdmin}
}

func salesRep() *models.User {
	return &models.User{ID: "u2", Name: "Ventas 1", RoleID: models.RoleSales}
}

func TestPredefinedRolesSeeded(t *testing.T) {
	svc := testRoleService(stubMembers{})

	roles, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 4)

	assert.Equal(t, models.RoleAdmin, roles[0].ID)
	assert.Equal(t, "Administrador", roles[0].Name)
	assert.True(t, IsPredefined(models.RoleSupport))
	assert.False(t, IsPredefined("role_custom"))
}

func TestCreateRole(t *testing.T) {
	svc := testRoleService(stubMembers{})
	ctx := context.Background()

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.CreateRole(ctx, admin(), "   ", "", nil)
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("rejects permissions outside the catalog", func(t *testing.T) {
		_, err := svc.CreateRole(ctx, admin(), "Auditor", "", []string{"leads_read", "nope_manage"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("creates with validated permissions", func(t *testing.T) {
		role, err := svc.CreateRole(ctx, admin(), "Auditor", "Solo lectura de auditoría", []string{"audit_read"})
		require.NoError(t, err)
		assert.NotEmpty(t, role.ID)
		assert.Equal(t, []string{"audit_read"}, role.Permissions)

		got, err := svc.GetRole(ctx, role.ID)
		require.NoError(t, err)
		assert.Equal(t, "Auditor", got.Name)
	})
}

func TestUpdateRolePredefinedGuard(t *testing.T) {
	svc := testRoleService(stubMembers{})
	ctx := context.Background()
	desc := "ajustado"

	t.Run("non-admin cannot touch predefined roles", func(t *testing.T) {
		_, err := svc.UpdateRole(ctx, salesRep(), models.RoleSales, RolePatch{Description: &desc})
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("admin may edit predefined roles", func(t *testing.T) {
		role, err := svc.UpdateRole(ctx, admin(), models.RoleSales, RolePatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, desc, role.Description)
	})

	t.Run("anyone may edit custom roles", func(t *testing.T) {
		custom, err := svc.CreateRole(ctx, admin(), "Becario", "", []string{"leads_read"})
		require.NoError(t, err)

		updated, err := svc.UpdateRole(ctx, salesRep(), custom.ID, RolePatch{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, desc, updated.Description)
	})
}

func TestDeleteRole(t *testing.T) {
	ctx := context.Background()

	t.Run("predefined roles cannot be deleted", func(t *testing.T) {
		svc := testRoleService(stubMembers{})
		err := svc.DeleteRole(ctx, admin(), models.RoleSupport)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("roles with members are blocked", func(t *testing.T) {
		members := stubMembers{}
		svc := testRoleService(members)
		custom, err := svc.CreateRole(ctx, admin(), "Becario", "", nil)
		require.NoError(t, err)
		members[custom.ID] = 2

		err = svc.DeleteRole(ctx, admin(), custom.ID)
		assert.ErrorIs(t, err, apperr.ErrRoleInUse)
	})

	t.Run("empty custom roles are deleted", func(t *testing.T) {
		svc := testRoleService(stubMembers{})
		custom, err := svc.CreateRole(ctx, admin(), "Becario", "", nil)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteRole(ctx, admin(), custom.ID))

		_, err = svc.GetRole(ctx, custom.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
