package access

import (
	"testing"

	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoles map[string]*models.Role

func (s stubRoles) Role(id string) (*models.Role, bool) {
	r, ok := s[id]
	return r, ok
}

func testEvaluator() *Evaluator {
	roles := stubRoles{
		models.RoleAdmin: {
			ID:          models.RoleAdmin,
			Name:        "Administrador",
			Permissions: []string{"leads_read", "users_manage"},
		},
		models.RoleManager: {
			ID:          models.RoleManager,
			Name:        "Manager Operativo",
			Permissions: []string{"leads_read", "leads_create", "leads_update", "leads_delete", "tasks_manage"},
		},
		models.RoleSales: {
			ID:          models.RoleSales,
			Name:        "Ejecutivo de Ventas",
			Permissions: []string{"leads_read", "leads_create", "leads_update", "tasks_manage"},
		},
		models.RoleSupport: {
			ID:          models.RoleSupport,
			Name:        "Soporte Técnico",
			Permissions: []string{"leads_read", "tasks_manage"},
		},
	}
	return NewEvaluator(permission.NewCatalog(), roles)
}

func user(id, roleID string, overrides ...string) *models.User {
	return &models.User{ID: id, Name: id, RoleID: roleID, Overrides: overrides}
}

func TestEffectivePermissions(t *testing.T) {
	eval := testEvaluator()

	t.Run("admin gets the whole catalog regardless of role contents", func(t *testing.T) {
		perms := eval.EffectivePermissions(user("u1", models.RoleAdmin))
		assert.Equal(t, permission.NewCatalog().IDs(), perms)
	})

	t.Run("others get role permissions plus overrides", func(t *testing.T) {
		perms := eval.EffectivePermissions(user("u4", models.RoleSupport, "leads_export"))
		assert.ElementsMatch(t, []string{"leads_read", "tasks_manage", "leads_export"}, perms)
	})

	t.Run("nil user has no permissions", func(t *testing.T) {
		assert.Empty(t, eval.EffectivePermissions(nil))
	})

	t.Run("unknown role yields only overrides", func(t *testing.T) {
		perms := eval.EffectivePermissions(user("ux", "role_ghost", "leads_read"))
		assert.Equal(t, []string{"leads_read"}, perms)
	})
}

func TestHasPermission(t *testing.T) {
	eval := testEvaluator()

	assert.True(t, eval.HasPermission(user("u1", models.RoleAdmin), "services_manage"),
		"admin satisfies every check")
	assert.True(t, eval.HasPermission(user("u2", models.RoleSales), "leads_update"))
	assert.False(t, eval.HasPermission(user("u2", models.RoleSales), "leads_delete"))
	assert.True(t, eval.HasPermission(user("u4", models.RoleSupport, "leads_export"), "leads_export"),
		"override grants on top of role")
	assert.False(t, eval.HasPermission(nil, "leads_read"))
}

func TestCan(t *testing.T) {
	eval := testEvaluator()

	tests := []struct {
		name   string
		user   *models.User
		action models.Action
		module models.Module
		want   bool
	}{
		{"sales can update leads", user("u2", models.RoleSales), models.ActionUpdate, models.ModuleLeads, true},
		{"sales cannot delete leads", user("u2", models.RoleSales), models.ActionDelete, models.ModuleLeads, false},
		{"manage subsumes create on tasks", user("u2", models.RoleSales), models.ActionCreate, models.ModuleTasks, true},
		{"manage subsumes delete on tasks", user("u4", models.RoleSupport), models.ActionDelete, models.ModuleTasks, true},
		{"support cannot export leads", user("u4", models.RoleSupport), models.ActionExport, models.ModuleLeads, false},
		{"admin can do anything", user("u1", models.RoleAdmin), models.ActionDelete, models.ModuleServices, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval.Can(tt.user, tt.action, tt.module))
		})
	}
}

func TestCanAccessModule(t *testing.T) {
	eval := testEvaluator()

	assert.True(t, eval.CanAccessModule(user("u1", models.RoleAdmin), models.ModuleAudit))
	assert.True(t, eval.CanAccessModule(user("u2", models.RoleSales), models.ModuleLeads))
	assert.True(t, eval.CanAccessModule(user("u2", models.RoleSales), models.ModuleTasks))
	assert.False(t, eval.CanAccessModule(user("u2", models.RoleSales), models.ModuleAudit))
	assert.False(t, eval.CanAccessModule(user("u2", models.RoleSales), models.ModuleUsers))

	// Module visibility comes from the role, not individual overrides.
	assert.False(t, eval.CanAccessModule(user("u4", models.RoleSupport, "audit_read"), models.ModuleAudit))
}

func TestVisibleLeads(t *testing.T) {
	eval := testEvaluator()
	leads := []models.Lead{
		{ID: "l1", OwnerID: "u1"},
		{ID: "l2", OwnerID: "u2"},
		{ID: "l3", OwnerID: "u3"},
		{ID: "l4", OwnerID: "u2"},
	}

	t.Run("admin sees every lead", func(t *testing.T) {
		assert.Len(t, eval.VisibleLeads(user("u1", models.RoleAdmin), leads), 4)
	})

	t.Run("manager sees every lead", func(t *testing.T) {
		assert.Len(t, eval.VisibleLeads(user("u3", models.RoleManager), leads), 4)
	})

	t.Run("sales sees exactly the owned subset", func(t *testing.T) {
		visible := eval.VisibleLeads(user("u2", models.RoleSales), leads)
		require.Len(t, visible, 2)
		for _, lead := range visible {
			assert.Equal(t, "u2", lead.OwnerID)
		}
	})

	t.Run("support with no owned leads sees nothing", func(t *testing.T) {
		assert.Empty(t, eval.VisibleLeads(user("u9", models.RoleSupport), leads))
	})
}

func TestCanEditLead(t *testing.T) {
	eval := testEvaluator()
	owned := &models.Lead{ID: "l1", OwnerID: "u2"}
	foreign := &models.Lead{ID: "l2", OwnerID: "u3"}

	assert.True(t, eval.CanEditLead(user("u1", models.RoleAdmin), foreign))
	assert.True(t, eval.CanEditLead(user("u3", models.RoleManager), owned))
	assert.True(t, eval.CanEditLead(user("u2", models.RoleSales), owned))
	assert.False(t, eval.CanEditLead(user("u2", models.RoleSales), foreign))

	// Support owns the lead but lacks leads_update.
	assert.False(t, eval.CanEditLead(user("u4", models.RoleSupport), &models.Lead{ID: "l3", OwnerID: "u4"}))
}

func TestCanDeleteLeadIsAdminOnly(t *testing.T) {
	eval := testEvaluator()
	lead := &models.Lead{ID: "l1", OwnerID: "u2"}

	for _, tt := range []struct {
		roleID string
		want   bool
	}{
		{models.RoleAdmin, true},
		{models.RoleManager, false},
		{models.RoleSales, false},
		{models.RoleSupport, false},
	} {
		u := user("u2", tt.roleID) // u2 owns the lead in every case
		assert.Equal(t, tt.want, eval.CanDeleteLead(u, lead), "role %s", tt.roleID)
	}
}
