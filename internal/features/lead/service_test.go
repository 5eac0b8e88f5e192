package lead

import (
	"context"
	"testing"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRoles map[string]*models.Role

func (s stubRoles) Role(id string) (*models.Role, bool) {
	r, ok := s[id]
	return r, ok
}

func predefinedRoles() stubRoles {
	return stubRoles{
		models.RoleAdmin: {
			ID: models.RoleAdmin, Permissions: []string{"leads_read", "users_manage"},
		},
		models.RoleManager: {
			ID: models.RoleManager, Permissions: []string{"leads_read", "leads_create", "leads_update", "leads_delete", "tasks_manage"},
		},
		models.RoleSales: {
			ID: models.RoleSales, Permissions: []string{"leads_read", "leads_create", "leads_update", "tasks_manage"},
		},
		models.RoleSupport: {
			ID: models.RoleSupport, Permissions: []string{"leads_read", "tasks_manage"},
		},
	}
}

func testLeadService() LeadService {
	eval := access.NewEvaluator(permission.NewCatalog(), predefinedRoles())
	auditSvc := audit.NewAuditService(audit.NewMemoryAuditRepository(), nil, zap.NewNop())
	return NewLeadService(NewLeadRepository(), NewStageRegistry(), eval, auditSvc)
}

func actor(id, roleID string) *models.User {
	return &models.User{ID: id, Name: id, RoleID: roleID}
}

func TestListLeadsVisibility(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()

	t.Run("admin sees the whole pipeline", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, actor("u1", models.RoleAdmin), ListFilter{})
		require.NoError(t, err)
		assert.Len(t, leads, 5)
	})

	t.Run("manager sees the whole pipeline", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, actor("u3", models.RoleManager), ListFilter{})
		require.NoError(t, err)
		assert.Len(t, leads, 5)
	})

	t.Run("sales rep only sees owned leads", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, actor("u2", models.RoleSales), ListFilter{})
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "l2", leads[0].ID)
	})
}

func TestListLeadsFilters(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()
	boss := actor("u1", models.RoleAdmin)

	t.Run("service type", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, boss, ListFilter{ServiceType: models.ServiceEcommerce})
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "TechStore Argentina", leads[0].Company)
	})

	t.Run("same-day only", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, boss, ListFilter{SameDayOnly: true})
		require.NoError(t, err)
		assert.Len(t, leads, 2)
	})

	t.Run("value range", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, boss, ListFilter{MinValue: 400000, MaxValue: 1000000})
		require.NoError(t, err)
		assert.Len(t, leads, 2)
	})

	t.Run("query matches title, company and tags", func(t *testing.T) {
		leads, err := svc.ListLeads(ctx, boss, ListFilter{Query: "high ticket"})
		require.NoError(t, err)
		require.Len(t, leads, 1)
		assert.Equal(t, "l1", leads[0].ID)
	})
}

func TestGetLeadVisibility(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()

	_, err := svc.GetLead(ctx, actor("u2", models.RoleSales), "l1")
	assert.ErrorIs(t, err, apperr.ErrPermissionDenied)

	lead, err := svc.GetLead(ctx, actor("u2", models.RoleSales), "l2")
	require.NoError(t, err)
	assert.Equal(t, "u2", lead.OwnerID)
}

func TestCreateLead(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()

	t.Run("requires title and company", func(t *testing.T) {
		_, err := svc.CreateLead(ctx, actor("u1", models.RoleAdmin), CreateLeadInput{Company: "ACME"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("rejects unknown stage", func(t *testing.T) {
		_, err := svc.CreateLead(ctx, actor("u1", models.RoleAdmin), CreateLeadInput{
			Title: "X", Company: "ACME", Status: "LIMBO",
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("defaults to the first stage and stamps last contact", func(t *testing.T) {
		lead, err := svc.CreateLead(ctx, actor("u1", models.RoleAdmin), CreateLeadInput{
			Title: "CRM Setup", Company: "ACME",
		})
		require.NoError(t, err)
		assert.Equal(t, "NEW", lead.Status)
		assert.NotEmpty(t, lead.LastContact)
	})

	t.Run("sales reps always own what they create", func(t *testing.T) {
		lead, err := svc.CreateLead(ctx, actor("u2", models.RoleSales), CreateLeadInput{
			Title: "Landing", Company: "ACME", OwnerID: "u1",
		})
		require.NoError(t, err)
		assert.Equal(t, "u2", lead.OwnerID)
	})

	t.Run("managers may assign other owners", func(t *testing.T) {
		lead, err := svc.CreateLead(ctx, actor("u3", models.RoleManager), CreateLeadInput{
			Title: "Landing", Company: "ACME", OwnerID: "u2",
		})
		require.NoError(t, err)
		assert.Equal(t, "u2", lead.OwnerID)
	})
}

func TestUpdateLeadPermissions(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()
	title := "renegociado"

	t.Run("owner with leads_update may edit", func(t *testing.T) {
		lead, err := svc.UpdateLead(ctx, actor("u2", models.RoleSales), "l2", LeadPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, lead.Title)
	})

	t.Run("non-owner sales rep is denied", func(t *testing.T) {
		_, err := svc.UpdateLead(ctx, actor("u2", models.RoleSales), "l1", LeadPatch{Title: &title})
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("manager may edit any lead", func(t *testing.T) {
		lead, err := svc.UpdateLead(ctx, actor("u3", models.RoleManager), "l1", LeadPatch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, lead.Title)
	})
}

func TestMoveLead(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()

	_, err := svc.MoveLead(ctx, actor("u1", models.RoleAdmin), "l1", "LIMBO")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	lead, err := svc.MoveLead(ctx, actor("u1", models.RoleAdmin), "l1", "WON")
	require.NoError(t, err)
	assert.Equal(t, "WON", lead.Status)
}

func TestDeleteLeadAdminOnly(t *testing.T) {
	svc := testLeadService()
	ctx := context.Background()

	t.Run("manager cannot delete", func(t *testing.T) {
		err := svc.DeleteLead(ctx, actor("u3", models.RoleManager), "l4")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("owner cannot delete", func(t *testing.T) {
		err := svc.DeleteLead(ctx, actor("u2", models.RoleSales), "l2")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("admin deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteLead(ctx, actor("u1", models.RoleAdmin), "l5"))

		_, err := svc.GetLead(ctx, actor("u1", models.RoleAdmin), "l5")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestStageOperations(t *testing.T) {
	ctx := context.Background()
	boss := actor("u1", models.RoleAdmin)

	t.Run("stage ids derive from names", func(t *testing.T) {
		svc := testLeadService()
		stage, err := svc.AddStage(ctx, boss, "Nuevo Paso")
		require.NoError(t, err)
		assert.Equal(t, "NUEVO_PASO", stage.ID)
		assert.Equal(t, "Nuevo Paso", stage.Title)
	})

	t.Run("duplicate stage ids are rejected", func(t *testing.T) {
		svc := testLeadService()
		_, err := svc.AddStage(ctx, boss, "nuevo contacto")
		require.NoError(t, err)

		_, err = svc.AddStage(ctx, boss, "NUEVO   CONTACTO")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("occupied stages cannot be removed", func(t *testing.T) {
		svc := testLeadService()
		err := svc.RemoveStage(ctx, boss, "NEGOTIATION")
		assert.ErrorIs(t, err, apperr.ErrStageNotEmpty)

		stages := svc.ListStages(ctx)
		assert.Len(t, stages, 5)
	})

	t.Run("empty stages are removed", func(t *testing.T) {
		svc := testLeadService()
		stage, err := svc.AddStage(ctx, boss, "Archivo")
		require.NoError(t, err)

		require.NoError(t, svc.RemoveStage(ctx, boss, stage.ID))
		assert.Len(t, svc.ListStages(ctx), 5)
	})

	t.Run("renaming keeps the id", func(t *testing.T) {
		svc := testLeadService()
		stage, err := svc.RenameStage(ctx, boss, "NEW", "Entrantes")
		require.NoError(t, err)
		assert.Equal(t, "NEW", stage.ID)
		assert.Equal(t, "Entrantes", stage.Title)
	})
}
