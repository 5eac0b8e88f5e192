package permission

import (
	"testing"

	"kliernav-crm/internal/common/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsFixedAndOrdered(t *testing.T) {
	catalog := NewCatalog()

	perms := catalog.List()
	require.Len(t, perms, 12)
	assert.Equal(t, "leads_read", perms[0].ID)
	assert.Equal(t, "services_manage", perms[len(perms)-1].ID)
	assert.Equal(t, catalog.IDs(), idsOf(perms))
}

func idsOf(perms []models.Permission) []string {
	ids := make([]string, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	return ids
}

func TestCatalogLookups(t *testing.T) {
	catalog := NewCatalog()

	p, ok := catalog.Get("tasks_manage")
	require.True(t, ok)
	assert.Equal(t, models.ModuleTasks, p.Module)
	assert.Equal(t, models.ActionManage, p.Action)

	assert.True(t, catalog.Exists("audit_read"))
	assert.False(t, catalog.Exists("calendar_read"), "the calendar module defines no permissions")

	leads := catalog.ByModule(models.ModuleLeads)
	assert.Len(t, leads, 5)
}
