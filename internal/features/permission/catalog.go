package permission

import (
	"kliernav-crm/internal/common/models"
)

// Catalog is the fixed, order-preserving permission catalog. It is built once
// at startup and never mutated; roles reference its IDs.
type Catalog struct {
	ordered []models.Permission
	byID    map[string]models.Permission
}

func NewCatalog() *Catalog {
	c := &Catalog{byID: make(map[string]models.Permission)}
	for _, p := range defaultPermissions {
		c.ordered = append(c.ordered, p)
		c.byID[p.ID] = p
	}
	return c
}

// List returns the catalog in definition order. The returned slice is a copy.
func (c *Catalog) List() []models.Permission {
	out := make([]models.Permission, len(c.ordered))
	copy(out, c.ordered)
	return out
}

func (c *Catalog) Get(id string) (models.Permission, bool) {
	p, ok := c.byID[id]
	return p, ok
}

func (c *Catalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns every permission ID in definition order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.ordered))
	for _, p := range c.ordered {
		ids = append(ids, p.ID)
	}
	return ids
}

// ByModule returns the permissions belonging to one module, in catalog order.
func (c *Catalog) ByModule(module models.Module) []models.Permission {
	var out []models.Permission
	for _, p := range c.ordered {
		if p.Module == module {
			out = append(out, p)
		}
	}
	return out
}

var defaultPermissions = []models.Permission{
	{ID: "leads_read", Name: "Ver Leads", Description: "Permite visualizar leads en el sistema", Module: models.ModuleLeads, Action: models.ActionRead},
	{ID: "leads_create", Name: "Crear Leads", Description: "Permite dar de alta nuevos leads", Module: models.ModuleLeads, Action: models.ActionCreate},
	{ID: "leads_update", Name: "Editar Leads", Description: "Permite modificar datos de leads", Module: models.ModuleLeads, Action: models.ActionUpdate},
	{ID: "leads_delete", Name: "Eliminar Leads", Description: "Permite borrar leads del sistema", Module: models.ModuleLeads, Action: models.ActionDelete},
	{ID: "leads_export", Name: "Exportar Leads", Description: "Permite descargar base de leads", Module: models.ModuleLeads, Action: models.ActionExport},

	{ID: "tasks_manage", Name: "Gestionar Tareas", Description: "Permite crear, editar y completar tareas", Module: models.ModuleTasks, Action: models.ActionManage},

	{ID: "users_read", Name: "Ver Usuarios", Description: "Permite ver lista de usuarios", Module: models.ModuleUsers, Action: models.ActionRead},
	{ID: "users_manage", Name: "Gestionar Usuarios", Description: "Permite crear y editar usuarios y sus roles", Module: models.ModuleUsers, Action: models.ActionManage},

	{ID: "audit_read", Name: "Ver Audit Log", Description: "Permite ver historial de cambios", Module: models.ModuleAudit, Action: models.ActionRead},
	{ID: "strategy_read", Name: "Ver Estrategia", Description: "Permite ver el plan estratégico", Module: models.ModuleStrategy, Action: models.ActionRead},
	{ID: "strategy_manage", Name: "Gestionar Estrategia", Description: "Permite modificar el plan estratégico", Module: models.ModuleStrategy, Action: models.ActionManage},
	{ID: "services_manage", Name: "Gestionar Servicios", Description: "Permite editar el catálogo de servicios y precios", Module: models.ModuleServices, Action: models.ActionManage},
}
