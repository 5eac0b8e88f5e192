package access

import (
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/permission"
)

// RoleSource resolves role IDs to role records. Satisfied by the role
// feature's repository via an adapter in main.
type RoleSource interface {
	Role(id string) (*models.Role, bool)
}

// Evaluator answers every authorization question in the system. All methods
// are side-effect free and never fail: missing users, roles or permissions
// evaluate to "not allowed", never to an error.
type Evaluator struct {
	catalog *permission.Catalog
	roles   RoleSource
}

func NewEvaluator(catalog *permission.Catalog, roles RoleSource) *Evaluator {
	return &Evaluator{catalog: catalog, roles: roles}
}

// IsSuperuser is the single admin bypass every other check consults first.
func (e *Evaluator) IsSuperuser(user *models.User) bool {
	return user != nil && user.RoleID == models.RoleAdmin
}

func (e *Evaluator) isManager(user *models.User) bool {
	return user != nil && user.RoleID == models.RoleManager
}

func (e *Evaluator) rolePermissions(user *models.User) []string {
	if user == nil {
		return nil
	}
	role, ok := e.roles.Role(user.RoleID)
	if !ok {
		return nil
	}
	return role.Permissions
}

// EffectivePermissions returns the user's full permission set: the whole
// catalog for admins, otherwise the role's permissions unioned with the
// user's individual overrides. Catalog order is preserved.
func (e *Evaluator) EffectivePermissions(user *models.User) []string {
	if user == nil {
		return []string{}
	}
	if e.IsSuperuser(user) {
		return e.catalog.IDs()
	}

	granted := make(map[string]bool)
	for _, id := range e.rolePermissions(user) {
		granted[id] = true
	}
	for _, id := range user.Overrides {
		granted[id] = true
	}

	out := make([]string, 0, len(granted))
	for _, id := range e.catalog.IDs() {
		if granted[id] {
			out = append(out, id)
		}
	}
	return out
}

func (e *Evaluator) HasPermission(user *models.User, permissionID string) bool {
	if user == nil {
		return false
	}
	if e.IsSuperuser(user) {
		return true
	}
	for _, id := range e.rolePermissions(user) {
		if id == permissionID {
			return true
		}
	}
	for _, id := range user.Overrides {
		if id == permissionID {
			return true
		}
	}
	return false
}

// Can reports whether the user may perform the action on the module. A
// "{module}_manage" grant subsumes every action on that module.
func (e *Evaluator) Can(user *models.User, action models.Action, module models.Module) bool {
	return e.HasPermission(user, string(module)+"_"+string(action)) ||
		e.HasPermission(user, string(module)+"_manage")
}

// CanAccessModule reports whether the module is visible to the user at all:
// true when the user's role holds any permission defined on that module.
// Individual overrides do not open modules on their own.
func (e *Evaluator) CanAccessModule(user *models.User, module models.Module) bool {
	if user == nil {
		return false
	}
	if e.IsSuperuser(user) {
		return true
	}
	for _, id := range e.rolePermissions(user) {
		if p, ok := e.catalog.Get(id); ok && p.Module == module {
			return true
		}
	}
	return false
}

// VisibleLeads filters leads down to what the user may see: admins and
// managers see everything, everyone else only their own.
func (e *Evaluator) VisibleLeads(user *models.User, leads []models.Lead) []models.Lead {
	if e.IsSuperuser(user) || e.isManager(user) {
		return leads
	}
	if user == nil {
		return []models.Lead{}
	}
	out := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.OwnerID == user.ID {
			out = append(out, lead)
		}
	}
	return out
}

func (e *Evaluator) CanEditLead(user *models.User, lead *models.Lead) bool {
	if e.IsSuperuser(user) || e.isManager(user) {
		return true
	}
	if user == nil || lead == nil {
		return false
	}
	return user.ID == lead.OwnerID && e.Can(user, models.ActionUpdate, models.ModuleLeads)
}

// CanDeleteLead is deliberately restrictive: only admins delete leads, owners
// included.
func (e *Evaluator) CanDeleteLead(user *models.User, lead *models.Lead) bool {
	return e.IsSuperuser(user)
}
