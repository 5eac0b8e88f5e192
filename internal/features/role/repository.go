package role

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Role, error)
	List(ctx context.Context) ([]models.Role, error)
	Create(ctx context.Context, role *models.Role) error
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, id string) error
}

// MemoryRoleRepository holds all roles in memory, seeded with the four
// predefined roles. List preserves insertion order.
type MemoryRoleRepository struct {
	mu    sync.RWMutex
	roles map[string]models.Role
	order []string
}

func NewRoleRepository() RoleRepository {
	r := &MemoryRoleRepository{roles: make(map[string]models.Role)}
	for _, role := range seedRoles() {
		r.roles[role.ID] = role
		r.order = append(r.order, role.ID)
	}
	return r
}

func (r *MemoryRoleRepository) FindByID(ctx context.Context, id string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[id]
	if !ok {
		return nil, fmt.Errorf("%w: role %q", apperr.ErrNotFound, id)
	}
	return &role, nil
}

func (r *MemoryRoleRepository) List(ctx context.Context) ([]models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Role, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.roles[id])
	}
	return out, nil
}

func (r *MemoryRoleRepository) Create(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[role.ID]; exists {
		return fmt.Errorf("%w: role %q already exists", apperr.ErrValidation, role.ID)
	}
	r.roles[role.ID] = *role
	r.order = append(r.order, role.ID)
	return nil
}

func (r *MemoryRoleRepository) Update(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[role.ID]; !ok {
		return fmt.Errorf("%w: role %q", apperr.ErrNotFound, role.ID)
	}
	r.roles[role.ID] = *role
	return nil
}

func (r *MemoryRoleRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.roles[id]; !ok {
		return fmt.Errorf("%w: role %q", apperr.ErrNotFound, id)
	}
	delete(r.roles, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func seedRoles() []models.Role {
	seededAt := time.Now()
	return []models.Role{
		{
			ID:          models.RoleAdmin,
			Name:        "Administrador",
			Description: "Acceso total al sistema y configuraciones",
			Permissions: []string{
				"leads_read", "leads_create", "leads_update", "leads_delete", "leads_export",
				"tasks_manage", "users_read", "users_manage", "audit_read",
				"strategy_read", "strategy_manage", "services_manage",
			},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:          models.RoleManager,
			Name:        "Manager Operativo",
			Description: "Gestiona leads, tareas y estrategia, pero no configuración de usuarios",
			Permissions: []string{
				"leads_read", "leads_create", "leads_update", "leads_delete", "leads_export",
				"tasks_manage", "strategy_read", "strategy_manage", "audit_read", "services_manage",
			},
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:          models.RoleSales,
			Name:        "Ejecutivo de Ventas",
			Description: "Gestiona sus propios leads y tareas asignadas",
			Permissions: []string{"leads_read", "leads_create", "leads_update", "tasks_manage"},
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
		{
			ID:          models.RoleSupport,
			Name:        "Soporte Técnico",
			Description: "Lectura de leads y gestión de tareas técnicas",
			Permissions: []string{"leads_read", "tasks_manage"},
			CreatedAt:   seededAt,
			UpdatedAt:   seededAt,
		},
	}
}
