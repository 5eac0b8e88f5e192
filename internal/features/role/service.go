package role

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/permission"

	"github.com/google/uuid"
)

// MemberCounter reports how many users currently hold a role. Satisfied by
// the user feature's repository; wired as an adapter in main to keep the two
// features decoupled.
type MemberCounter interface {
	CountByRole(ctx context.Context, roleID string) (int, error)
}

type RolePatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Permissions *[]string `json:"permissions,omitempty"`
}

type RoleService interface {
	GetRole(ctx context.Context, id string) (*models.Role, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	CreateRole(ctx context.Context, actor *models.User, name, description string, permissionIDs []string) (*models.Role, error)
	UpdateRole(ctx context.Context, actor *models.User, id string, patch RolePatch) (*models.Role, error)
	DeleteRole(ctx context.Context, actor *models.User, id string) error
}

type RoleServiceImpl struct {
	Repo         RoleRepository
	Catalog      *permission.Catalog
	Members      MemberCounter
	AuditService audit.AuditService
}

func NewRoleService(repo RoleRepository, catalog *permission.Catalog, members MemberCounter, auditService audit.AuditService) RoleService {
	return &RoleServiceImpl{
		Repo:         repo,
		Catalog:      catalog,
		Members:      members,
		AuditService: auditService,
	}
}

// IsPredefined reports whether the role is one of the four built-ins whose
// definition only admins may touch.
func IsPredefined(id string) bool {
	switch id {
	case models.RoleAdmin, models.RoleManager, models.RoleSales, models.RoleSupport:
		return true
	}
	return false
}

func (s *RoleServiceImpl) GetRole(ctx context.Context, id string) (*models.Role, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.Repo.List(ctx)
}

func (s *RoleServiceImpl) CreateRole(ctx context.Context, actor *models.User, name, description string, permissionIDs []string) (*models.Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: role name is required", apperr.ErrValidation)
	}
	if permissionIDs == nil {
		permissionIDs = []string{}
	}
	if err := s.validatePermissions(permissionIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	role := &models.Role{
		ID:          "role_" + uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Description: description,
		Permissions: permissionIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, role); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleUsers, "role", role.ID, nil, role)
	return role, nil
}

func (s *RoleServiceImpl) UpdateRole(ctx context.Context, actor *models.User, id string, patch RolePatch) (*models.Role, error) {
	role, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if IsPredefined(id) && (actor == nil || actor.RoleID != models.RoleAdmin) {
		s.AuditService.LogFailed(ctx, actor, models.AuditActionUpdate, models.ModuleUsers, "role", id)
		return nil, fmt.Errorf("%w: predefined roles can only be edited by an admin", apperr.ErrPermissionDenied)
	}

	before := *role

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: role name is required", apperr.ErrValidation)
		}
		role.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
	if patch.Permissions != nil {
		if err := s.validatePermissions(*patch.Permissions); err != nil {
			return nil, err
		}
		role.Permissions = *patch.Permissions
	}
	role.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, role); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleUsers, "role", id, before, role)
	return role, nil
}

func (s *RoleServiceImpl) DeleteRole(ctx context.Context, actor *models.User, id string) error {
	role, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if IsPredefined(id) {
		return fmt.Errorf("%w: predefined roles cannot be deleted", apperr.ErrPermissionDenied)
	}

	members, err := s.Members.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if members > 0 {
		return fmt.Errorf("%w: %d users still hold role %q", apperr.ErrRoleInUse, members, id)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleUsers, "role", id, role, nil)
	return nil
}

func (s *RoleServiceImpl) validatePermissions(ids []string) error {
	for _, id := range ids {
		if !s.Catalog.Exists(id) {
			return fmt.Errorf("%w: unknown permission %q", apperr.ErrValidation, id)
		}
	}
	return nil
}
