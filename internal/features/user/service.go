package user

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

// RoleChecker validates role references on create/update. Satisfied by the
// role feature's repository via an adapter in main.
type RoleChecker interface {
	RoleExists(ctx context.Context, roleID string) bool
}

// ListFilter combines free-text, role and status filters; all are
// AND-combined and the text match is case-insensitive over name and email.
type ListFilter struct {
	Query  string
	RoleID string
	Status models.UserStatus
}

type CreateUserInput struct {
	Name      string
	Email     string
	RoleID    string
	Status    models.UserStatus
	AvatarURL string
}

type UserPatch struct {
	Name      *string            `json:"name,omitempty"`
	Email     *string            `json:"email,omitempty"`
	RoleID    *string            `json:"roleId,omitempty"`
	Status    *models.UserStatus `json:"status,omitempty"`
	Overrides *[]string          `json:"permissions,omitempty"`
}

type UserService interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]models.User, error)
	CreateUser(ctx context.Context, actor *models.User, input CreateUserInput) (*models.User, error)
	UpdateUser(ctx context.Context, actor *models.User, id string, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, actor *models.User, id string) error
	TouchLastLogin(ctx context.Context, id string) error
}

type UserServiceImpl struct {
	Repo         UserRepository
	Roles        RoleChecker
	Catalog      *permission.Catalog
	AuditService audit.AuditService
}

func NewUserService(repo UserRepository, roles RoleChecker, catalog *permission.Catalog, auditService audit.AuditService) UserService {
	return &UserServiceImpl{
		Repo:         repo,
		Roles:        roles,
		Catalog:      catalog,
		AuditService: auditService,
	}
}

func (s *UserServiceImpl) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *UserServiceImpl) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.Repo.FindByEmail(ctx, email)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, filter ListFilter) ([]models.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if query != "" &&
			!strings.Contains(strings.ToLower(u.Name), query) &&
			!strings.Contains(strings.ToLower(u.Email), query) {
			continue
		}
		if filter.RoleID != "" && u.RoleID != filter.RoleID {
			continue
		}
		if filter.Status != "" && u.Status != filter.Status {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, actor *models.User, input CreateUserInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: user name is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, fmt.Errorf("%w: user email is required", apperr.ErrValidation)
	}

	roleID := input.RoleID
	if roleID == "" {
		roleID = models.RoleSales
	}
	if !s.Roles.RoleExists(ctx, roleID) {
		return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, roleID)
	}

	status := input.Status
	if status == "" {
		status = models.UserActive
	}

	// Emails are stored lowercased so login lookups match regardless of the
	// casing the user was created with.
	user := &models.User{
		ID:        "u_" + uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		RoleID:    roleID,
		Status:    status,
		AvatarURL: input.AvatarURL,
		CreatedAt: time.Now(),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleUsers, "user", user.ID, nil, user)
	return user, nil
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, actor *models.User, id string, patch UserPatch) (*models.User, error) {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *user

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: user name is required", apperr.ErrValidation)
		}
		user.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Email != nil {
		if strings.TrimSpace(*patch.Email) == "" {
			return nil, fmt.Errorf("%w: user email is required", apperr.ErrValidation)
		}
		user.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.RoleID != nil {
		if !s.Roles.RoleExists(ctx, *patch.RoleID) {
			return nil, fmt.Errorf("%w: unknown role %q", apperr.ErrValidation, *patch.RoleID)
		}
		user.RoleID = *patch.RoleID
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if patch.Overrides != nil {
		for _, permID := range *patch.Overrides {
			if !s.Catalog.Exists(permID) {
				return nil, fmt.Errorf("%w: unknown permission %q", apperr.ErrValidation, permID)
			}
		}
		user.Overrides = *patch.Overrides
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleUsers, "user", id, before, user)
	return user, nil
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	if actor != nil && actor.ID == id {
		return fmt.Errorf("%w", apperr.ErrSelfDeletion)
	}

	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleUsers, "user", id, user, nil)
	return nil
}

func (s *UserServiceImpl) TouchLastLogin(ctx context.Context, id string) error {
	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	user.LastLogin = &now
	return s.Repo.Update(ctx, user)
}
