package auth

import (
	"context"
	"fmt"
	"strings"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/user"
	"kliernav-crm/pkg/utils"
)

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email string) (*LoginResult, error)
	Profile(ctx context.Context, actor *models.User) (*models.User, []string)
}

type AuthServiceImpl struct {
	Users        user.UserService
	Eval         *access.Evaluator
	AuditService audit.AuditService
}

func NewAuthService(users user.UserService, eval *access.Evaluator, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		Users:        users,
		Eval:         eval,
		AuditService: auditService,
	}
}

// Login exchanges a known email for a session token. Only active accounts may
// log in; the workspace is invitation-only so there is no registration.
func (s *AuthServiceImpl) Login(ctx context.Context, email string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}

	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.Status != models.UserActive {
		s.AuditService.LogFailed(ctx, u, models.AuditActionLogin, models.ModuleUsers, "user", u.ID)
		return nil, fmt.Errorf("%w: account %q is %s", apperr.ErrPermissionDenied, email, u.Status)
	}

	token, err := utils.GenerateToken(u.ID, u.RoleID)
	if err != nil {
		return nil, err
	}

	if err := s.Users.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, u, models.AuditActionLogin, models.ModuleUsers, "user", u.ID, nil, nil)
	return &LoginResult{Token: token, User: u}, nil
}

// Profile returns the acting user together with their effective permission
// set, role grants plus per-user overrides.
func (s *AuthServiceImpl) Profile(ctx context.Context, actor *models.User) (*models.User, []string) {
	return actor, s.Eval.EffectivePermissions(actor)
}
