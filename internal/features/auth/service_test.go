package auth

import (
	"context"
	"testing"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/audit"
	"kliernav-crm/internal/features/permission"
	"kliernav-crm/internal/features/user"
	"kliernav-crm/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRoles map[string]*models.Role

func (s stubRoles) Role(id string) (*models.Role, bool) {
	r, ok := s[id]
	return r, ok
}

type allRoles struct{}

func (allRoles) RoleExists(ctx context.Context, roleID string) bool { return true }

func testAuthService() (AuthService, user.UserService) {
	utils.SetSecret("test-secret")
	auditSvc := audit.NewAuditService(audit.NewMemoryAuditRepository(), nil, zap.NewNop())
	users := user.NewUserService(user.NewUserRepository(), allRoles{}, permission.NewCatalog(), auditSvc)
	eval := access.NewEvaluator(permission.NewCatalog(), stubRoles{
		models.RoleSupport: {ID: models.RoleSupport, Permissions: []string{"leads_read", "tasks_manage"}},
	})
	return NewAuthService(users, eval, auditSvc), users
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("known active email gets a token and a fresh last login", func(t *testing.T) {
		svc, users := testAuthService()

		result, err := svc.Login(ctx, "Sergio@KlierNav.com ")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "u1", result.User.ID)

		claims, err := utils.ValidateToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, models.RoleAdmin, claims.RoleID)

		refreshed, err := users.FindByID(ctx, "u1")
		require.NoError(t, err)
		require.NotNil(t, refreshed.LastLogin)
	})

	t.Run("users created with mixed-case emails can log in", func(t *testing.T) {
		svc, users := testAuthService()

		created, err := users.CreateUser(ctx, nil, user.CreateUserInput{Name: "Maria", Email: "Maria@KlierNav.com"})
		require.NoError(t, err)

		result, err := svc.Login(ctx, "Maria@KlierNav.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, result.User.ID)
	})

	t.Run("empty email is rejected", func(t *testing.T) {
		svc, _ := testAuthService()
		_, err := svc.Login(ctx, "   ")
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		svc, _ := testAuthService()
		_, err := svc.Login(ctx, "ghost@kliernav.com")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("suspended accounts cannot log in", func(t *testing.T) {
		svc, users := testAuthService()
		suspended := models.UserSuspended
		_, err := users.UpdateUser(ctx, nil, "u4", user.UserPatch{Status: &suspended})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "support1@kliernav.com")
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})
}

func TestProfile(t *testing.T) {
	svc, _ := testAuthService()

	actor := &models.User{ID: "u4", RoleID: models.RoleSupport, Overrides: []string{"leads_export"}}
	u, perms := svc.Profile(context.Background(), actor)

	assert.Equal(t, "u4", u.ID)
	assert.ElementsMatch(t, []string{"leads_read", "tasks_manage", "leads_export"}, perms)
}
