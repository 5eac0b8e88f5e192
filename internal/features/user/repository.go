package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, roleID string) (int, error)
}

type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
	order []string
}

func NewUserRepository() UserRepository {
	r := &MemoryUserRepository{users: make(map[string]models.User)}
	for _, u := range seedUsers() {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %q", apperr.ErrNotFound, id)
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if u := r.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user with email %q", apperr.ErrNotFound, email)
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("%w: user %q already exists", apperr.ErrValidation, user.ID)
	}
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("%w: user %q", apperr.ErrNotFound, user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("%w: user %q", apperr.ErrNotFound, id)
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryUserRepository) CountByRole(ctx context.Context, roleID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if u.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func seedUsers() []models.User {
	now := time.Now()
	lastLogin := now.Add(-30 * time.Minute)
	return []models.User{
		{
			ID: "u1", Name: "Sergio Callier", Email: "sergio@kliernav.com",
			RoleID: models.RoleAdmin, Status: models.UserActive,
			AvatarURL: "https://i.pravatar.cc/150?u=sergio",
			LastLogin: &lastLogin, CreatedAt: now.AddDate(-1, 0, 0),
		},
		{
			ID: "u2", Name: "Ventas 1", Email: "ventas1@kliernav.com",
			RoleID: models.RoleSales, Status: models.UserActive,
			AvatarURL: "https://i.pravatar.cc/150?u=v1",
			LastLogin: &lastLogin, CreatedAt: now.AddDate(0, -4, 0),
		},
		{
			ID: "u3", Name: "UX/UI 1", Email: "uxui1@kliernav.com",
			RoleID: models.RoleManager, Status: models.UserActive,
			AvatarURL: "https://i.pravatar.cc/150?u=ux1",
			LastLogin: &lastLogin, CreatedAt: now.AddDate(0, -6, -20),
		},
		{
			ID: "u4", Name: "Support 1", Email: "support1@kliernav.com",
			RoleID: models.RoleSupport, Status: models.UserActive,
			AvatarURL: "https://i.pravatar.cc/150?u=s1",
			LastLogin: &lastLogin, CreatedAt: now.AddDate(0, -2, 0),
		},
		{
			ID: "u5", Name: "DEV 1", Email: "dev1@kliernav.com",
			RoleID: models.RoleSupport, Status: models.UserActive,
			AvatarURL: "https://i.pravatar.cc/150?u=d1",
			LastLogin: &lastLogin, CreatedAt: now.AddDate(0, -3, 0),
		},
	}
}
