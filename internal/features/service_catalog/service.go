package service_catalog

import (
	"context"
	"fmt"
	"strings"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/audit"

	"github.com/google/uuid"
)

type CreateServiceInput struct {
	Type        models.ServiceType
	Name        string
	Description string
	BasePrice   float64
	SLAHours    int
	Features    []string
}

type ServicePatch struct {
	Type        *models.ServiceType `json:"type,omitempty"`
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	BasePrice   *float64            `json:"basePrice,omitempty"`
	SLAHours    *int                `json:"slaHours,omitempty"`
	Features    *[]string           `json:"features,omitempty"`
}

type CatalogService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	CreateService(ctx context.Context, actor *models.User, input CreateServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, actor *models.User, id string, patch ServicePatch) (*models.Service, error)
	ToggleService(ctx context.Context, actor *models.User, id string) (*models.Service, error)
	DeleteService(ctx context.Context, actor *models.User, id string) error
}

type CatalogServiceImpl struct {
	Repo         ServiceRepository
	Eval         *access.Evaluator
	AuditService audit.AuditService
}

func NewCatalogService(repo ServiceRepository, eval *access.Evaluator, auditService audit.AuditService) CatalogService {
	return &CatalogServiceImpl{
		Repo:         repo,
		Eval:         eval,
		AuditService: auditService,
	}
}

func (s *CatalogServiceImpl) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.List(ctx)
}

func (s *CatalogServiceImpl) CreateService(ctx context.Context, actor *models.User, input CreateServiceInput) (*models.Service, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: service name is required", apperr.ErrValidation)
	}

	service := &models.Service{
		ID:          "s_" + uuid.NewString(),
		Type:        input.Type,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		BasePrice:   input.BasePrice,
		SLAHours:    input.SLAHours,
		Features:    input.Features,
		IsActive:    true,
	}
	if service.Features == nil {
		service.Features = []string{}
	}
	if service.Type == "" {
		service.Type = models.ServiceOther
	}

	if err := s.Repo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleServices, "service", service.ID, nil, service)
	return service, nil
}

func (s *CatalogServiceImpl) UpdateService(ctx context.Context, actor *models.User, id string, patch ServicePatch) (*models.Service, error) {
	service, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *service

	if patch.Type != nil {
		service.Type = *patch.Type
	}
	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("%w: service name is required", apperr.ErrValidation)
		}
		service.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		service.Description = *patch.Description
	}
	if patch.BasePrice != nil {
		service.BasePrice = *patch.BasePrice
	}
	if patch.SLAHours != nil {
		service.SLAHours = *patch.SLAHours
	}
	if patch.Features != nil {
		service.Features = *patch.Features
	}

	if err := s.Repo.Update(ctx, service); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleServices, "service", id, before, service)
	return service, nil
}

// ToggleService flips the active flag. It is restricted to holders of
// services_manage on top of the route guard, since activation is the one
// catalog mutation the UI exposes outside the settings screens.
func (s *CatalogServiceImpl) ToggleService(ctx context.Context, actor *models.User, id string) (*models.Service, error) {
	if !s.Eval.Can(actor, models.ActionManage, models.ModuleServices) {
		return nil, fmt.Errorf("%w: services_manage is required", apperr.ErrPermissionDenied)
	}

	service, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *service
	service.IsActive = !service.IsActive

	if err := s.Repo.Update(ctx, service); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleServices, "service", id, before, service)
	return service, nil
}

func (s *CatalogServiceImpl) DeleteService(ctx context.Context, actor *models.User, id string) error {
	service, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleServices, "service", id, service, nil)
	return nil
}
