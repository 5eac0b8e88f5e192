package service_catalog

import (
	"context"
	"fmt"
	"sync"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type ServiceRepository interface {
	FindByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}

type MemoryServiceRepository struct {
	mu       sync.RWMutex
	services map[string]models.Service
	order    []string
}

func NewServiceRepository() ServiceRepository {
	r := &MemoryServiceRepository{services: make(map[string]models.Service)}
	for _, s := range seedServices() {
		r.services[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *MemoryServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.services[id]
	if !ok {
		return nil, fmt.Errorf("%w: service %q", apperr.ErrNotFound, id)
	}
	return &s, nil
}

func (r *MemoryServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Service, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.services[id])
	}
	return out, nil
}

func (r *MemoryServiceRepository) Create(ctx context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.services[service.ID]; exists {
		return fmt.Errorf("%w: service %q already exists", apperr.ErrValidation, service.ID)
	}
	r.services[service.ID] = *service
	r.order = append(r.order, service.ID)
	return nil
}

func (r *MemoryServiceRepository) Update(ctx context.Context, service *models.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[service.ID]; !ok {
		return fmt.Errorf("%w: service %q", apperr.ErrNotFound, service.ID)
	}
	r.services[service.ID] = *service
	return nil
}

func (r *MemoryServiceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return fmt.Errorf("%w: service %q", apperr.ErrNotFound, id)
	}
	delete(r.services, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func seedServices() []models.Service {
	return []models.Service{
		{
			ID: "s1", Type: models.ServiceLanding, Name: "Landing Page SAME-DAY",
			Description: "Diseño y desarrollo de landing page de alta conversión con entrega en 24-48 horas.",
			BasePrice:   180000, SLAHours: 24, IsActive: true,
			Features: []string{"Diseño Responsivo", "Copywriting Persuasivo", "Integración de Formularios", "Hosting 1 año"},
		},
		{
			ID: "s2", Type: models.ServiceEcommerce, Name: "E-commerce Express",
			Description: "Tienda online completa con pasarelas de pago integradas en menos de 72 horas.",
			BasePrice:   980000, SLAHours: 72, IsActive: true,
			Features: []string{"Catálogo autogestionable", "MercadoPago/PayPal", "Cálculo de envíos", "Panel de control"},
		},
		{
			ID: "s7", Type: models.ServiceCRM, Name: "CRM Pro Setup & Soporte",
			Description: "Implementación estratégica de CRM, migración de datos y soporte operativo mensual.",
			BasePrice:   450000, SLAHours: 120, IsActive: true,
			Features: []string{"Configuración de Pipelines", "Automatización de Tareas", "Capacitación de Equipo", "Soporte 24/7"},
		},
		{
			ID: "s8", Type: models.ServiceAppWeb, Name: "App Web de Gestión / Saas",
			Description: "Desarrollo de aplicaciones web personalizadas para optimizar procesos internos específicos.",
			BasePrice:   1500000, SLAHours: 720, IsActive: true,
			Features: []string{"Arquitectura Escalable", "Base de Datos Cloud", "API First", "Dashboard Admin"},
		},
		{
			ID: "s4", Type: models.ServiceAutomation, Name: "Automatización de Leads",
			Description: "Workflows inteligentes para capturar, calificar y nutrir leads automáticamente.",
			BasePrice:   410000, SLAHours: 48, IsActive: true,
			Features: []string{"WhatsApp Automático", "Sync CRM", "Email Marketing", "Chatbots IA"},
		},
		{
			ID: "s3", Type: models.ServiceLocal, Name: "SEO Local & GBP",
			Description: "Optimización de Google Business Profile y posicionamiento local para negocios físicos.",
			BasePrice:   180000, SLAHours: 120, IsActive: true,
			Features: []string{"Optimización GBP", "Gestión de Reseñas", "Keywords Locales", "Reporte Mensual"},
		},
	}
}
