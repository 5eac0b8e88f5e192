package lead

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type LeadRepository interface {
	FindByID(ctx context.Context, id string) (*models.Lead, error)
	List(ctx context.Context) ([]models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Update(ctx context.Context, lead *models.Lead) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type MemoryLeadRepository struct {
	mu    sync.RWMutex
	leads map[string]models.Lead
	order []string
}

func NewLeadRepository() LeadRepository {
	r := &MemoryLeadRepository{leads: make(map[string]models.Lead)}
	for _, l := range seedLeads() {
		r.leads[l.ID] = l
		r.order = append(r.order, l.ID)
	}
	return r
}

func (r *MemoryLeadRepository) FindByID(ctx context.Context, id string) (*models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.leads[id]
	if !ok {
		return nil, fmt.Errorf("%w: lead %q", apperr.ErrNotFound, id)
	}
	return &l, nil
}

func (r *MemoryLeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Lead, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.leads[id])
	}
	return out, nil
}

func (r *MemoryLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.ID]; exists {
		return fmt.Errorf("%w: lead %q already exists", apperr.ErrValidation, lead.ID)
	}
	r.leads[lead.ID] = *lead
	r.order = append(r.order, lead.ID)
	return nil
}

func (r *MemoryLeadRepository) Update(ctx context.Context, lead *models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[lead.ID]; !ok {
		return fmt.Errorf("%w: lead %q", apperr.ErrNotFound, lead.ID)
	}
	r.leads[lead.ID] = *lead
	return nil
}

func (r *MemoryLeadRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok {
		return fmt.Errorf("%w: lead %q", apperr.ErrNotFound, id)
	}
	delete(r.leads, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryLeadRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, l := range r.leads {
		if l.Status == status {
			count++
		}
	}
	return count, nil
}

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func seedLeads() []models.Lead {
	return []models.Lead{
		{
			ID: "l1", Title: "E-commerce Express + MercadoPago", Company: "TechStore Argentina",
			Value: 980000, Status: "NEGOTIATION", Tags: []string{"E-commerce", "High Ticket", "SLA 24h"},
			OwnerID: "u1", LastContact: dateOffset(0), ServiceType: models.ServiceEcommerce,
			IsSameDay: true, LeadSource: "Inbound",
		},
		{
			ID: "l2", Title: "Pack Domina tu Barrio (SEO Local)", Company: "Consultor Inmobiliario López",
			Value: 380000, Status: "CONTACTED", Tags: []string{"Recurrente", "Local"},
			OwnerID: "u2", LastContact: dateOffset(-1), ServiceType: models.ServiceLocal,
			LeadSource: "Referral",
		},
		{
			ID: "l3", Title: "Landing Page SAME-DAY", Company: "Startup Fitness YA",
			Value: 261000, Status: "WON", Tags: []string{"Flash", "MVP"},
			OwnerID: "u1", LastContact: dateOffset(-2), ServiceType: models.ServiceLanding,
			IsSameDay: true, LeadSource: "Outbound",
		},
		{
			ID: "l4", Title: "Automatización Flujo de Leads", Company: "Agencia Marketing Total",
			Value: 410000, Status: "WON", Tags: []string{"Automation", "B2B"},
			OwnerID: "u3", LastContact: dateOffset(-5), ServiceType: models.ServiceAutomation,
			LeadSource: "Referral",
		},
		{
			ID: "l5", Title: "App Móvil Catálogo", Company: "Distribuidora del Norte",
			Value: 1200000, Status: "LOST", Tags: []string{"Mobile", "Long Term"},
			OwnerID: "u3", LastContact: dateOffset(-10), ServiceType: models.ServiceMobile,
			LeadSource: "Inbound",
		},
	}
}
