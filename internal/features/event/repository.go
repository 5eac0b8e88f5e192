package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type EventRepository interface {
	FindByID(ctx context.Context, id string) (*models.CalendarEvent, error)
	List(ctx context.Context) ([]models.CalendarEvent, error)
	Create(ctx context.Context, event *models.CalendarEvent) error
	Update(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}

type MemoryEventRepository struct {
	mu     sync.RWMutex
	events map[string]models.CalendarEvent
	order  []string
}

func NewEventRepository() EventRepository {
	r := &MemoryEventRepository{events: make(map[string]models.CalendarEvent)}
	seed := models.CalendarEvent{
		ID:     "e1",
		Title:  "Kickoff TechStore",
		Date:   time.Now().Format("2006-01-02"),
		Time:   "09:30",
		Type:   models.EventMeeting,
		LeadID: "l1",
		Source: models.EventSourceCRM,
	}
	r.events[seed.ID] = seed
	r.order = append(r.order, seed.ID)
	return r
}

func (r *MemoryEventRepository) FindByID(ctx context.Context, id string) (*models.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %q", apperr.ErrNotFound, id)
	}
	return &e, nil
}

func (r *MemoryEventRepository) List(ctx context.Context) ([]models.CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.CalendarEvent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.events[id])
	}
	return out, nil
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[event.ID]; exists {
		return fmt.Errorf("%w: event %q already exists", apperr.ErrValidation, event.ID)
	}
	r.events[event.ID] = *event
	r.order = append(r.order, event.ID)
	return nil
}

func (r *MemoryEventRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.ID]; !ok {
		return fmt.Errorf("%w: event %q", apperr.ErrNotFound, event.ID)
	}
	r.events[event.ID] = *event
	return nil
}

func (r *MemoryEventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return fmt.Errorf("%w: event %q", apperr.ErrNotFound, id)
	}
	delete(r.events, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
