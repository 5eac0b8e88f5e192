package event

import (
	"context"
	"fmt"
	"strings"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/audit"

	"github.com/google/uuid"
)

type LeadChecker interface {
	LeadExists(ctx context.Context, leadID string) bool
}

// ListFilter narrows a calendar listing. Dates are YYYY-MM-DD and the range
// is inclusive on both ends.
type ListFilter struct {
	From string
	To   string
	Type models.EventType
}

type CreateEventInput struct {
	Title       string
	Date        string
	Time        string
	Type        models.EventType
	LeadID      string
	Source      models.EventSource
	Description string
}

type EventPatch struct {
	Title       *string           `json:"title,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Time        *string           `json:"time,omitempty"`
	Type        *models.EventType `json:"type,omitempty"`
	LeadID      *string           `json:"leadId,omitempty"`
	Description *string           `json:"description,omitempty"`
}

type EventService interface {
	ListEvents(ctx context.Context, filter ListFilter) ([]models.CalendarEvent, error)
	CreateEvent(ctx context.Context, actor *models.User, input CreateEventInput) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, actor *models.User, id string, patch EventPatch) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, actor *models.User, id string) error
}

type EventServiceImpl struct {
	Repo         EventRepository
	Leads        LeadChecker
	AuditService audit.AuditService
}

func NewEventService(repo EventRepository, leads LeadChecker, auditService audit.AuditService) EventService {
	return &EventServiceImpl{
		Repo:         repo,
		Leads:        leads,
		AuditService: auditService,
	}
}

func (s *EventServiceImpl) ListEvents(ctx context.Context, filter ListFilter) ([]models.CalendarEvent, error) {
	events, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.CalendarEvent, 0, len(events))
	for _, e := range events {
		if filter.From != "" && e.Date < filter.From {
			continue
		}
		if filter.To != "" && e.Date > filter.To {
			continue
		}
		if filter.Type != "" && e.Type != filter.Type {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *EventServiceImpl) CreateEvent(ctx context.Context, actor *models.User, input CreateEventInput) (*models.CalendarEvent, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: event title is required", apperr.ErrValidation)
	}
	if input.Date == "" {
		return nil, fmt.Errorf("%w: event date is required", apperr.ErrValidation)
	}
	if input.LeadID != "" && !s.Leads.LeadExists(ctx, input.LeadID) {
		return nil, fmt.Errorf("%w: unknown lead %q", apperr.ErrValidation, input.LeadID)
	}

	eventType := input.Type
	if eventType == "" {
		eventType = models.EventMeeting
	}
	source := input.Source
	if source == "" {
		source = models.EventSourceCRM
	}

	event := &models.CalendarEvent{
		ID:          "e_" + uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Date:        input.Date,
		Time:        input.Time,
		Type:        eventType,
		LeadID:      input.LeadID,
		Source:      source,
		Description: input.Description,
	}

	if err := s.Repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleCalendar, "event", event.ID, nil, event)
	return event, nil
}

func (s *EventServiceImpl) UpdateEvent(ctx context.Context, actor *models.User, id string, patch EventPatch) (*models.CalendarEvent, error) {
	event, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *event

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Time != nil {
		event.Time = *patch.Time
	}
	if patch.Type != nil {
		event.Type = *patch.Type
	}
	if patch.LeadID != nil {
		if *patch.LeadID != "" && !s.Leads.LeadExists(ctx, *patch.LeadID) {
			return nil, fmt.Errorf("%w: unknown lead %q", apperr.ErrValidation, *patch.LeadID)
		}
		event.LeadID = *patch.LeadID
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}

	if err := s.Repo.Update(ctx, event); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleCalendar, "event", id, before, event)
	return event, nil
}

func (s *EventServiceImpl) DeleteEvent(ctx context.Context, actor *models.User, id string) error {
	event, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleCalendar, "event", id, event, nil)
	return nil
}
