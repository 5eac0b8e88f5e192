package lead

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/access"
	"kliernav-crm/internal/features/audit"

	"github.com/google/uuid"
)

// ListFilter narrows a lead listing after visibility filtering. All criteria
// are AND-combined; the text query matches title, company and tags
// case-insensitively.
type ListFilter struct {
	Query       string
	OwnerID     string
	ServiceType models.ServiceType
	MinValue    float64
	MaxValue    float64
	SameDayOnly bool
	Status      string
}

type CreateLeadInput struct {
	Title       string
	Company     string
	Value       float64
	Status      string
	Tags        []string
	OwnerID     string
	ServiceType models.ServiceType
	IsSameDay   bool
	LeadSource  string
}

type LeadPatch struct {
	Title       *string             `json:"title,omitempty"`
	Company     *string             `json:"company,omitempty"`
	Value       *float64            `json:"value,omitempty"`
	Status      *string             `json:"status,omitempty"`
	Tags        *[]string           `json:"tags,omitempty"`
	OwnerID     *string             `json:"ownerId,omitempty"`
	LastContact *string             `json:"lastContact,omitempty"`
	ServiceType *models.ServiceType `json:"serviceType,omitempty"`
	IsSameDay   *bool               `json:"isSameDay,omitempty"`
	LeadSource  *string             `json:"leadSource,omitempty"`
}

type LeadService interface {
	ListLeads(ctx context.Context, actor *models.User, filter ListFilter) ([]models.Lead, error)
	GetLead(ctx context.Context, actor *models.User, id string) (*models.Lead, error)
	CreateLead(ctx context.Context, actor *models.User, input CreateLeadInput) (*models.Lead, error)
	UpdateLead(ctx context.Context, actor *models.User, id string, patch LeadPatch) (*models.Lead, error)
	MoveLead(ctx context.Context, actor *models.User, id, stageID string) (*models.Lead, error)
	DeleteLead(ctx context.Context, actor *models.User, id string) error

	ListStages(ctx context.Context) []Stage
	AddStage(ctx context.Context, actor *models.User, name string) (Stage, error)
	RenameStage(ctx context.Context, actor *models.User, id, title string) (Stage, error)
	RemoveStage(ctx context.Context, actor *models.User, id string) error
}

type LeadServiceImpl struct {
	Repo         LeadRepository
	Stages       *StageRegistry
	Eval         *access.Evaluator
	AuditService audit.AuditService
}

func NewLeadService(repo LeadRepository, stages *StageRegistry, eval *access.Evaluator, auditService audit.AuditService) LeadService {
	return &LeadServiceImpl{
		Repo:         repo,
		Stages:       stages,
		Eval:         eval,
		AuditService: auditService,
	}
}

func (s *LeadServiceImpl) ListLeads(ctx context.Context, actor *models.User, filter ListFilter) ([]models.Lead, error) {
	all, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := s.Eval.VisibleLeads(actor, all)

	maxValue := filter.MaxValue
	if maxValue == 0 {
		maxValue = math.MaxFloat64
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	out := make([]models.Lead, 0, len(visible))
	for _, lead := range visible {
		if query != "" && !matchesQuery(lead, query) {
			continue
		}
		if filter.OwnerID != "" && lead.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ServiceType != "" && lead.ServiceType != filter.ServiceType {
			continue
		}
		if lead.Value < filter.MinValue || lead.Value > maxValue {
			continue
		}
		if filter.SameDayOnly && !lead.IsSameDay {
			continue
		}
		if filter.Status != "" && lead.Status != filter.Status {
			continue
		}
		out = append(out, lead)
	}
	return out, nil
}

func matchesQuery(lead models.Lead, query string) bool {
	if strings.Contains(strings.ToLower(lead.Title), query) ||
		strings.Contains(strings.ToLower(lead.Company), query) {
		return true
	}
	for _, tag := range lead.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func (s *LeadServiceImpl) GetLead(ctx context.Context, actor *models.User, id string) (*models.Lead, error) {
	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(s.Eval.VisibleLeads(actor, []models.Lead{*lead})) == 0 {
		return nil, fmt.Errorf("%w: lead %q belongs to another owner", apperr.ErrPermissionDenied, id)
	}
	return lead, nil
}

func (s *LeadServiceImpl) CreateLead(ctx context.Context, actor *models.User, input CreateLeadInput) (*models.Lead, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: lead title is required", apperr.ErrValidation)
	}
	if strings.TrimSpace(input.Company) == "" {
		return nil, fmt.Errorf("%w: lead company is required", apperr.ErrValidation)
	}

	status := input.Status
	if status == "" {
		status = "NEW"
	}
	if !s.Stages.Exists(status) {
		return nil, fmt.Errorf("%w: unknown pipeline stage %q", apperr.ErrValidation, status)
	}

	ownerID := input.OwnerID
	if ownerID == "" && actor != nil {
		ownerID = actor.ID
	}
	// Non-privileged users may only create leads they own.
	if actor != nil && !s.Eval.IsSuperuser(actor) && actor.RoleID != models.RoleManager {
		ownerID = actor.ID
	}

	lead := &models.Lead{
		ID:          "l_" + uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Company:     strings.TrimSpace(input.Company),
		Value:       input.Value,
		Status:      status,
		Tags:        input.Tags,
		OwnerID:     ownerID,
		LastContact: time.Now().Format("2006-01-02"),
		ServiceType: input.ServiceType,
		IsSameDay:   input.IsSameDay,
		LeadSource:  input.LeadSource,
	}
	if lead.Tags == nil {
		lead.Tags = []string{}
	}

	if err := s.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleLeads, "lead", lead.ID, nil, lead)
	return lead, nil
}

func (s *LeadServiceImpl) UpdateLead(ctx context.Context, actor *models.User, id string, patch LeadPatch) (*models.Lead, error) {
	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.Eval.CanEditLead(actor, lead) {
		s.AuditService.LogFailed(ctx, actor, models.AuditActionUpdate, models.ModuleLeads, "lead", id)
		return nil, fmt.Errorf("%w: cannot edit lead %q", apperr.ErrPermissionDenied, id)
	}

	before := *lead

	if patch.Title != nil {
		lead.Title = *patch.Title
	}
	if patch.Company != nil {
		lead.Company = *patch.Company
	}
	if patch.Value != nil {
		lead.Value = *patch.Value
	}
	if patch.Status != nil {
		if !s.Stages.Exists(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown pipeline stage %q", apperr.ErrValidation, *patch.Status)
		}
		lead.Status = *patch.Status
	}
	if patch.Tags != nil {
		lead.Tags = *patch.Tags
	}
	if patch.OwnerID != nil {
		lead.OwnerID = *patch.OwnerID
	}
	if patch.LastContact != nil {
		lead.LastContact = *patch.LastContact
	}
	if patch.ServiceType != nil {
		lead.ServiceType = *patch.ServiceType
	}
	if patch.IsSameDay != nil {
		lead.IsSameDay = *patch.IsSameDay
	}
	if patch.LeadSource != nil {
		lead.LeadSource = *patch.LeadSource
	}

	if err := s.Repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleLeads, "lead", id, before, lead)
	return lead, nil
}

// MoveLead transitions a lead between pipeline stages. It is an update
// restricted by CanEditLead; the target stage must exist.
func (s *LeadServiceImpl) MoveLead(ctx context.Context, actor *models.User, id, stageID string) (*models.Lead, error) {
	if !s.Stages.Exists(stageID) {
		return nil, fmt.Errorf("%w: unknown pipeline stage %q", apperr.ErrValidation, stageID)
	}
	return s.UpdateLead(ctx, actor, id, LeadPatch{Status: &stageID})
}

func (s *LeadServiceImpl) DeleteLead(ctx context.Context, actor *models.User, id string) error {
	lead, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.Eval.CanDeleteLead(actor, lead) {
		s.AuditService.LogFailed(ctx, actor, models.AuditActionDelete, models.ModuleLeads, "lead", id)
		return fmt.Errorf("%w: only admins can delete leads", apperr.ErrPermissionDenied)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleLeads, "lead", id, lead, nil)
	return nil
}

func (s *LeadServiceImpl) ListStages(ctx context.Context) []Stage {
	return s.Stages.List()
}

func (s *LeadServiceImpl) AddStage(ctx context.Context, actor *models.User, name string) (Stage, error) {
	stage, err := s.Stages.Add(name)
	if err != nil {
		return Stage{}, err
	}
	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleLeads, "stage", stage.ID, nil, stage)
	return stage, nil
}

func (s *LeadServiceImpl) RenameStage(ctx context.Context, actor *models.User, id, title string) (Stage, error) {
	stage, err := s.Stages.Rename(id, title)
	if err != nil {
		return Stage{}, err
	}
	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleLeads, "stage", id, nil, stage)
	return stage, nil
}

// RemoveStage deletes an empty pipeline stage. A stage still holding leads is
// rejected and the stage list stays unchanged.
func (s *LeadServiceImpl) RemoveStage(ctx context.Context, actor *models.User, id string) error {
	count, err := s.Repo.CountByStatus(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: stage %q still holds %d leads", apperr.ErrStageNotEmpty, id, count)
	}

	if err := s.Stages.Remove(id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleLeads, "stage", id, id, nil)
	return nil
}
