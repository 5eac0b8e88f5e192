package task

import (
	"context"
	"fmt"
	"strings"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/features/audit"

	"github.com/google/uuid"
)

// LeadChecker validates the optional lead reference on a task. Satisfied by
// the lead feature's repository via an adapter in main.
type LeadChecker interface {
	LeadExists(ctx context.Context, leadID string) bool
}

type CreateTaskInput struct {
	Title    string
	DueDate  string
	LeadID   string
	Priority models.TaskPriority
}

type TaskPatch struct {
	Title    *string              `json:"title,omitempty"`
	DueDate  *string              `json:"dueDate,omitempty"`
	LeadID   *string              `json:"leadId,omitempty"`
	Priority *models.TaskPriority `json:"priority,omitempty"`
}

type TaskService interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, actor *models.User, id string, patch TaskPatch) (*models.Task, error)
	ToggleTask(ctx context.Context, actor *models.User, id string) (*models.Task, error)
	DeleteTask(ctx context.Context, actor *models.User, id string) error
}

type TaskServiceImpl struct {
	Repo         TaskRepository
	Leads        LeadChecker
	AuditService audit.AuditService
}

func NewTaskService(repo TaskRepository, leads LeadChecker, auditService audit.AuditService) TaskService {
	return &TaskServiceImpl{
		Repo:         repo,
		Leads:        leads,
		AuditService: auditService,
	}
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.Repo.List(ctx)
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, actor *models.User, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", apperr.ErrValidation)
	}
	if input.LeadID != "" && !s.Leads.LeadExists(ctx, input.LeadID) {
		return nil, fmt.Errorf("%w: unknown lead %q", apperr.ErrValidation, input.LeadID)
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		ID:       "t_" + uuid.NewString(),
		Title:    strings.TrimSpace(input.Title),
		DueDate:  input.DueDate,
		LeadID:   input.LeadID,
		Priority: priority,
	}

	if err := s.Repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionCreate, models.ModuleTasks, "task", task.ID, nil, task)
	return task, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, actor *models.User, id string, patch TaskPatch) (*models.Task, error) {
	task, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *task

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("%w: task title is required", apperr.ErrValidation)
		}
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.LeadID != nil {
		if *patch.LeadID != "" && !s.Leads.LeadExists(ctx, *patch.LeadID) {
			return nil, fmt.Errorf("%w: unknown lead %q", apperr.ErrValidation, *patch.LeadID)
		}
		task.LeadID = *patch.LeadID
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}

	if err := s.Repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleTasks, "task", id, before, task)
	return task, nil
}

// ToggleTask flips the completion flag and nothing else. Toggling twice
// restores the original state.
func (s *TaskServiceImpl) ToggleTask(ctx context.Context, actor *models.User, id string) (*models.Task, error) {
	task, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := *task
	task.Completed = !task.Completed

	if err := s.Repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionUpdate, models.ModuleTasks, "task", id, before, task)
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, actor *models.User, id string) error {
	task, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.AuditService.Log(ctx, actor, models.AuditActionDelete, models.ModuleTasks, "task", id, task, nil)
	return nil
}
