package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
)

type TaskRepository interface {
	FindByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id string) error
}

type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string
}

func NewTaskRepository() TaskRepository {
	r := &MemoryTaskRepository{tasks: make(map[string]models.Task)}
	today := time.Now().Format("2006-01-02")
	for _, t := range []models.Task{
		{ID: "t1", Title: "SLA: Kickoff TechStore (09:30)", DueDate: today, Completed: true, LeadID: "l1", Priority: models.PriorityHigh},
		{ID: "t2", Title: "SLA: Wireframe TechStore (12:00)", DueDate: today, Completed: false, LeadID: "l1", Priority: models.PriorityHigh},
	} {
		r.tasks[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *MemoryTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: task %q", apperr.ErrNotFound, id)
	}
	return &t, nil
}

func (r *MemoryTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return out, nil
}

func (r *MemoryTaskRepository) Create(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[task.ID]; exists {
		return fmt.Errorf("%w: task %q already exists", apperr.ErrValidation, task.ID)
	}
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	return nil
}

func (r *MemoryTaskRepository) Update(ctx context.Context, task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return fmt.Errorf("%w: task %q", apperr.ErrNotFound, task.ID)
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *MemoryTaskRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("%w: task %q", apperr.ErrNotFound, id)
	}
	delete(r.tasks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
