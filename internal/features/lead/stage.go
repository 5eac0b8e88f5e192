package lead

import (
	"fmt"
	"strings"
	"sync"

	"kliernav-crm/internal/common/apperr"
)

// Stage is one pipeline column a lead can occupy. The five built-in stages
// can be renamed but the set is user-extensible.
type Stage struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StageRegistry is the ordered, in-memory set of pipeline stages.
type StageRegistry struct {
	mu     sync.RWMutex
	stages []Stage
}

func NewStageRegistry() *StageRegistry {
	return &StageRegistry{
		stages: []Stage{
			{ID: "NEW", Title: "Nuevos (Inbound)"},
			{ID: "CONTACTED", Title: "Contactados / Demo"},
			{ID: "NEGOTIATION", Title: "Presupuesto Enviado"},
			{ID: "WON", Title: "Ganados (A Producción)"},
			{ID: "LOST", Title: "Perdidos / Standby"},
		},
	}
}

func (r *StageRegistry) List() []Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Stage, len(r.stages))
	copy(out, r.stages)
	return out
}

func (r *StageRegistry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id) >= 0
}

// StageID derives the identifier for a stage name: upper-cased, whitespace
// runs collapsed to underscores.
func StageID(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(name)), "_")
}

// Add registers a new stage. Two names that collapse to the same identifier
// are rejected rather than silently merged.
func (r *StageRegistry) Add(name string) (Stage, error) {
	title := strings.TrimSpace(name)
	if title == "" {
		return Stage{}, fmt.Errorf("%w: stage name is required", apperr.ErrValidation)
	}

	id := StageID(title)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(id) >= 0 {
		return Stage{}, fmt.Errorf("%w: stage %q already exists", apperr.ErrValidation, id)
	}

	stage := Stage{ID: id, Title: title}
	r.stages = append(r.stages, stage)
	return stage, nil
}

func (r *StageRegistry) Rename(id, title string) (Stage, error) {
	if strings.TrimSpace(title) == "" {
		return Stage{}, fmt.Errorf("%w: stage title is required", apperr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return Stage{}, fmt.Errorf("%w: stage %q", apperr.ErrNotFound, id)
	}
	r.stages[i].Title = strings.TrimSpace(title)
	return r.stages[i], nil
}

// Remove drops a stage from the registry. The caller is responsible for
// checking the stage is empty first.
func (r *StageRegistry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: stage %q", apperr.ErrNotFound, id)
	}
	r.stages = append(r.stages[:i], r.stages[i+1:]...)
	return nil
}

func (r *StageRegistry) indexOf(id string) int {
	for i, s := range r.stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}
