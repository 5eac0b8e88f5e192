package audit

import (
	"context"
	"time"

	"kliernav-crm/internal/common/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService records every mutation applied through the entity services.
// Recording never fails the mutation that triggered it.
type AuditService interface {
	Log(ctx context.Context, actor *models.User, action models.AuditAction, module models.Module, entityType, entityID string, before, after any)
	LogFailed(ctx context.Context, actor *models.User, action models.AuditAction, module models.Module, entityType, entityID string)
	ListLogs(ctx context.Context, filter ListFilter) ([]models.AuditLog, error)
}

type AuditServiceImpl struct {
	Repo   AuditRepository
	Sink   *MongoAuditSink
	Logger *zap.Logger
}

func NewAuditService(repo AuditRepository, sink *MongoAuditSink, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{
		Repo:   repo,
		Sink:   sink,
		Logger: logger,
	}
}

func (s *AuditServiceImpl) Log(ctx context.Context, actor *models.User, action models.AuditAction, module models.Module, entityType, entityID string, before, after any) {
	s.record(ctx, actor, action, module, entityType, entityID, before, after, models.AuditSuccess)
}

func (s *AuditServiceImpl) LogFailed(ctx context.Context, actor *models.User, action models.AuditAction, module models.Module, entityType, entityID string) {
	s.record(ctx, actor, action, module, entityType, entityID, nil, nil, models.AuditFailed)
}

func (s *AuditServiceImpl) record(ctx context.Context, actor *models.User, action models.AuditAction, module models.Module, entityType, entityID string, before, after any, outcome models.AuditOutcome) {
	entry := models.AuditLog{
		ID:         uuid.NewString(),
		Action:     action,
		Module:     module,
		EntityType: entityType,
		EntityID:   entityID,
		Before:     before,
		After:      after,
		Timestamp:  time.Now(),
		Status:     outcome,
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserName = actor.Name
	} else {
		entry.UserID = "system"
		entry.UserName = "system"
	}

	if err := s.Repo.Append(ctx, entry); err != nil {
		s.Logger.Warn("audit append failed", zap.Error(err))
	}
	if s.Sink != nil {
		s.Sink.Append(ctx, entry)
	}
}

func (s *AuditServiceImpl) ListLogs(ctx context.Context, filter ListFilter) ([]models.AuditLog, error) {
	return s.Repo.List(ctx, filter)
}
