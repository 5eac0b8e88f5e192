package audit

import (
	"context"
	"sync"

	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListFilter narrows a log listing. Zero values mean "no filter".
type ListFilter struct {
	Module models.Module
	UserID string
	Limit  int
}

type AuditRepository interface {
	Append(ctx context.Context, log models.AuditLog) error
	List(ctx context.Context, filter ListFilter) ([]models.AuditLog, error)
}

// MemoryAuditRepository is a bounded in-memory ring of recent entries, newest
// kept. It is always the primary sink; mongo is layered on top when
// configured.
type MemoryAuditRepository struct {
	mu       sync.RWMutex
	logs     []models.AuditLog
	capacity int
}

func NewMemoryAuditRepository() *MemoryAuditRepository {
	return &MemoryAuditRepository{capacity: 1000}
}

func (r *MemoryAuditRepository) Append(ctx context.Context, log models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, log)
	if len(r.logs) > r.capacity {
		r.logs = r.logs[len(r.logs)-r.capacity:]
	}
	return nil
}

func (r *MemoryAuditRepository) List(ctx context.Context, filter ListFilter) ([]models.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	// Newest first.
	out := make([]models.AuditLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		log := r.logs[i]
		if filter.Module != "" && log.Module != filter.Module {
			continue
		}
		if filter.UserID != "" && log.UserID != filter.UserID {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

// MongoAuditSink mirrors every entry into a mongo collection so the audit
// trail survives restarts. The core never reads it back.
type MongoAuditSink struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoAuditSink returns nil when no database is configured.
func NewMongoAuditSink(db *database.MongodbDB, logger *zap.Logger) *MongoAuditSink {
	if db == nil {
		return nil
	}
	return &MongoAuditSink{
		collection: db.DB.Collection("audit_logs"),
		logger:     logger,
	}
}

func (s *MongoAuditSink) Append(ctx context.Context, log models.AuditLog) {
	if _, err := s.collection.InsertOne(ctx, log); err != nil {
		s.logger.Warn("audit sink write failed", zap.Error(err))
	}
}

// EnsureIndexes sets up the timestamp index used by external log consumers.
func (s *MongoAuditSink) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: -1}},
		Options: options.Index(),
	})
	return err
}
