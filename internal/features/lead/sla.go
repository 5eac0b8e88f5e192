package lead

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SLAWatcher periodically scans open same-day leads and flags the ones whose
// last contact has slipped past the 24-hour expedited window.
type SLAWatcher struct {
	repo      LeadRepository
	logger    *zap.Logger
	scheduler *cron.Cron
}

func NewSLAWatcher(repo LeadRepository, logger *zap.Logger) *SLAWatcher {
	return &SLAWatcher{
		repo:      repo,
		logger:    logger,
		scheduler: cron.New(),
	}
}

func (w *SLAWatcher) Start() error {
	if _, err := w.scheduler.AddFunc("*/15 * * * *", w.scan); err != nil {
		return err
	}
	w.scheduler.Start()
	return nil
}

func (w *SLAWatcher) Stop() {
	w.scheduler.Stop()
}

func (w *SLAWatcher) scan() {
	leads, err := w.repo.List(context.Background())
	if err != nil {
		w.logger.Warn("sla scan failed", zap.Error(err))
		return
	}

	today := time.Now().Format("2006-01-02")
	breached := 0
	for _, lead := range leads {
		if !lead.IsSameDay || lead.Status == "WON" || lead.Status == "LOST" {
			continue
		}
		if lead.LastContact < today {
			breached++
			w.logger.Warn("same-day lead past its SLA window",
				zap.String("lead", lead.ID),
				zap.String("company", lead.Company),
				zap.String("lastContact", lead.LastContact),
			)
		}
	}
	if breached == 0 {
		w.logger.Debug("sla scan clean", zap.Int("leads", len(leads)))
	}
}
