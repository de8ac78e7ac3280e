// internal/service/alert/scanner.go
package alert

import (
	"context"
	"time"

	domain "tripdesk-service/internal/domain/opportunity"
	opportunitysvc "tripdesk-service/internal/service/opportunity"
	"tripdesk-service/internal/state"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Broadcaster pushes a freshly injected alert to connected dashboards.
type Broadcaster interface {
	BroadcastAlert(opportunityID int64, task domain.Task)
}

// Scanner walks the in-memory pipeline on a fixed interval and injects
// deadline alert tasks. Overlapping runs are skipped, never queued: the
// cron chain drops a tick while the previous scan is still in flight.
type Scanner struct {
	repo   opportunitysvc.Repository
	store  *state.Store
	hub    Broadcaster
	logger *zap.Logger

	cron *cron.Cron
	now  func() time.Time
}

func NewScanner(repo opportunitysvc.Repository, store *state.Store, hub Broadcaster, logger *zap.Logger) *Scanner {
	return &Scanner{
		repo:   repo,
		store:  store,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Start runs one scan immediately, then every minute.
func (s *Scanner) Start(ctx context.Context) error {
	s.Scan(ctx)

	cronLogger := zapCronLogger{s.logger}
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger)))
	_, err := s.cron.AddFunc("@every 1m", func() {
		s.Scan(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scanner) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Scan evaluates every cached opportunity. Persistence is one call per
// changed opportunity so a gateway failure stays isolated to that record.
func (s *Scanner) Scan(ctx context.Context) {
	now := s.now()
	for _, o := range s.store.Opportunities() {
		s.scanOne(ctx, o.ID, now)
	}
}

// scanOne re-reads the aggregate under its mutation lock so a request
// handler committing during the scan is never overwritten by a stale clone.
func (s *Scanner) scanOne(ctx context.Context, id int64, now time.Time) {
	unlock := s.store.LockOpportunity(id)
	defer unlock()

	o, ok := s.store.Opportunity(id)
	if !ok {
		return
	}

	newTasks := EnsureDeadlineAlerts(o, now)
	if len(newTasks) == 0 {
		return
	}

	o.Tasks = append(o.Tasks, newTasks...)
	if err := s.repo.Save(ctx, o); err != nil {
		s.logger.Error("failed to persist deadline alerts",
			zap.Int64("opportunity_id", o.ID),
			zap.Error(err),
		)
		return
	}
	s.store.PutOpportunity(o)

	for _, t := range newTasks {
		s.logger.Info("deadline alert injected",
			zap.Int64("opportunity_id", o.ID),
			zap.String("title", t.Title),
		)
		if s.hub != nil {
			s.hub.BroadcastAlert(o.ID, t)
		}
	}
}

// zapCronLogger adapts zap to the cron.Logger interface.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
