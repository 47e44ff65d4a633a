package workoutlog

import (
	"context"
	"time"

	"github.com/traintally/backend/internal/telemetry/metrics"
	"github.com/traintally/backend/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type logRepo interface {
	Add(ctx context.Context, record Record) (_ *Record, inserted bool, err error)
	IncrementWorkScore(ctx context.Context, userID string, workoutType WorkoutType, score int) error
}

type Service struct {
	repo           logRepo
	metricsManager *metrics.Manager
}

func NewService(repo logRepo, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

// LogWorkout persists one workout record and, when the insert actually
// created a row, folds its work score into the owner's aggregate. A
// duplicate client ref is a no-op on both the log and the aggregate, which
// keeps redelivered save requests from double counting. Aggregate update
// failures are logged, not returned, the record itself is already safe.
func (s *Service) LogWorkout(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workoutlog.logworkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if record.Source == "" {
		record.Source = SourceManual
	}
	if record.Version == 0 {
		record.Version = SchemaVersion
	}
	if record.ClientRef == "" {
		record.ClientRef = uuid.NewString()
	}

	added, inserted, err := s.repo.Add(ctx, record)
	if err != nil {
		return nil, err
	}
	if !inserted {
		log.Debugf("workout log: duplicate client ref %s, skipping aggregation", record.ClientRef)
		return added, nil
	}

	if added.UserID == "" {
		return added, nil
	}

	score := ComputeWorkScore(*added)
	if err := s.repo.IncrementWorkScore(ctx, added.UserID, added.WorkoutType, score); err != nil {
		log.Errorf("workout log: increment work score for user %s: %s", added.UserID, err)
		return added, nil
	}
	s.metricsManager.CounterAggregationRuns.Inc()

	return added, nil
}
