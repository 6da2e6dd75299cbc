package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/studytube/backend/internal/models"
	"go.uber.org/zap"
)

const (
	dedupeKeyPrefix = "reminder:sent"
	dedupeTTL       = 48 * time.Hour
	dayLayout       = "2006-01-02"
)

// CandidateRepository defines how the scheduler finds owners to remind
type CandidateRepository interface {
	// GetReminderCandidates returns owners with reminders enabled whose last activity was on day
	GetReminderCandidates(ctx context.Context, day time.Time) ([]models.ReminderCandidate, error)
}

// StreakProvider defines how the scheduler reads an owner's current streak
type StreakProvider interface {
	// GetStreak returns the owner's active streak in days
	GetStreak(ctx context.Context, ownerID string) (int, error)
}

// Deduper marks reminders as sent so that a second run on the same day skips them
//
// *redis.Client satisfies it.
type Deduper interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Enqueuer hands tasks to the queue; *asynq.Client satisfies it
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues reminder tasks on a cron schedule
type Scheduler struct {
	cron       *cron.Cron
	candidates CandidateRepository
	streaks    StreakProvider
	dedupe     Deduper
	queue      Enqueuer
	logger     *zap.Logger
	now        func() time.Time
}

// NewScheduler creates a scheduler firing on spec, a standard five-field cron expression
// evaluated in loc
func NewScheduler(
	spec string,
	loc *time.Location,
	candidates CandidateRepository,
	streaks StreakProvider,
	dedupe Deduper,
	queue Enqueuer,
	logger *zap.Logger,
) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}

	s := &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		candidates: candidates,
		streaks:    streaks,
		dedupe:     dedupe,
		queue:      queue,
		logger:     logger,
		now:        time.Now,
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Reminder scheduler started")
}

// Stop stops the scheduler and waits for a running pass to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Reminder scheduler stopped")
}

func (s *Scheduler) tick() {
	if _, err := s.Run(context.Background()); err != nil {
		s.logger.Error("reminder pass failed", zap.Error(err))
	}
}

// Run enqueues one reminder for every owner who was active yesterday but not yet today
//
// Days are UTC. Per-owner failures are logged and skipped; the returned count is the
// number of tasks enqueued.
func (s *Scheduler) Run(ctx context.Context) (int, error) {
	today := s.now().UTC()
	yesterday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	candidates, err := s.candidates.GetReminderCandidates(ctx, yesterday)
	if err != nil {
		return 0, fmt.Errorf("failed to get reminder candidates: %w", err)
	}

	day := today.Format(dayLayout)
	enqueued := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return enqueued, err
		}
		ok, err := s.remind(ctx, c, day)
		if err != nil {
			s.logger.Error("failed to enqueue reminder",
				zap.String("owner_id", c.OwnerID),
				zap.Error(err),
			)
			continue
		}
		if ok {
			enqueued++
		}
	}

	s.logger.Info("reminder pass finished",
		zap.String("day", day),
		zap.Int("candidates", len(candidates)),
		zap.Int("enqueued", enqueued),
	)
	return enqueued, nil
}

// remind enqueues a reminder for c unless one was already sent for day
func (s *Scheduler) remind(ctx context.Context, c models.ReminderCandidate, day string) (bool, error) {
	streak, err := s.streaks.GetStreak(ctx, c.OwnerID)
	if err != nil {
		return false, fmt.Errorf("failed to get streak: %w", err)
	}
	if streak == 0 {
		return false, nil
	}

	key := fmt.Sprintf("%s:%s:%s", dedupeKeyPrefix, day, c.OwnerID)
	fresh, err := s.dedupe.SetNX(ctx, key, 1, dedupeTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder: %w", err)
	}
	if !fresh {
		s.logger.Debug("reminder already sent", zap.String("owner_id", c.OwnerID), zap.String("day", day))
		return false, nil
	}

	task, err := NewReminderTask(ReminderPayload{
		OwnerID:     c.OwnerID,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		Streak:      streak,
		Day:         day,
	})
	if err == nil {
		_, err = s.queue.Enqueue(task, asynq.Queue(QueueName))
	}
	if err != nil {
		// release the mark so the next pass can retry
		if delErr := s.dedupe.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("failed to release reminder mark", zap.String("key", key), zap.Error(delErr))
		}
		return false, err
	}
	return true, nil
}
