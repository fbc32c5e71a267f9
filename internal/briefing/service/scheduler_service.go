package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"market-briefing/internal/briefing/config"
	"market-briefing/pkg/logger"
	"market-briefing/pkg/utils"
)

// SchedulerService runs the briefing pipeline on a cron schedule.
type SchedulerService interface {
	Start(ctx context.Context) error
	Trigger(ctx context.Context, now time.Time) bool
}

type schedulerService struct {
	cfg        *config.Config
	logger     *logger.Logger
	briefing   BriefingService
	cronParser cron.Parser
	location   *time.Location
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(cfg *config.Config, logger *logger.Logger, briefing BriefingService) SchedulerService {
	return &schedulerService{
		cfg:        cfg,
		logger:     logger,
		briefing:   briefing,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		location:   utils.LoadLocation(cfg.Schedule.TimeZone),
	}
}

// Start blocks until ctx is done, running the pipeline at every cron tick.
func (s *schedulerService) Start(ctx context.Context) error {
	schedule, err := s.cronParser.Parse(s.cfg.Schedule.Cron)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.cfg.Schedule.Cron, err)
	}

	c := cron.New(cron.WithLocation(s.location), cron.WithParser(s.cronParser))
	c.Schedule(schedule, cron.FuncJob(func() {
		s.Trigger(ctx, time.Now().In(s.location))
	}))
	c.Start()

	s.logger.Info("Scheduler started",
		logger.StringField("cron", s.cfg.Schedule.Cron),
		logger.StringField("time_zone", s.location.String()),
		logger.StringField("next_run", schedule.Next(time.Now().In(s.location)).Format(time.RFC3339)),
	)

	<-ctx.Done()
	s.logger.Info("Scheduler service stopping")
	<-c.Stop().Done()
	return nil
}

// Trigger runs one publishing pipeline unless now falls on a skipped weekend day.
// It reports whether a run produced a published briefing.
func (s *schedulerService) Trigger(ctx context.Context, now time.Time) bool {
	if s.cfg.Schedule.SkipWeekend && utils.IsWeekend(now.In(s.location)) {
		s.logger.Info("Skipping weekend run", logger.StringField("weekday", now.In(s.location).Weekday().String()))
		return false
	}

	ctx = logger.WithRunID(ctx, uuid.NewString())
	result, err := s.briefing.Run(ctx, true)
	if err != nil {
		s.logger.ErrorContext(ctx, "Scheduled briefing run failed", logger.ErrorField(err))
		return false
	}
	return result.Published
}
