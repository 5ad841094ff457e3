// Package scheduler repeats runs in-process on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one complete run.
type Job interface {
	Run(ctx context.Context) error
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs a Job on a cron schedule. Runs never overlap: a tick that
// fires while the previous run is still going is skipped.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	loc      *time.Location
	job      Job
	log      *slog.Logger
}

// New parses spec, a five-field cron expression or a descriptor such as
// "@hourly" or "@every 15m". Times are evaluated in loc.
func New(spec string, loc *time.Location, job Job, log *slog.Logger) (*Scheduler, error) {
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron schedule %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{spec: spec, schedule: schedule, loc: loc, job: job, log: log}, nil
}

// Run performs one run immediately, then one per tick, blocking until ctx is
// cancelled and any in-flight run has returned.
func (s *Scheduler) Run(ctx context.Context) {
	clog := cronLogger{log: s.log}
	job := cron.NewChain(cron.Recover(clog), cron.SkipIfStillRunning(clog)).Then(cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		if err := s.job.Run(ctx); err != nil {
			s.log.Error("scheduled run", "error", err)
		}
	}))

	c := cron.New(cron.WithLocation(s.loc), cron.WithLogger(clog))
	c.Schedule(s.schedule, job)

	s.log.Info("scheduler started", "schedule", s.spec)
	job.Run()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	s.log.Info("scheduler stopped")
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
