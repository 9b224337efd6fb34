// Package scheduler drives the daily recall from an hourly timer. Each
// tick reloads the config and fires the workflow only when the stored
// last-run date differs from today, so a failed day keeps retrying and
// config edits take effect without a restart.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/hexwren/resurface/internal/config"
)

// Runner executes the generation workflow for a freshly loaded config.
type Runner func(ctx context.Context, cfg *config.Config) error

// Scheduler owns the hourly gocron job.
type Scheduler struct {
	sched      *gocron.Scheduler
	configPath string
	run        Runner
	now        func() time.Time
}

func New(configPath string, run Runner) *Scheduler {
	return &Scheduler{
		sched:      gocron.NewScheduler(time.Local),
		configPath: configPath,
		run:        run,
		now:        time.Now,
	}
}

// Start registers the hourly job and begins ticking in the background.
// The job runs immediately once (the startup check) and in singleton
// mode, so a generation outlasting the tick interval is not doubled.
func (s *Scheduler) Start() error {
	_, err := s.sched.Every(1).Hour().StartImmediately().SingletonMode().Do(s.tick)
	if err != nil {
		return err
	}
	s.sched.StartAsync()
	return nil
}

// Stop clears the job and releases the timer.
func (s *Scheduler) Stop() {
	s.sched.Clear()
	s.sched.Stop()
}

// tick is one schedule check: reload config, compare dates, maybe run.
// The workflow surfaces its own notices; only infrastructure problems
// are logged here.
func (s *Scheduler) tick() {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		log.Printf("[watch] loading config: %v", err)
		return
	}
	if !cfg.IsNewDay(s.now()) {
		return
	}
	if err := s.run(context.Background(), cfg); err != nil {
		log.Printf("[watch] generation failed: %v", err)
	}
}
