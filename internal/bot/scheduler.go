package bot

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"personabot/internal/bot/tasks"
	"personabot/internal/config"
)

// Scheduler runs the configured background tasks on cron schedules using
// gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	cfg       *config.SchedulerConfig
	taskMap   map[string]tasks.ScheduledTaskFunc

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler over the registered task map. Tasks are
// not scheduled until Start is called.
func NewScheduler(logger *slog.Logger, cfg *config.SchedulerConfig, taskMap map[string]tasks.ScheduledTaskFunc) (*Scheduler, error) {
	log := logger.With("component", "scheduler")

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		scheduler: s,
		logger:    log,
		cfg:       cfg,
		taskMap:   taskMap,
	}, nil
}

// Start registers every enabled task with a valid schedule and starts the
// scheduler. Misconfigured tasks are skipped with a warning rather than
// blocking startup.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	scheduled := 0
	if s.cfg != nil {
		for name, taskCfg := range s.cfg.Tasks {
			if !taskCfg.Enabled {
				s.logger.Info("Skipping disabled task", "task", name)
				continue
			}

			taskFunc, ok := s.taskMap[name]
			if !ok {
				s.logger.Warn("Configured task not found in registry, skipping", "task", name)
				continue
			}
			if taskCfg.Schedule == "" {
				s.logger.Warn("Task enabled but schedule is empty, skipping", "task", name)
				continue
			}

			_, err := s.scheduler.NewJob(
				gocron.CronJob(taskCfg.Schedule, false),
				gocron.NewTask(s.runTask, taskFunc, name),
				gocron.WithName(name),
			)
			if err != nil {
				s.logger.Error("Failed to schedule task", "task", name, "schedule", taskCfg.Schedule, "error", err)
				continue
			}

			s.logger.Info("Scheduled task", "task", name, "schedule", taskCfg.Schedule)
			scheduled++
		}
	}

	s.scheduler.Start()
	s.running = true
	s.logger.Info("Scheduler started", "tasks_scheduled", scheduled)
	return nil
}

// runTask wraps a task invocation with timing and error logging.
func (s *Scheduler) runTask(taskFunc tasks.ScheduledTaskFunc, name string) {
	ctx := context.Background()
	s.logger.Info("Running scheduled task", "task", name)
	start := time.Now()

	if err := taskFunc(ctx); err != nil {
		s.logger.Error("Scheduled task failed", "task", name, "error", err, "duration", time.Since(start))
		return
	}

	s.logger.Info("Finished scheduled task", "task", name, "duration", time.Since(start))
}

// Stop shuts the scheduler down, waiting for running jobs to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.scheduler.Shutdown()
	s.running = false
	if err != nil {
		return fmt.Errorf("scheduler shutdown: %w", err)
	}

	s.logger.Info("Scheduler stopped")
	return nil
}
