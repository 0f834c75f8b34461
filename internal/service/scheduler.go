package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is a unit of background work run on a fixed interval
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// scheduler is the concrete implementation of Scheduler
type scheduler struct {
	tasks   []Task
	log     zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func newScheduler(log zerolog.Logger) *scheduler {
	return &scheduler{
		log: log.With().Str("service", "scheduler").Logger(),
	}
}

// Add registers a task. Tasks with a non-positive interval are ignored.
func (s *scheduler) Add(task Task) {
	if task.Interval <= 0 || task.Run == nil {
		s.log.Warn().Str("task", task.Name).Msg("Task disabled")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// StartProcessor runs every task on its ticker until ctx is cancelled or
// StopProcessor is called. It blocks.
func (s *scheduler) StartProcessor(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	tasks := append([]Task(nil), s.tasks...)
	for _, task := range tasks {
		s.wg.Add(1)
		go s.loop(runCtx, task)
	}
	s.mu.Unlock()

	s.log.Info().Int("tasks", len(tasks)).Msg("Background processor started")

	<-runCtx.Done()
	s.log.Info().Msg("Background processor stopping")
}

// StopProcessor stops the processor and waits for running tasks to finish
func (s *scheduler) StopProcessor() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("Background processor stopped")
}

func (s *scheduler) loop(ctx context.Context, task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runTask(ctx, task)
		}
	}
}

// runTask runs one iteration, recovering from panics so one bad run does not
// take the process down
func (s *scheduler) runTask(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("task", task.Name).
				Msg("Background task panicked - recovered")
		}
	}()

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		s.log.Error().Err(err).Str("task", task.Name).Msg("Background task failed")
		return
	}
	s.log.Debug().
		Str("task", task.Name).
		Dur("duration", time.Since(start)).
		Msg("Background task completed")
}
