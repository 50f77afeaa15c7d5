package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/eights/internal/logging"
)

// Task represents a scheduled task
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler manages scheduled tasks
type Scheduler struct {
	tasks   []*Task
	running bool
	mutex   sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *logging.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make([]*Task, 0),
		log:   logging.Default.WithField("component", "scheduler"),
	}
}

// SetLogger replaces the scheduler's logger
func (s *Scheduler) SetLogger(l *logging.Logger) {
	s.log = l
}

// AddTask adds a task to the scheduler. Tasks added after Start run from the next Start.
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(ctx, task)
	}

	s.log.Info("Scheduler started with %d tasks", len(s.tasks))
}

// Stop stops the scheduler and waits for running tasks to return
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	if !s.running {
		s.mutex.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mutex.Unlock()

	s.wg.Wait()
	s.log.Info("Scheduler stopped")
}

// IsRunning reports whether Start has been called without a matching Stop
func (s *Scheduler) IsRunning() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.running
}

// runTask runs a task at the specified interval
func (s *Scheduler) runTask(ctx context.Context, task *Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval)
	defer ticker.Stop()

	// Run the task immediately on startup
	s.log.Debug("Running task %s immediately on startup", task.Name)
	if err := task.Fn(ctx); err != nil {
		s.log.Error("Error running task %s: %v", task.Name, err)
	}

	for {
		select {
		case <-ticker.C:
			s.log.Debug("Running scheduled task: %s", task.Name)
			if err := task.Fn(ctx); err != nil {
				s.log.Error("Error running task %s: %v", task.Name, err)
			}
		case <-ctx.Done():
			s.log.Debug("Task %s stopped", task.Name)
			return
		}
	}
}
