// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-membership/internal/config"
	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/internal/service"
	"github.com/MKhiriev/go-membership/internal/store"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// TaskWorker consumes the durable task queue. One poller claims due tasks
// in batches and a bounded pool of goroutines executes them.
type TaskWorker struct {
	tasks    store.TaskRepository
	executor service.TaskService
	reporter Reporter

	cfg config.Workers
	now func() time.Time

	logger *logger.Logger
}

func NewTaskWorker(tasks store.TaskRepository, executor service.TaskService, reporter Reporter, cfg config.Workers, logger *logger.Logger) *TaskWorker {
	return &TaskWorker{
		tasks:    tasks,
		executor: executor,
		reporter: reporter,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// Run polls every PollInterval until ctx is cancelled. A failed poll is
// logged and retried on the next tick.
func (w *TaskWorker) Run(ctx context.Context) error {
	w.logger.Info().
		Dur("poll_interval", w.cfg.PollInterval).
		Int("batch_size", w.cfg.BatchSize).
		Int("concurrency", w.cfg.Concurrency).
		Msg("task worker started")

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		// a full batch means more tasks may be due, so poll again at once
		for {
			n, err := w.ProcessBatch(ctx)
			if err != nil && ctx.Err() == nil {
				w.logger.Err(err).Msg("claiming tasks failed")
			}
			if err != nil || n < w.cfg.BatchSize || ctx.Err() != nil {
				break
			}
		}

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("task worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessBatch claims up to BatchSize due tasks and runs them on at most
// Concurrency goroutines. It returns once every claimed task is settled.
func (w *TaskWorker) ProcessBatch(ctx context.Context) (int, error) {
	claimed, err := w.tasks.Claim(ctx, w.cfg.BatchSize, w.cfg.ClaimTimeout)
	if err != nil {
		return 0, err
	}
	if len(claimed) == 0 {
		return 0, nil
	}

	// claimed tasks are finished even when shutdown starts mid-batch
	runCtx := w.logger.WithContext(context.WithoutCancel(ctx))

	jobs := make(chan store.ClaimedTask)
	var wg sync.WaitGroup
	for range min(w.cfg.Concurrency, len(claimed)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				w.process(runCtx, task)
			}
		}()
	}

	for _, task := range claimed {
		jobs <- task
	}
	close(jobs)
	wg.Wait()

	return len(claimed), nil
}

func (w *TaskWorker) process(ctx context.Context, task store.ClaimedTask) {
	log := w.taskLogger(task)

	execCtx, cancel := context.WithTimeout(ctx, w.cfg.ClaimTimeout)
	err := w.executor.Execute(log.WithContext(execCtx), task.Task)
	cancel()

	if err == nil {
		if err = w.tasks.Complete(ctx, task.ClaimToken); err != nil {
			w.settleFailed(log, err, "completing task failed")
			return
		}
		log.Info().Msg("task completed")
		return
	}

	log.Err(err).Msg("task failed")
	w.reporter.CaptureException(ctx, err, map[string]string{
		"task_kind": string(task.Kind),
		"task_id":   task.ID.String(),
	})

	if service.IsPermanent(err) || task.Attempts >= w.cfg.MaxAttempts {
		if err = w.tasks.DeadLetter(ctx, task.ClaimToken, err.Error()); err != nil {
			w.settleFailed(log, err, "dead-lettering task failed")
			return
		}
		log.Warn().Msg("task dead-lettered")
		return
	}

	runAt := w.now().Add(w.backoff(task.Attempts))
	if err = w.tasks.Reschedule(ctx, task.ClaimToken, runAt, err.Error()); err != nil {
		w.settleFailed(log, err, "rescheduling task failed")
		return
	}
	log.Info().Time("run_at", runAt).Msg("task rescheduled")
}

// backoff returns the delay before the given attempt is retried: BaseBackoff
// doubled per attempt and capped at MaxBackoff.
func (w *TaskWorker) backoff(attempt int) time.Duration {
	b := retry.NewExponential(w.cfg.BaseBackoff)
	if w.cfg.MaxBackoff > 0 {
		b = retry.WithCappedDuration(w.cfg.MaxBackoff, b)
	}

	var delay time.Duration
	for range max(attempt, 1) {
		delay, _ = b.Next()
	}
	return delay
}

func (w *TaskWorker) taskLogger(task store.ClaimedTask) zerolog.Logger {
	fields := w.logger.With().
		Str("task_id", task.ID.String()).
		Str("task_kind", string(task.Kind)).
		Int("attempt", task.Attempts)
	if payload, err := task.DecodePayload(); err == nil && payload.Email != "" {
		fields = fields.Str("email", payload.Email)
	}
	return fields.Logger()
}

// settleFailed logs a failure to record the task outcome. A lost lease means
// another worker reclaimed the task and is not an error of this run.
func (w *TaskWorker) settleFailed(log zerolog.Logger, err error, msg string) {
	if errors.Is(err, store.ErrTaskLeaseLost) {
		log.Warn().Msg("task lease lost")
		return
	}
	log.Err(err).Msg(msg)
}
