// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-membership/internal/logger"
	"github.com/MKhiriev/go-membership/models"
	"github.com/google/uuid"
)

// taskRepository is the Postgres task queue. Claims are leases: a worker
// holding an expired lease may be overtaken, and every state change after
// the claim is keyed by the claim token so a stale worker cannot clobber
// the new owner.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// Enqueue inserts tasks. Called with a transactional ctx the tasks become
// visible only when the surrounding transaction commits.
func (r *taskRepository) Enqueue(ctx context.Context, tasks ...models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	builder := psql.Insert("tasks").Columns("id", "kind", "payload", "run_at")
	for _, t := range tasks {
		builder = builder.Values(t.ID, string(t.Kind), string(t.Payload), t.RunAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Enqueue").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*taskRepository.Enqueue").Msg("error enqueueing tasks")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().Str("func", "*taskRepository.Enqueue").Int("count", len(tasks)).Msg("tasks enqueued")
	return nil
}

// Claim leases due tasks in run_at order.
func (r *taskRepository) Claim(ctx context.Context, limit int, lease time.Duration) ([]ClaimedTask, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.conn(ctx).QueryContext(ctx, claimTasks, limit, lease.Seconds())
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.Claim").Msg("error claiming tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	claimed := make([]ClaimedTask, 0, limit)
	for rows.Next() {
		var (
			t       ClaimedTask
			kind    string
			payload []byte
		)
		if err := rows.Scan(&t.ID, &kind, &payload, &t.RunAt, &t.Attempts, &t.LastError, &t.CreatedAt, &t.ClaimToken); err != nil {
			log.Err(err).Str("func", "*taskRepository.Claim").Msg("error scanning task")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		t.Kind = models.TaskKind(kind)
		t.Payload = payload
		claimed = append(claimed, t)
	}
	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.Claim").Msg("error iterating tasks")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return claimed, nil
}

// Complete marks the claimed task done.
func (r *taskRepository) Complete(ctx context.Context, claim uuid.UUID) error {
	return r.finish(ctx, "*taskRepository.Complete", completeTask, claim)
}

// Reschedule releases the claim and makes the task due again at runAt.
func (r *taskRepository) Reschedule(ctx context.Context, claim uuid.UUID, runAt time.Time, lastErr string) error {
	return r.finish(ctx, "*taskRepository.Reschedule", rescheduleTask, claim, runAt, lastErr)
}

// DeadLetter parks the claimed task permanently.
func (r *taskRepository) DeadLetter(ctx context.Context, claim uuid.UUID, lastErr string) error {
	return r.finish(ctx, "*taskRepository.DeadLetter", deadLetterTask, claim, lastErr)
}

func (r *taskRepository) finish(ctx context.Context, fn, query string, claim uuid.UUID, args ...any) error {
	res, err := r.db.conn(ctx).ExecContext(ctx, query, append([]any{claim}, args...)...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error updating task")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireAffected(res, ErrTaskLeaseLost)
}
