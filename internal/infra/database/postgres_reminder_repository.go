package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"opportunity_followup_reminders/internal/domain/reminder"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateReminder signals a unique-constraint violation on
// (opportunity_id, reminder_type). The constraint, not the pre-check, is the
// real at-most-once guard: two overlapping sweeps can both pass the
// existence check, but only one insert wins.
var ErrDuplicateReminder = fmt.Errorf("reminder already recorded for (opportunity_id, reminder_type)")

const pqUniqueViolation = pq.ErrorCode("23505")

type PostgresReminderRepository struct {
	db *sql.DB
}

func NewPostgresReminderRepository(db *sql.DB) *PostgresReminderRepository {
	return &PostgresReminderRepository{db: db}
}

func (r *PostgresReminderRepository) Exists(ctx context.Context, opportunityID uuid.UUID, tier reminder.Tier) (bool, error) {
	query := `SELECT EXISTS (
                 SELECT 1 FROM opportunity_followup_reminders
                 WHERE opportunity_id = $1 AND reminder_type = $2)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, opportunityID, string(tier)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking reminder existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresReminderRepository) Create(ctx context.Context, rec *reminder.Record) error {
	query := `INSERT INTO opportunity_followup_reminders (opportunity_id, assignee_user_id, reminder_type)
               VALUES ($1, $2, $3)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, rec.OpportunityID, rec.AssigneeUserID, string(rec.Tier)).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrDuplicateReminder
		}
		return fmt.Errorf("error creating reminder record: %w", err)
	}
	return nil
}
