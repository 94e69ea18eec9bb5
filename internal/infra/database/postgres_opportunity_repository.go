package database

import (
	"context"
	"database/sql"
	"fmt"

	"opportunity_followup_reminders/internal/domain/opportunity"

	"github.com/google/uuid"
)

// Custom errors specific to opportunity lookups
var ErrOpportunityNotFound = fmt.Errorf("opportunity not found")
var ErrAssignmentActionNotFound = fmt.Errorf("no assignment action found for opportunity")

type PostgresOpportunityRepository struct {
	db *sql.DB
}

func NewPostgresOpportunityRepository(db *sql.DB) *PostgresOpportunityRepository {
	return &PostgresOpportunityRepository{db: db}
}

func (r *PostgresOpportunityRepository) ListAssignedNew(ctx context.Context) ([]*opportunity.Opportunity, error) {
	query := `SELECT id, assigned_to, assigned_to_name, company_name, contact_name, sales_status, assigned_at
               FROM opportunities
               WHERE assigned_to IS NOT NULL AND sales_status = $1`
	rows, err := r.db.QueryContext(ctx, query, opportunity.SalesStatusNew)
	if err != nil {
		return nil, fmt.Errorf("error listing assigned new opportunities: %w", err)
	}
	defer rows.Close()

	opps := make([]*opportunity.Opportunity, 0)
	for rows.Next() {
		o := &opportunity.Opportunity{}
		if err := rows.Scan(&o.ID, &o.AssignedTo, &o.AssignedToName, &o.CompanyName, &o.ContactName, &o.SalesStatus, &o.AssignedAt); err != nil {
			return nil, fmt.Errorf("error scanning opportunity: %w", err)
		}
		opps = append(opps, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opportunities: %w", err)
	}
	return opps, nil
}

func (r *PostgresOpportunityRepository) GetSalesStatus(ctx context.Context, id uuid.UUID) (string, error) {
	query := `SELECT sales_status FROM opportunities WHERE id = $1`
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrOpportunityNotFound
		}
		return "", fmt.Errorf("error getting sales status: %w", err)
	}
	return status, nil
}

func (r *PostgresOpportunityRepository) LatestAssignmentAction(ctx context.Context, opportunityID uuid.UUID) (*opportunity.AssignmentAction, error) {
	query := `SELECT id, opportunity_id, created_at
               FROM opportunity_assignment_actions
               WHERE opportunity_id = $1
               ORDER BY created_at DESC
               LIMIT 1`
	a := &opportunity.AssignmentAction{}
	err := r.db.QueryRowContext(ctx, query, opportunityID).Scan(&a.ID, &a.OpportunityID, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAssignmentActionNotFound
		}
		return nil, fmt.Errorf("error getting latest assignment action: %w", err)
	}
	return a, nil
}

func (r *PostgresOpportunityRepository) HasDoneFollowUpTask(ctx context.Context, opportunityID, assigneeUserID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
                 SELECT 1 FROM employee_tasks
                 WHERE opportunity_id = $1 AND employee_id = $2 AND status = 'done')`
	var done bool
	err := r.db.QueryRowContext(ctx, query, opportunityID, assigneeUserID).Scan(&done)
	if err != nil {
		return false, fmt.Errorf("error checking follow-up task completion: %w", err)
	}
	return done, nil
}
