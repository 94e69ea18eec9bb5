package opportunity

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the read operations the reminder sweep needs on
// opportunities and their related records. Opportunities and tasks are
// mutated elsewhere in the system; this service only reads them.
type Repository interface {
	// ListAssignedNew returns all opportunities with a non-null assignee
	// and sales_status = 'new'.
	ListAssignedNew(ctx context.Context) ([]*Opportunity, error)
	// GetSalesStatus re-reads the current sales status of one opportunity.
	GetSalesStatus(ctx context.Context, id uuid.UUID) (string, error)
	// LatestAssignmentAction returns the most recent assignment action for
	// the opportunity, ordered by creation time descending.
	LatestAssignmentAction(ctx context.Context, opportunityID uuid.UUID) (*AssignmentAction, error)
	// HasDoneFollowUpTask reports whether a follow-up task linked to the
	// opportunity and assignee has been completed.
	HasDoneFollowUpTask(ctx context.Context, opportunityID, assigneeUserID uuid.UUID) (bool, error)
}
