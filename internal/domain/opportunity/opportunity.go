package opportunity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SalesStatusNew is the only status eligible for follow-up reminders; any
// other status means the opportunity has progressed.
const SalesStatusNew = "new"

// Opportunity represents a sales opportunity as read from the CRM.
// Corresponds to the 'opportunities' table; only the columns the reminder
// sweep needs are carried.
type Opportunity struct {
	ID             uuid.UUID
	AssignedTo     uuid.NullUUID
	AssignedToName sql.NullString
	CompanyName    sql.NullString
	ContactName    sql.NullString
	SalesStatus    string
	AssignedAt     sql.NullTime
}

// AssignmentAction is a historical assignment event. The latest action's
// timestamp serves as the assignment instant when assigned_at is null.
type AssignmentAction struct {
	ID            int64
	OpportunityID uuid.UUID
	CreatedAt     time.Time
}
