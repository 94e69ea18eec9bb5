package reminder

import (
	"time"

	"github.com/google/uuid"
)

// Record is one row of the dedup ledger. Its existence for a given
// (opportunity, tier) pair means that tier has already been sent and must
// never be sent again.
// Corresponds to the 'opportunity_followup_reminders' table.
type Record struct {
	ID             int64
	OpportunityID  uuid.UUID
	AssigneeUserID uuid.UUID
	Tier           Tier
	CreatedAt      time.Time
}
