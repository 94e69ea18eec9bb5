package reminder

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for the dedup ledger.
// Records are only ever inserted; nothing in the reminder flow updates or
// deletes them.
type Repository interface {
	// Exists reports whether a ledger record is present for the given
	// opportunity and tier.
	Exists(ctx context.Context, opportunityID uuid.UUID, tier Tier) (bool, error)
	// Create inserts a new ledger record. Implementations must return
	// a duplicate-record error when the (opportunity, tier) pair already
	// exists, so callers can treat a lost race as "already sent".
	Create(ctx context.Context, rec *Record) error
}
