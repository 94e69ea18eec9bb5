package reminder

import "github.com/google/uuid"

// SweepError records a failure while processing one tier of one opportunity.
// It never aborts the sweep; the scheduler logs the collected errors.
type SweepError struct {
	OpportunityID uuid.UUID `json:"opportunity_id"`
	Tier          Tier      `json:"reminder_type"`
	Message       string    `json:"message"`
}

// Result aggregates the outcome of one sweep.
type Result struct {
	Day1           int          `json:"day1"`
	Day3           int          `json:"day3"`
	Day7Escalation int          `json:"day7_escalation"`
	Errors         []SweepError `json:"errors,omitempty"`
}

// Add increments the counter for the given tier.
func (r *Result) Add(t Tier) {
	switch t {
	case TierDay1:
		r.Day1++
	case TierDay3:
		r.Day3++
	case TierDay7Escalation:
		r.Day7Escalation++
	}
}

// TotalSent returns the number of reminders sent across all tiers.
func (r *Result) TotalSent() int {
	return r.Day1 + r.Day3 + r.Day7Escalation
}

// WritePolicy controls when a ledger record is written relative to the send
// attempt. The original flow wrote the record once the attempt completed,
// even if no email actually reached anyone; WriteOnAttempt preserves that,
// WriteOnSuccess only records tiers where at least one send succeeded.
type WritePolicy string

const (
	WriteOnAttempt WritePolicy = "attempt"
	WriteOnSuccess WritePolicy = "success"
)
