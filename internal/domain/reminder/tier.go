package reminder

// Tier identifies one stage of the follow-up reminder sequence.
type Tier string

const (
	TierDay1           Tier = "day1"
	TierDay3           Tier = "day3"
	TierDay7Escalation Tier = "day7_escalation"
)

// Rule describes when a tier fires and whether it escalates to managers
// in addition to the assignee.
type Rule struct {
	Tier          Tier
	ThresholdDays float64
	Escalate      bool
}

// rules is the ordered tier table. The sweep walks it front to back, so a
// coarse sweep interval can fire several tiers for one opportunity in a
// single run. Adding a future tier (say day14_final) is a new row here.
var rules = []Rule{
	{Tier: TierDay1, ThresholdDays: 1, Escalate: false},
	{Tier: TierDay3, ThresholdDays: 3, Escalate: false},
	{Tier: TierDay7Escalation, ThresholdDays: 7, Escalate: true},
}

// Rules returns the tier table in firing order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
