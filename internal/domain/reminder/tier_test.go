package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesOrderAndThresholds(t *testing.T) {
	rules := Rules()

	assert.Equal(t, []Rule{
		{Tier: TierDay1, ThresholdDays: 1, Escalate: false},
		{Tier: TierDay3, ThresholdDays: 3, Escalate: false},
		{Tier: TierDay7Escalation, ThresholdDays: 7, Escalate: true},
	}, rules)
}

func TestRulesReturnsCopy(t *testing.T) {
	rules := Rules()
	rules[0].ThresholdDays = 99

	assert.Equal(t, float64(1), Rules()[0].ThresholdDays)
}

func TestResultAdd(t *testing.T) {
	r := &Result{}
	r.Add(TierDay1)
	r.Add(TierDay3)
	r.Add(TierDay3)
	r.Add(TierDay7Escalation)

	assert.Equal(t, 1, r.Day1)
	assert.Equal(t, 2, r.Day3)
	assert.Equal(t, 1, r.Day7Escalation)
	assert.Equal(t, 4, r.TotalSent())
}
