package stats

import (
	"time"

	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/models"
)

// Reward is a streak milestone and whether it has been reached.
type Reward struct {
	Milestone int    `json:"milestone"`
	Label     string `json:"label"`
	Achieved  bool   `json:"achieved"`
}

var rewardTiers = []struct {
	milestone int
	label     string
}{
	{constants.SproutMilestone, "3-Day Sprout"},
	{constants.BloomMilestone, "7-Day Bloom"},
	{constants.ForestMilestone, "30-Day Forest"},
}

// Rewards marks each milestone reached by streak.
func Rewards(streak int) []Reward {
	rewards := make([]Reward, len(rewardTiers))
	for i, t := range rewardTiers {
		rewards[i] = Reward{Milestone: t.milestone, Label: t.label, Achieved: streak >= t.milestone}
	}
	return rewards
}

type completionKeyer interface {
	CompletionKeys() []string
}

// earliestCompletion returns the oldest valid completed key across entities.
func earliestCompletion(entities []models.Entity) (string, bool) {
	earliest := ""
	for _, e := range entities {
		k, ok := e.(completionKeyer)
		if !ok {
			continue
		}
		for _, key := range k.CompletionKeys() {
			if !calendar.IsDateKey(key) {
				continue
			}
			if earliest == "" || key < earliest {
				earliest = key
			}
		}
	}
	return earliest, earliest != ""
}

// allCompleted is true when at least one entity applies on key and every
// applicable entity is completed.
func allCompleted(entities []models.Entity, key string) bool {
	rate := DailyCompletionRate(entities, key)
	return rate.Total > 0 && rate.Completed == rate.Total
}

// StreakLength counts consecutive days, walking back from ref, on which
// every entity was completed. An unfinished ref day does not break a streak
// that ran through the day before. The walk never goes past the earliest
// completion in the data.
func StreakLength(entities []models.Entity, ref time.Time) int {
	if len(entities) == 0 {
		return 0
	}
	floor, ok := earliestCompletion(entities)
	if !ok {
		return 0
	}

	cursor := calendar.StartOfDay(ref)
	if !allCompleted(entities, calendar.FormatDateKey(cursor)) {
		cursor = calendar.AddDays(cursor, -1)
	}

	streak := 0
	for {
		key := calendar.FormatDateKey(cursor)
		if key < floor || !allCompleted(entities, key) {
			return streak
		}
		streak++
		cursor = calendar.AddDays(cursor, -1)
	}
}
