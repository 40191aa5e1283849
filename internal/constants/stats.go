package constants

const (
	// Completion tier thresholds, in percent
	TierFullThreshold   = 100
	TierHighThreshold   = 75
	TierMediumThreshold = 50

	// Streak reward milestones, in days
	SproutMilestone = 3
	BloomMilestone  = 7
	ForestMilestone = 30
)

// StatsLookbackDays bounds how much task history is read for streaks
const StatsLookbackDays = 366
