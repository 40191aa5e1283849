package constants

import "time"

const (
	AppName            = "verdant"
	DefaultConfigPath  = "~/.config/verdant/verdant.db"
	DefaultKeyringUser = "database-connection"
	Version            = "v0.3.0"

	// DateFormat is the canonical date key layout (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateKeyLength is the fixed length of every date key
	DateKeyLength = len(DateFormat)

	// HabitSnapshotKey is the fixed key the local snapshot stores habits under
	HabitSnapshotKey = "verdant-habits-data"

	// UserEnvVar names the user when --user is not given
	UserEnvVar = "VERDANT_USER"

	// AnonymousUserID is used when no user can be resolved
	AnonymousUserID = "anonymous"

	// MinNameLength applies to habit and task names
	MinNameLength = 2

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "verdant-"

	// Lock constants
	LockfileName = "verdant.lock"

	// Pomodoro constants
	FocusMinutes = 25
	BreakMinutes = 5
	TickInterval = time.Second

	// FocusDailyGoalMinutes is eight pomodoros; reports scale bars to it
	FocusDailyGoalMinutes = 8 * FocusMinutes
)
