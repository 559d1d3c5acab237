package dto

import "time"

type Snapshot struct {
	State     string
	GoalID    string
	SessionID string
	Remaining time.Duration
	Length    time.Duration
	// LastError is the failure of the most recent command or automatic
	// completion, nil once a later command succeeds.
	LastError error
}
