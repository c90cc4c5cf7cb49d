package domain

import "time"

// ChangeOperation describes one applied dashboard intent in the session activity log.
type ChangeOperation string

// ChangeOperation values recorded by the session journal.
const (
	ChangeOperationMode     ChangeOperation = "mode"
	ChangeOperationCount    ChangeOperation = "count"
	ChangeOperationDelete   ChangeOperation = "delete"
	ChangeOperationArrange  ChangeOperation = "arrange"
	ChangeOperationAssign   ChangeOperation = "assign"
	ChangeOperationSelect   ChangeOperation = "select"
	ChangeOperationCategory ChangeOperation = "category"
)

// ChangeEvent represents a single activity-log entry for the running session.
type ChangeEvent struct {
	ID         string
	SessionID  string
	Operation  ChangeOperation
	TileID     int
	Summary    string
	Metadata   map[string]string
	OccurredAt time.Time
}
