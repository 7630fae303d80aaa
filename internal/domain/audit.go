package domain

import "time"

// LogEntry is one record of the append-only audit log: a Message plus
// enough metadata to reconstruct the timeline externally. The log is
// write-only from the system's point of view; it exists for debugging
// and audit, and may accumulate indefinitely.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"ts"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
}
