package domain

import "time"

// Result kinds stored with history entries besides the usage error kinds.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// HistoryEntry is one executed console line.
type HistoryEntry struct {
	ID        int64
	SessionID string
	Command   string
	Result    string // ResultOK, ResultError or a usage.ErrorKind name
	Handled   bool
	Timestamp time.Time
}

// Succeeded reports whether the command ran without error.
func (e HistoryEntry) Succeeded() bool {
	return e.Result == ResultOK
}
