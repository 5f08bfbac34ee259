package testlogging

import "slices"

// LogEntry is one accepted log call recorded by a CacheLogger. Entries are
// never modified after they are created.
type LogEntry struct {
	Level   Level
	EventID EventID
	State   State
	Err     error
	Message string

	scopes []any
}

func newLogEntry(rec Record, scopes []any) *LogEntry {
	return &LogEntry{
		Level:   rec.Level,
		EventID: rec.EventID,
		State:   slices.Clone(rec.State),
		Err:     rec.Err,
		Message: rec.Message,
		scopes:  scopes,
	}
}

// Scopes returns the states of the scopes open when the entry was logged,
// innermost first.
func (e *LogEntry) Scopes() []any {
	return slices.Clone(e.scopes)
}
