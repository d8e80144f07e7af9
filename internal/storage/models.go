package storage

import (
	"fmt"
	"time"
)

// TimestampLayout is the local wall-clock format stamped on every entry.
const TimestampLayout = "2006-01-02 15:04:05"

// Reserved entry fields.
const (
	FieldAnalysisType = "analysis_type"
	FieldTimestamp    = "timestamp"
	FieldEntryID      = "entry_id"
)

// Entry is one persisted analysis result.
type Entry map[string]any

// AnalysisType returns the kind tag of the entry.
func (e Entry) AnalysisType() string {
	s, _ := e[FieldAnalysisType].(string)
	return s
}

// Timestamp parses the append time in local time.
func (e Entry) Timestamp() (time.Time, error) {
	s, ok := e[FieldTimestamp].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("entry has no %s", FieldTimestamp)
	}
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// AppendResult describes the outcome of one append.
type AppendResult struct {
	Path    string
	Entries int
	// Reset is set when an unreadable log was discarded before appending.
	Reset bool
	// Rotated holds the archive path when the previous log was rotated away.
	Rotated string
}

// Report is a persisted log discovered on disk.
type Report struct {
	Identity string
	Path     string
	Size     int64
	ModTime  time.Time
	// Archived marks a log rotated away from its identity's current file.
	Archived bool
}
