package database

import (
	"database/sql"
)

// ChatPreferences stores the per-chat quiz defaults and reminder settings.
// These survive restarts, unlike the in-memory session state.
type ChatPreferences struct {
	ChatID           int64
	ConceptLimit     int
	QuestionLimit    int
	Mode             string
	RemindersEnabled bool
	ReminderHour     int
	CreatedAt        sql.NullTime
	UpdatedAt        sql.NullTime
}
