package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Quiz defaults used until a chat changes them.
const (
	DefaultConceptLimit  = 5
	DefaultQuestionLimit = 10
	DefaultMode          = "mixed"
	DefaultReminderHour  = 9
)

// rebind converts ? placeholders to $n for PostgreSQL if needed
func rebind(query string) string {
	if DB.DriverName() == "postgres" {
		for i := 1; strings.Contains(query, "?"); i++ {
			query = strings.Replace(query, "?", fmt.Sprintf("$%d", i), 1)
		}
	}
	return query
}

// GetChatPreferences retrieves the stored preferences for a chat. Returns
// defaults (not an error) when the chat has none yet.
func GetChatPreferences(ctx context.Context, chatID int64) (*ChatPreferences, error) {
	query := rebind(`
		SELECT chat_id, concept_limit, question_limit, mode, reminders_enabled, reminder_hour, created_at, updated_at
		FROM chat_preferences
		WHERE chat_id = ?
	`)

	prefs := &ChatPreferences{}
	err := DB.QueryRowContext(ctx, query, chatID).Scan(
		&prefs.ChatID,
		&prefs.ConceptLimit,
		&prefs.QuestionLimit,
		&prefs.Mode,
		&prefs.RemindersEnabled,
		&prefs.ReminderHour,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return &ChatPreferences{
			ChatID:        chatID,
			ConceptLimit:  DefaultConceptLimit,
			QuestionLimit: DefaultQuestionLimit,
			Mode:          DefaultMode,
			ReminderHour:  DefaultReminderHour,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chat preferences: %v", err)
	}

	return prefs, nil
}

// SaveChatPreferences inserts or updates the preferences for a chat.
func SaveChatPreferences(ctx context.Context, prefs *ChatPreferences) error {
	query := rebind(`
		INSERT INTO chat_preferences (chat_id, concept_limit, question_limit, mode, reminders_enabled, reminder_hour, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			concept_limit = excluded.concept_limit,
			question_limit = excluded.question_limit,
			mode = excluded.mode,
			reminders_enabled = excluded.reminders_enabled,
			reminder_hour = excluded.reminder_hour,
			updated_at = excluded.updated_at
	`)

	_, err := DB.ExecContext(ctx, query,
		prefs.ChatID,
		prefs.ConceptLimit,
		prefs.QuestionLimit,
		prefs.Mode,
		prefs.RemindersEnabled,
		prefs.ReminderHour,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save chat preferences: %v", err)
	}

	return nil
}

// GetReminderChats returns the preferences of every chat that has reminders
// enabled for the given hour.
func GetReminderChats(ctx context.Context, hour int) ([]ChatPreferences, error) {
	query := rebind(`
		SELECT chat_id, concept_limit, question_limit, mode, reminders_enabled, reminder_hour, created_at, updated_at
		FROM chat_preferences
		WHERE reminders_enabled = true AND reminder_hour = ?
	`)

	rows, err := DB.QueryContext(ctx, query, hour)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder chats: %v", err)
	}
	defer rows.Close()

	var chats []ChatPreferences
	for rows.Next() {
		var prefs ChatPreferences
		err := rows.Scan(
			&prefs.ChatID,
			&prefs.ConceptLimit,
			&prefs.QuestionLimit,
			&prefs.Mode,
			&prefs.RemindersEnabled,
			&prefs.ReminderHour,
			&prefs.CreatedAt,
			&prefs.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chat preferences: %v", err)
		}
		chats = append(chats, prefs)
	}

	return chats, rows.Err()
}
