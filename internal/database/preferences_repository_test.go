package database

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	prev := DB
	DB = db
	require.NoError(t, initializeSchema())

	t.Cleanup(func() {
		db.Close()
		DB = prev
	})
}

func TestGetChatPreferencesDefaults(t *testing.T) {
	setupTestDB(t)

	prefs, err := GetChatPreferences(context.Background(), 12345)
	require.NoError(t, err)

	assert.Equal(t, int64(12345), prefs.ChatID)
	assert.Equal(t, DefaultConceptLimit, prefs.ConceptLimit)
	assert.Equal(t, DefaultQuestionLimit, prefs.QuestionLimit)
	assert.Equal(t, DefaultMode, prefs.Mode)
	assert.Equal(t, DefaultReminderHour, prefs.ReminderHour)
	assert.False(t, prefs.RemindersEnabled)
}

func TestSaveAndGetChatPreferences(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	err := SaveChatPreferences(ctx, &ChatPreferences{
		ChatID:           100,
		ConceptLimit:     15,
		QuestionLimit:    20,
		Mode:             "due_only",
		RemindersEnabled: true,
		ReminderHour:     18,
	})
	require.NoError(t, err)

	prefs, err := GetChatPreferences(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 15, prefs.ConceptLimit)
	assert.Equal(t, 20, prefs.QuestionLimit)
	assert.Equal(t, "due_only", prefs.Mode)
	assert.True(t, prefs.RemindersEnabled)
	assert.Equal(t, 18, prefs.ReminderHour)
}

func TestSaveChatPreferencesUpsert(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	first := &ChatPreferences{ChatID: 7, ConceptLimit: 5, QuestionLimit: 10, Mode: "mixed", ReminderHour: 9}
	require.NoError(t, SaveChatPreferences(ctx, first))

	first.ConceptLimit = 20
	require.NoError(t, SaveChatPreferences(ctx, first))

	prefs, err := GetChatPreferences(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 20, prefs.ConceptLimit)
}

func TestGetReminderChats(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, SaveChatPreferences(ctx, &ChatPreferences{ChatID: 1, Mode: "mixed", RemindersEnabled: true, ReminderHour: 9}))
	require.NoError(t, SaveChatPreferences(ctx, &ChatPreferences{ChatID: 2, Mode: "mixed", RemindersEnabled: true, ReminderHour: 18}))
	require.NoError(t, SaveChatPreferences(ctx, &ChatPreferences{ChatID: 3, Mode: "mixed", RemindersEnabled: false, ReminderHour: 9}))

	chats, err := GetReminderChats(ctx, 9)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, int64(1), chats[0].ChatID)
}
