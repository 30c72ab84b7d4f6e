package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/conceptbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	notes    []models.Note
	concepts map[string][]models.Concept
	err      error
}

func (f *fakeSource) ListNotes(ctx context.Context) ([]models.Note, error) {
	return f.notes, f.err
}

func (f *fakeSource) ListConcepts(ctx context.Context, noteID string) ([]models.Concept, error) {
	if c, ok := f.concepts[noteID]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("no such note")
}

type fakeNotifier struct {
	chatIDs []int64
	counts  []int
}

func (f *fakeNotifier) SendDueReminder(chatID int64, count int) error {
	f.chatIDs = append(f.chatIDs, chatID)
	f.counts = append(f.counts, count)
	return nil
}

func conceptDue(offset time.Duration) models.Concept {
	due := time.Now().Add(offset).Format(time.RFC3339)
	return models.Concept{SRSInfo: &models.SRSInfo{Due: due}}
}

func TestCountDueConcepts(t *testing.T) {
	source := &fakeSource{
		notes: []models.Note{
			{ID: "n1", Status: models.NoteStatusProcessed},
			{ID: "n2", Status: models.NoteStatusUploaded},
			{ID: "n3", Status: models.NoteStatusProcessed},
		},
		concepts: map[string][]models.Concept{
			"n1": {
				conceptDue(-time.Hour),
				conceptDue(time.Hour),
				{}, // no srs_info yet
			},
			"n3": {
				conceptDue(-24 * time.Hour),
			},
		},
	}
	s := New(source, &fakeNotifier{})

	count, err := s.countDueConcepts(context.Background())
	require.NoError(t, err)
	// Only past-due concepts from processed notes count; n2 is never fetched
	assert.Equal(t, 2, count)
}

func TestRunManualCheckNotifiesWhenDue(t *testing.T) {
	source := &fakeSource{
		notes: []models.Note{{ID: "n1", Status: models.NoteStatusProcessed}},
		concepts: map[string][]models.Concept{
			"n1": {conceptDue(-time.Minute)},
		},
	}
	notifier := &fakeNotifier{}
	s := New(source, notifier)

	count, err := s.RunManualCheck(99)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []int64{99}, notifier.chatIDs)
	assert.Equal(t, []int{1}, notifier.counts)
}

func TestRunManualCheckNothingDue(t *testing.T) {
	source := &fakeSource{
		notes: []models.Note{{ID: "n1", Status: models.NoteStatusProcessed}},
		concepts: map[string][]models.Concept{
			"n1": {conceptDue(time.Hour)},
		},
	}
	notifier := &fakeNotifier{}
	s := New(source, notifier)

	count, err := s.RunManualCheck(99)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, notifier.chatIDs, "no reminder when nothing is due")
}
