package display

import (
	"testing"

	"github.com/example/conceptbot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestEncodeNote(t *testing.T) {
	n := models.Note{ID: "note-123", Name: "Biology Chapter 4"}
	assert.Equal(t, "Biology Chapter 4 — note-123", EncodeNote(n))
}

func TestDecodeID(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{
			name:  "plain label",
			label: "Biology Chapter 4 — note-123",
			want:  "note-123",
		},
		{
			name:  "name containing the separator",
			label: "History — Part One — note-456",
			want:  "note-456",
		},
		{
			name:  "bare id without separator",
			label: "note-789",
			want:  "note-789",
		},
		{
			name:  "empty string",
			label: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeID(tt.label))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	notes := []models.Note{
		{ID: "a1", Name: "Simple"},
		{ID: "b2", Name: "Name — with separator"},
		{ID: "c3", Name: ""},
	}

	labels := EncodeNotes(notes)
	assert.Len(t, labels, 3)

	for i, label := range labels {
		assert.Equal(t, notes[i].ID, DecodeID(label))
	}
}

func TestEncodeQuiz(t *testing.T) {
	named := models.Quiz{ID: "quiz-abc", Name: "Midterm review"}
	assert.Equal(t, "Midterm review — quiz-abc", EncodeQuiz(named))

	unnamed := models.Quiz{ID: "0123456789abcdef"}
	assert.Equal(t, "Quiz 01234567 — 0123456789abcdef", EncodeQuiz(unnamed))
	assert.Equal(t, "0123456789abcdef", DecodeID(EncodeQuiz(unnamed)))
}

func TestDecodeIDs(t *testing.T) {
	got := DecodeIDs([]string{"A — id1", "B — id2"})
	assert.Equal(t, []string{"id1", "id2"}, got)

	// nil input still yields a non-nil, empty slice
	empty := DecodeIDs(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
