package display

import (
	"strings"

	"github.com/example/conceptbot/pkg/models"
)

// labelSeparator joins a human-readable name with the opaque identifier in
// a selector label. Keyboard buttons only carry their display text back to
// the bot, so the id has to ride along inside the label itself. Decoding
// takes the text after the LAST occurrence, so a name that happens to
// contain the separator still round-trips.
const labelSeparator = " — "

// EncodeNote builds the selector label for a note.
func EncodeNote(n models.Note) string {
	return n.Name + labelSeparator + n.ID
}

// EncodeNotes builds selector labels for a list of notes.
func EncodeNotes(notes []models.Note) []string {
	labels := make([]string, 0, len(notes))
	for _, n := range notes {
		labels = append(labels, EncodeNote(n))
	}
	return labels
}

// EncodeQuiz builds the selector label for a quiz. Unnamed quizzes fall
// back to a short form of their id.
func EncodeQuiz(q models.Quiz) string {
	name := q.Name
	if name == "" {
		short := q.ID
		if len(short) > 8 {
			short = short[:8]
		}
		name = "Quiz " + short
	}
	return name + labelSeparator + q.ID
}

// DecodeID extracts the identifier from a selector label. A value without
// the separator is assumed to already be a bare identifier.
func DecodeID(label string) string {
	if idx := strings.LastIndex(label, labelSeparator); idx >= 0 {
		return label[idx+len(labelSeparator):]
	}
	return label
}

// DecodeIDs decodes a list of selector labels element-wise. A nil or empty
// input yields an empty slice, never an error.
func DecodeIDs(labels []string) []string {
	ids := make([]string, 0, len(labels))
	for _, l := range labels {
		ids = append(ids, DecodeID(l))
	}
	return ids
}
