package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/conceptbot/internal/display"
	"github.com/example/conceptbot/internal/session"
	"github.com/example/conceptbot/pkg/models"
)

// API is the slice of the ConceptCycle client the workflows need. Declared
// here so the coordinator can be exercised against a fake in tests.
type API interface {
	UploadFile(ctx context.Context, filePath, contentType string) (string, error)
	UploadText(ctx context.Context, name, content string) (string, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	GetNoteContent(ctx context.Context, noteID string) (string, error)
	ProcessNote(ctx context.Context, noteID string) (int, error)
	ListConcepts(ctx context.Context, noteID string) ([]models.Concept, error)
	DeleteNote(ctx context.Context, noteID string) (json.RawMessage, error)
	CreateQuiz(ctx context.Context, req models.CreateQuizRequest) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)
	GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error)
	SubmitQuiz(ctx context.Context, quizID string, responses []string) (json.RawMessage, error)
}

// Coordinator turns user actions into API calls, session updates and
// display values. Every workflow returns something to show even on failure,
// and a failed call never corrupts previously recorded identifiers.
type Coordinator struct {
	api API
}

// New creates a coordinator over the given API client.
func New(api API) *Coordinator {
	return &Coordinator{api: api}
}

// UploadText sends a raw text note and returns the new note id, or an
// error-prefixed status. The note list is not refreshed automatically; an
// explicit refresh is required to see the new note.
func (c *Coordinator) UploadText(ctx context.Context, name, content string) string {
	noteID, err := c.api.UploadText(ctx, name, content)
	if err != nil {
		return "❌ " + err.Error()
	}
	return noteID
}

// UploadFile sends a file from disk and returns the new note id, or an
// error-prefixed status.
func (c *Coordinator) UploadFile(ctx context.Context, filePath, contentType string) string {
	noteID, err := c.api.UploadFile(ctx, filePath, contentType)
	if err != nil {
		return "❌ " + err.Error()
	}
	return noteID
}

// RefreshNotes reloads the note list, rebuilds the table rows and resets
// the note selector with the first entry pre-selected. The quiz creation
// multi-select is cleared so stale labels cannot leak into a later
// create-quiz call. On failure both end up empty rather than stale.
func (c *Coordinator) RefreshNotes(ctx context.Context, s *session.Session) (display.Table, error) {
	notes, err := c.api.ListNotes(ctx)
	if err != nil {
		s.Notes.Reset(nil, false)
		s.NoteSelection = nil
		return display.Table{}, err
	}
	s.Notes.Reset(display.EncodeNotes(notes), true)
	s.NoteSelection = nil
	return display.NoteRows(notes), nil
}

// ViewContent fetches the raw content of the selected note. With nothing
// selected it reports a warning without calling the API.
func (c *Coordinator) ViewContent(ctx context.Context, selection string) string {
	noteID := display.DecodeID(selection)
	if noteID == "" {
		return "⚠️ No note selected."
	}
	content, err := c.api.GetNoteContent(ctx, noteID)
	if err != nil {
		return "❌ " + err.Error()
	}
	return content
}

// ProcessNote triggers concept extraction for the selected note. On success
// the note becomes the session's last note; on failure the session is left
// untouched.
func (c *Coordinator) ProcessNote(ctx context.Context, s *session.Session, selection string) string {
	noteID := display.DecodeID(selection)
	if noteID == "" {
		return "⚠️ No note selected."
	}
	count, err := c.api.ProcessNote(ctx, noteID)
	if err != nil {
		return "❌ " + err.Error()
	}
	s.LastNoteID = noteID
	return fmt.Sprintf("✅ Generated %d concepts.", count)
}

// DeleteNote removes the selected note and immediately re-lists what is
// left. The selector comes back with no selection, forcing the user to
// re-pick; if the delete or the re-list fails, the list and selector are
// left empty rather than stale.
func (c *Coordinator) DeleteNote(ctx context.Context, s *session.Session) (string, display.Table) {
	noteID := display.DecodeID(s.Notes.Value)
	if noteID == "" {
		s.Notes.Reset(nil, false)
		return "⚠️ No note selected.", display.Table{}
	}

	if _, err := c.api.DeleteNote(ctx, noteID); err != nil {
		s.Notes.Reset(nil, false)
		s.NoteSelection = nil
		return "❌ " + err.Error(), display.Table{}
	}

	notes, err := c.api.ListNotes(ctx)
	if err != nil {
		s.Notes.Reset(nil, false)
		s.NoteSelection = nil
		return "✅ Note deleted.", display.Table{}
	}
	s.Notes.Reset(display.EncodeNotes(notes), false)
	s.NoteSelection = nil
	return "✅ Note deleted.", display.NoteRows(notes)
}

// LoadConcepts fetches and formats the concepts of the selected note.
func (c *Coordinator) LoadConcepts(ctx context.Context, selection string) (display.Table, error) {
	noteID := display.DecodeID(selection)
	if noteID == "" {
		return display.Table{}, fmt.Errorf("no note selected")
	}
	concepts, err := c.api.ListConcepts(ctx, noteID)
	if err != nil {
		return display.Table{}, err
	}
	return display.ConceptRows(concepts), nil
}
