package session

import "sync"

// Input states for multi-message conversations: the bot asks, the next
// plain message from the chat answers.
const (
	InputNone        = ""
	InputNoteName    = "waiting_for_note_name"
	InputNoteContent = "waiting_for_note_content"
	InputNoteFile    = "waiting_for_note_file"
	InputQuizAnswer  = "waiting_for_quiz_answer"
)

// Selector mirrors a single-select widget: a list of display labels and the
// currently selected one. Buttons only carry their text, so the labels are
// the encoded "name — id" form.
type Selector struct {
	Options []string
	Value   string
}

// Reset replaces the options. When preselect is true the first option
// becomes the current value, otherwise the selection is cleared.
func (s *Selector) Reset(options []string, preselect bool) {
	s.Options = options
	s.Value = ""
	if preselect && len(options) > 0 {
		s.Value = options[0]
	}
}

// Contains reports whether label is one of the current options.
func (s *Selector) Contains(label string) bool {
	for _, o := range s.Options {
		if o == label {
			return true
		}
	}
	return false
}

// AnswerSheet is the in-progress answer table for the loaded quiz. Current
// points at the next unanswered question during the answer conversation.
type AnswerSheet struct {
	Questions []string
	Answers   []string
	Current   int
	Editable  bool
}

// Session is the per-chat UI state. Only the identifiers of the most
// recently processed note and loaded quiz survive between actions. Nothing
// here is persisted; a restart starts every chat from scratch.
type Session struct {
	ChatID int64

	// Set only on successful mutations, never rolled back on failure.
	LastNoteID string
	LastQuizID string

	Notes            Selector
	ActiveQuizzes    Selector
	CompletedQuizzes Selector

	// Multi-select of note labels for quiz creation.
	NoteSelection []string

	Sheet           *AnswerSheet
	InputState      string
	PendingNoteName string
}

// ToggleNote flips a note label in the quiz-creation multi-select and
// reports whether it is now selected.
func (s *Session) ToggleNote(label string) bool {
	for i, l := range s.NoteSelection {
		if l == label {
			s.NoteSelection = append(s.NoteSelection[:i], s.NoteSelection[i+1:]...)
			return false
		}
	}
	s.NoteSelection = append(s.NoteSelection, label)
	return true
}

// NoteSelected reports whether a note label is in the multi-select.
func (s *Session) NoteSelected(label string) bool {
	for _, l := range s.NoteSelection {
		if l == label {
			return true
		}
	}
	return false
}

// Manager hands out one session per chat. Updates for a chat are handled
// one at a time, so sessions themselves need no locking; the map does
// because the reminder scheduler runs on its own goroutine.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the session for a chat, creating it on first use with both
// last ids unset.
func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[chatID]
	if !ok {
		s = &Session{ChatID: chatID}
		m.sessions[chatID] = s
	}
	return s
}
