package models

// Quiz lifecycle statuses.
const (
	QuizStatusActive    = "active"
	QuizStatusCompleted = "completed"
)

// Quiz generation modes accepted by the server.
const (
	QuizModeDueOnly      = "due_only"
	QuizModeLearningOnly = "learning_only"
	QuizModeNewOnly      = "new_only"
	QuizModeMixed        = "mixed"
)

// QuizQuestion is one entry of a quiz. Response, grade and feedback are
// filled in by the server only after the quiz has been submitted.
type QuizQuestion struct {
	Question string `json:"question"`
	Response string `json:"response,omitempty"`
	Grade    *int   `json:"grade,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// Quiz is a generated set of questions drawn from one or more notes'
// concepts. Name may be empty; the server does not always assign one.
type Quiz struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Status    string         `json:"status"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

// CreateQuizRequest is the payload of POST /quizzes.
type CreateQuizRequest struct {
	NoteIDs       []string `json:"note_ids"`
	ConceptLimit  int      `json:"concept_limit"`
	QuestionLimit int      `json:"question_limit"`
	Mode          string   `json:"mode"`
}
