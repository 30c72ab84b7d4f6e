package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/conceptbot/internal/display"
	"github.com/example/conceptbot/internal/session"
	"github.com/example/conceptbot/pkg/models"
)

// CreateQuiz builds a quiz over the notes currently in the multi-select and
// initializes an editable answer sheet with one empty answer per question.
// With nothing selected it fails locally without touching the API. On
// success the new quiz becomes the session's last quiz.
func (c *Coordinator) CreateQuiz(ctx context.Context, s *session.Session, conceptLimit, questionLimit int, mode string) (*models.Quiz, error) {
	noteIDs := display.DecodeIDs(s.NoteSelection)
	if len(noteIDs) == 0 {
		return nil, fmt.Errorf("Select at least one note.")
	}

	quiz, err := c.api.CreateQuiz(ctx, models.CreateQuizRequest{
		NoteIDs:       noteIDs,
		ConceptLimit:  conceptLimit,
		QuestionLimit: questionLimit,
		Mode:          mode,
	})
	if err != nil {
		s.Sheet = nil
		return nil, err
	}

	s.LastQuizID = quiz.ID
	s.Sheet = newSheet(quiz.Questions, true)
	return quiz, nil
}

// RefreshQuizzes reloads the quiz list filtered by status and resets the
// matching selector with the first entry pre-selected. On failure the
// selector ends up empty.
func (c *Coordinator) RefreshQuizzes(ctx context.Context, s *session.Session, status string) ([]string, error) {
	sel := &s.ActiveQuizzes
	if status == models.QuizStatusCompleted {
		sel = &s.CompletedQuizzes
	}

	quizzes, err := c.api.ListQuizzes(ctx)
	if err != nil {
		sel.Reset(nil, false)
		return nil, err
	}

	var labels []string
	for _, q := range quizzes {
		if q.Status != status {
			continue
		}
		labels = append(labels, display.EncodeQuiz(q))
	}
	sel.Reset(labels, true)
	return labels, nil
}

// SelectActiveQuiz loads a quiz for answering and records it as the
// session's last quiz. The sheet is editable only while the fetched quiz is
// still active; one that has completed in the meantime is rendered locked.
func (c *Coordinator) SelectActiveQuiz(ctx context.Context, s *session.Session, selection string) (display.Table, error) {
	if selection == "" {
		s.Sheet = nil
		return display.Table{}, nil
	}

	quizID := display.DecodeID(selection)
	quiz, err := c.api.GetQuiz(ctx, quizID)
	if err != nil {
		return display.Table{}, err
	}

	s.LastQuizID = quizID
	s.Sheet = newSheet(quiz.Questions, quiz.Status == models.QuizStatusActive)
	return display.AnswerSheetRows(quiz.Questions), nil
}

// SubmitQuiz sends the collected answers for the session's current quiz and
// returns the grading payload verbatim. The quiz id comes from session
// state; there is no other way to know which quiz the sheet belongs to.
// Both checks below fail locally without calling the API.
func (c *Coordinator) SubmitQuiz(ctx context.Context, s *session.Session) (json.RawMessage, error) {
	if s.LastQuizID == "" {
		return nil, fmt.Errorf("No quiz loaded in this session.")
	}
	if s.Sheet == nil || len(s.Sheet.Answers) == 0 {
		return nil, fmt.Errorf("All questions must be attempted before submission")
	}

	answers := make([]string, 0, len(s.Sheet.Answers))
	for _, a := range s.Sheet.Answers {
		a = strings.TrimSpace(a)
		if a == "" {
			return nil, fmt.Errorf("All questions must be attempted before submission")
		}
		answers = append(answers, a)
	}

	return c.api.SubmitQuiz(ctx, s.LastQuizID, answers)
}

// SelectCompletedQuiz renders a finished quiz read-only: question, response,
// grade and feedback per row. A fetch failure degrades to an empty table
// rather than an error.
func (c *Coordinator) SelectCompletedQuiz(ctx context.Context, selection string) display.Table {
	if selection == "" {
		return display.Table{}
	}
	quiz, err := c.api.GetQuiz(ctx, display.DecodeID(selection))
	if err != nil {
		return display.Table{}
	}
	return display.CompletedQuizRows(quiz.Questions)
}

// newSheet builds a fresh answer sheet with empty answers.
func newSheet(questions []models.QuizQuestion, editable bool) *session.AnswerSheet {
	sheet := &session.AnswerSheet{Editable: editable}
	for _, q := range questions {
		sheet.Questions = append(sheet.Questions, q.Question)
		sheet.Answers = append(sheet.Answers, "")
	}
	return sheet
}
