package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/example/conceptbot/pkg/models"
)

// Table is a rendered block of rows bound for a chat message.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NoteRows builds the note list table.
func NoteRows(notes []models.Note) Table {
	t := Table{Headers: []string{"Name", "Status"}}
	for _, n := range notes {
		t.Rows = append(t.Rows, []string{n.Name, n.Status})
	}
	return t
}

// ConceptRows formats concepts for display. Stability is shown in days,
// difficulty rescaled from the server's raw 1-10 scale to a 0-100
// percentage, timestamps cut down to a date. A missing srs_info or any
// missing sub-field renders as an empty cell.
func ConceptRows(concepts []models.Concept) Table {
	t := Table{Headers: []string{"Name", "Content", "Stability (days)", "Difficulty (%)", "Due", "Last review"}}
	for _, c := range concepts {
		var stability, difficulty, due, lastReview string
		if s := c.SRSInfo; s != nil {
			if s.Stability != nil && *s.Stability != 0 {
				stability = formatFloat(*s.Stability)
			}
			if s.Difficulty != nil && *s.Difficulty != 0 {
				difficulty = formatFloat((*s.Difficulty - 1) / 9 * 100)
			}
			due = formatDay(s.Due)
			lastReview = formatDay(s.LastReview)
		}
		t.Rows = append(t.Rows, []string{c.Name, c.Content, stability, difficulty, due, lastReview})
	}
	return t
}

// AnswerSheetRows builds the answer table for an active quiz: one row per
// question with an empty answer cell.
func AnswerSheetRows(questions []models.QuizQuestion) Table {
	t := Table{Headers: []string{"Question", "Answer"}}
	for _, q := range questions {
		t.Rows = append(t.Rows, []string{q.Question, ""})
	}
	return t
}

// CompletedQuizRows builds the read-only review table for a completed quiz.
func CompletedQuizRows(questions []models.QuizQuestion) Table {
	t := Table{Headers: []string{"Question", "Response", "Grade", "Feedback"}}
	for _, q := range questions {
		grade := ""
		if q.Grade != nil {
			grade = strconv.Itoa(*q.Grade)
		}
		t.Rows = append(t.Rows, []string{q.Question, q.Response, grade, q.Feedback})
	}
	return t
}

// Render formats the table for a chat message. Entries are numbered with
// one "Header: value" line per non-empty cell; Telegram messages are too
// narrow for aligned columns.
func (t Table) Render() string {
	if len(t.Rows) == 0 {
		return "(empty)"
	}

	var b strings.Builder
	for i, row := range t.Rows {
		fmt.Fprintf(&b, "%d.\n", i+1)
		for j, cell := range row {
			if cell == "" || j >= len(t.Headers) {
				continue
			}
			fmt.Fprintf(&b, "  %s: %s\n", t.Headers[j], cell)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatFloat renders a value rounded to 2 decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}

// formatDay renders an ISO-8601 timestamp as YYYY-MM-DD, or "" when the
// value is missing or unparseable.
func formatDay(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
