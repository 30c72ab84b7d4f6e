package display

import (
	"testing"

	"github.com/example/conceptbot/pkg/models"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestConceptRowsDifficultyRescale(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want string
	}{
		{name: "minimum maps to zero", raw: 1, want: "0.00"},
		{name: "midpoint maps to fifty", raw: 5.5, want: "50.00"},
		{name: "maximum maps to hundred", raw: 10, want: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ConceptRows([]models.Concept{
				{Name: "c", SRSInfo: &models.SRSInfo{Difficulty: floatPtr(tt.raw)}},
			})
			assert.Equal(t, tt.want, table.Rows[0][3])
		})
	}
}

func TestConceptRowsMissingSRS(t *testing.T) {
	table := ConceptRows([]models.Concept{
		{Name: "bare", Content: "no scheduling yet"},
	})

	assert.Equal(t, []string{"bare", "no scheduling yet", "", "", "", ""}, table.Rows[0])
}

func TestConceptRowsZeroValuesHidden(t *testing.T) {
	// Zero stability and difficulty mean "not yet reviewed" and stay blank
	table := ConceptRows([]models.Concept{
		{Name: "fresh", SRSInfo: &models.SRSInfo{
			Stability:  floatPtr(0),
			Difficulty: floatPtr(0),
		}},
	})

	assert.Equal(t, "", table.Rows[0][2])
	assert.Equal(t, "", table.Rows[0][3])
}

func TestConceptRowsStabilityRounding(t *testing.T) {
	table := ConceptRows([]models.Concept{
		{SRSInfo: &models.SRSInfo{Stability: floatPtr(3.14159)}},
	})
	assert.Equal(t, "3.14", table.Rows[0][2])
}

func TestConceptRowsDateFormats(t *testing.T) {
	tests := []struct {
		name string
		due  string
		want string
	}{
		{name: "rfc3339", due: "2026-03-15T10:30:00Z", want: "2026-03-15"},
		{name: "no timezone", due: "2026-03-15T10:30:00", want: "2026-03-15"},
		{name: "date only", due: "2026-03-15", want: "2026-03-15"},
		{name: "garbage", due: "next tuesday", want: ""},
		{name: "empty", due: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ConceptRows([]models.Concept{
				{SRSInfo: &models.SRSInfo{Due: tt.due}},
			})
			assert.Equal(t, tt.want, table.Rows[0][4])
		})
	}
}

func TestCompletedQuizRows(t *testing.T) {
	table := CompletedQuizRows([]models.QuizQuestion{
		{Question: "What is ATP?", Response: "Energy carrier", Grade: intPtr(5), Feedback: "Correct"},
		{Question: "Ungraded", Response: "?"},
	})

	assert.Equal(t, []string{"What is ATP?", "Energy carrier", "5", "Correct"}, table.Rows[0])
	assert.Equal(t, "", table.Rows[1][2])
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "(empty)", Table{Headers: []string{"A"}}.Render())
}

func TestRenderSkipsEmptyCells(t *testing.T) {
	table := Table{
		Headers: []string{"Name", "Status"},
		Rows:    [][]string{{"Biology", ""}},
	}

	out := table.Render()
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "Name: Biology")
	assert.NotContains(t, out, "Status")
}
