package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/conceptbot/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "secret-token"})
	_, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.ListNotes(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth, "no token configured, no header sent")
}

func TestServerErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error field", body: `{"error": "note not found"}`, want: "note not found"},
		{name: "detail field", body: `{"detail": "invalid quiz"}`, want: "invalid quiz"},
		{name: "plain text body", body: `something broke`, want: "something broke"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(Config{BaseURL: srv.URL})
			_, err := c.GetNoteContent(context.Background(), "missing")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLocalValidationSkipsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	ctx := context.Background()

	_, err := c.UploadText(ctx, "", "content")
	assert.Error(t, err)
	_, err = c.GetNoteContent(ctx, "")
	assert.Error(t, err)
	_, err = c.ProcessNote(ctx, "")
	assert.Error(t, err)
	_, err = c.CreateQuiz(ctx, models.CreateQuizRequest{})
	assert.Error(t, err)
	_, err = c.SubmitQuiz(ctx, "", nil)
	assert.Error(t, err)

	assert.Zero(t, requests, "validation failures must not hit the server")
}

func TestUploadText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notes/text", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"note_id": "note-42"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	id, err := c.UploadText(context.Background(), "Bio", "mitochondria is the powerhouse")
	require.NoError(t, err)
	assert.Equal(t, "note-42", id)
}

func TestUploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("cells divide"), 0644))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "txt", r.FormValue("content_type"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.txt", header.Filename)
		assert.Equal(t, "application/txt", header.Header.Get("Content-Type"))

		w.Write([]byte(`{"note_id": "note-9"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	id, err := c.UploadFile(context.Background(), path, "txt")
	require.NoError(t, err)
	assert.Equal(t, "note-9", id)
}

func TestProcessNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notes/note-1/process", r.URL.Path)
		w.Write([]byte(`{"concepts_generated": 7}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	count, err := c.ProcessNote(context.Background(), "note-1")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestSubmitQuizPayloadAndVerbatimResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quizzes/q1/submit", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"responses": ["a", "b"]}`, string(body))
		w.Write([]byte(`{"grades": [{"grade": 5, "feedback": "good"}], "unknown_field": true}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	result, err := c.SubmitQuiz(context.Background(), "q1", []string{"a", "b"})
	require.NoError(t, err)
	// The grading payload passes through untouched, unknown fields included
	assert.JSONEq(t, `{"grades": [{"grade": 5, "feedback": "good"}], "unknown_field": true}`, string(result))
}

func TestGetQuiz(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quizzes/q1", r.URL.Path)
		w.Write([]byte(`{
			"id": "q1",
			"name": "Midterm",
			"status": "completed",
			"questions": [
				{"question": "Q?", "response": "A", "grade": 4, "feedback": "ok"}
			]
		}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	quiz, err := c.GetQuiz(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizStatusCompleted, quiz.Status)
	require.Len(t, quiz.Questions, 1)
	require.NotNil(t, quiz.Questions[0].Grade)
	assert.Equal(t, 4, *quiz.Questions[0].Grade)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notes", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/"})
	_, err := c.ListNotes(context.Background())
	assert.NoError(t, err)
}
