package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/conceptbot/pkg/models"
)

// Timeouts for API calls. Concept extraction runs an LLM pipeline on the
// server and can take a while, so processing gets its own client.
const (
	defaultTimeout    = 30 * time.Second
	processingTimeout = 120 * time.Second
)

// Config holds the connection settings for the ConceptCycle API. Values are
// read once at startup and never change for the lifetime of the process.
type Config struct {
	BaseURL string
	Token   string
}

// Client talks to the ConceptCycle REST API. All methods validate their
// required inputs locally and fail fast before touching the network; a
// non-2xx response comes back as an error carrying the server's message.
type Client struct {
	baseURL       string
	token         string
	httpClient    *http.Client
	processClient *http.Client
}

// New creates an API client from the given config.
func New(cfg Config) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         cfg.Token,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		processClient: &http.Client{Timeout: processingTimeout},
	}
}

// do sends a request with the bearer token attached (when configured) and
// decodes the JSON response into out.
func (c *Client) do(ctx context.Context, client *http.Client, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(data)
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %v", err)
		}
	}
	return nil
}

// serverMessage pulls a human-readable message out of an error response
// body. The server is not consistent about the field name.
func serverMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		switch {
		case body.Error != "":
			return body.Error
		case body.Message != "":
			return body.Message
		case body.Detail != "":
			return body.Detail
		}
	}
	return strings.TrimSpace(string(data))
}

// UploadFile uploads a file from disk as a new note. contentType is the
// server-side type hint (txt, pdf, docx, pptx, png, jpeg), sent both as the
// form field and as the MIME subtype of the file part.
func (c *Client) UploadFile(ctx context.Context, filePath, contentType string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("no file selected")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(filePath)))
	header.Set("Content-Type", "application/"+contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	if err := w.WriteField("content_type", contentType); err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %v", err)
	}

	var out struct {
		NoteID string `json:"note_id"`
	}
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/notes", &buf, w.FormDataContentType(), &out); err != nil {
		return "", err
	}
	return out.NoteID, nil
}

// UploadText uploads raw text as a new note and returns the note id.
func (c *Client) UploadText(ctx context.Context, name, content string) (string, error) {
	if name == "" || content == "" {
		return "", fmt.Errorf("both name and content are required")
	}

	payload, err := json.Marshal(map[string]string{"name": name, "content": content})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	var out struct {
		NoteID string `json:"note_id"`
	}
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/notes/text", bytes.NewReader(payload), "application/json", &out); err != nil {
		return "", err
	}
	return out.NoteID, nil
}

// ListNotes returns all notes known to the server.
func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/notes", nil, "", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNoteContent fetches the raw content of a note.
func (c *Client) GetNoteContent(ctx context.Context, noteID string) (string, error) {
	if noteID == "" {
		return "", fmt.Errorf("note id is required")
	}

	var out struct {
		Content string `json:"content"`
	}
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/notes/"+noteID, nil, "", &out); err != nil {
		return "", err
	}
	return out.Content, nil
}

// ProcessNote triggers server-side concept extraction for a note and returns
// how many concepts were generated. Uses the long-timeout client.
func (c *Client) ProcessNote(ctx context.Context, noteID string) (int, error) {
	if noteID == "" {
		return 0, fmt.Errorf("note id is required")
	}

	var out struct {
		ConceptsGenerated int `json:"concepts_generated"`
	}
	if err := c.do(ctx, c.processClient, http.MethodPost, "/notes/"+noteID+"/process", nil, "", &out); err != nil {
		return 0, err
	}
	return out.ConceptsGenerated, nil
}

// ListConcepts returns the concepts derived from a note.
func (c *Client) ListConcepts(ctx context.Context, noteID string) ([]models.Concept, error) {
	if noteID == "" {
		return nil, fmt.Errorf("note id is required")
	}

	var concepts []models.Concept
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/notes/"+noteID+"/concepts", nil, "", &concepts); err != nil {
		return nil, err
	}
	return concepts, nil
}

// DeleteNote removes a note. The server's response body is returned as-is.
func (c *Client) DeleteNote(ctx context.Context, noteID string) (json.RawMessage, error) {
	if noteID == "" {
		return nil, fmt.Errorf("note id is required")
	}

	var out json.RawMessage
	if err := c.do(ctx, c.httpClient, http.MethodDelete, "/notes/"+noteID, nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateQuiz asks the server to generate a quiz over the given notes.
func (c *Client) CreateQuiz(ctx context.Context, req models.CreateQuizRequest) (*models.Quiz, error) {
	if len(req.NoteIDs) == 0 {
		return nil, fmt.Errorf("at least one note id is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	var quiz models.Quiz
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/quizzes", bytes.NewReader(payload), "application/json", &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListQuizzes returns all quizzes, active and completed.
func (c *Client) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/quizzes", nil, "", &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// GetQuiz fetches a single quiz with its questions.
func (c *Client) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	if quizID == "" {
		return nil, fmt.Errorf("quiz id is required")
	}

	var quiz models.Quiz
	if err := c.do(ctx, c.httpClient, http.MethodGet, "/quizzes/"+quizID, nil, "", &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SubmitQuiz sends the answers for a quiz, ordered to match the question
// order, and returns the grading payload verbatim.
func (c *Client) SubmitQuiz(ctx context.Context, quizID string, responses []string) (json.RawMessage, error) {
	if quizID == "" {
		return nil, fmt.Errorf("quiz id is required")
	}

	payload, err := json.Marshal(map[string][]string{"responses": responses})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	var out json.RawMessage
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/quizzes/"+quizID+"/submit", bytes.NewReader(payload), "application/json", &out); err != nil {
		return nil, err
	}
	return out, nil
}
