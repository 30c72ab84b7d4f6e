package models

// Note statuses reported by the server.
const (
	NoteStatusUploaded  = "uploaded"
	NoteStatusProcessed = "processed"
)

// Note is a unit of uploaded study material. Notes are owned by the
// ConceptCycle server; the client only ever holds transient copies.
type Note struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Content string `json:"content,omitempty"`
}
