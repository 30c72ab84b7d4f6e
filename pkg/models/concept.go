package models

// SRSInfo carries the spaced-repetition scheduling metadata of a concept.
// Every field is optional: concepts that have never been reviewed arrive
// without it. Timestamps are ISO-8601 strings on the wire.
type SRSInfo struct {
	Stability  *float64 `json:"stability,omitempty"`  // days
	Difficulty *float64 `json:"difficulty,omitempty"` // raw 1-10 scale
	Due        string   `json:"due,omitempty"`
	LastReview string   `json:"last_review,omitempty"`
}

// Concept is a discrete learnable fact derived from a note by server-side
// processing. Read-only from the client's perspective.
type Concept struct {
	Name    string   `json:"name"`
	Content string   `json:"content"`
	SRSInfo *SRSInfo `json:"srs_info,omitempty"`
}
