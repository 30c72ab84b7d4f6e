package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectorReset(t *testing.T) {
	var s Selector

	s.Reset([]string{"a", "b"}, true)
	assert.Equal(t, "a", s.Value)

	s.Reset([]string{"c"}, false)
	assert.Empty(t, s.Value)
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("a"))

	s.Reset(nil, true)
	assert.Empty(t, s.Value)
	assert.Empty(t, s.Options)
}

func TestToggleNote(t *testing.T) {
	s := &Session{}

	assert.True(t, s.ToggleNote("A — n1"))
	assert.True(t, s.ToggleNote("B — n2"))
	assert.True(t, s.NoteSelected("A — n1"))

	// Toggling again removes the label
	assert.False(t, s.ToggleNote("A — n1"))
	assert.False(t, s.NoteSelected("A — n1"))
	assert.Equal(t, []string{"B — n2"}, s.NoteSelection)
}

func TestManagerReturnsSameSession(t *testing.T) {
	m := NewManager()

	s1 := m.Get(42)
	s1.LastNoteID = "note-1"

	s2 := m.Get(42)
	assert.Same(t, s1, s2)
	assert.Equal(t, "note-1", s2.LastNoteID)

	other := m.Get(43)
	assert.NotSame(t, s1, other)
	assert.Empty(t, other.LastNoteID, "new sessions start with no last note")
}
