package penalty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/avenue-police-api/models"
)

func TestSelectionAddIsIdempotent(t *testing.T) {
	s := NewSelection()
	AddViolation(s, table, "art-2")
	AddViolation(s, table, "art-1")
	AddViolation(s, table, "art-2")
	AddViolation(s, table, "missing")

	items := s.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "art-2", items[0].ID)
	assert.Equal(t, "art-1", items[1].ID)
}

func TestSelectionRemove(t *testing.T) {
	s := selectionOf("art-1", "art-2", "art-3")

	RemoveViolation(s, "art-2")
	RemoveViolation(s, "missing")

	items := s.Items()
	assert.Len(t, items, 2)
	assert.Equal(t, "art-1", items[0].ID)
	assert.Equal(t, "art-3", items[1].ID)
	assert.False(t, s.Contains("art-2"))
}

func TestSelectionCopiesByValue(t *testing.T) {
	local := []models.StatuteViolation{{ID: "a", Fine: 10}}
	s := NewSelection().Add(local, "a")

	local[0].Fine = 9999
	items := s.Items()
	items[0].Fine = 1

	assert.Equal(t, int64(10), s.Items()[0].Fine)
}
