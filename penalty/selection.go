package penalty

import "github.com/linesmerrill/avenue-police-api/models"

// Selection is the set of violations picked for a report, keyed by violation id
// and kept in the order they were added. The zero value is empty and ready to use.
type Selection struct {
	items []models.StatuteViolation
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add looks up id in table and appends a copy of it. Unknown ids and ids that
// are already selected are ignored.
func (s *Selection) Add(table []models.StatuteViolation, id string) *Selection {
	if s.Contains(id) {
		return s
	}
	for _, v := range table {
		if v.ID == id {
			s.items = append(s.items, v)
			break
		}
	}
	return s
}

// Remove drops id from the selection if present.
func (s *Selection) Remove(id string) *Selection {
	for i, v := range s.items {
		if v.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	return s
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	for _, v := range s.items {
		if v.ID == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the selected violations in insertion order.
func (s *Selection) Items() []models.StatuteViolation {
	out := make([]models.StatuteViolation, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected violations.
func (s *Selection) Len() int {
	return len(s.items)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = nil
}

// AddViolation adds id from table to selection. See Selection.Add.
func AddViolation(selection *Selection, table []models.StatuteViolation, id string) *Selection {
	return selection.Add(table, id)
}

// RemoveViolation removes id from selection. See Selection.Remove.
func RemoveViolation(selection *Selection, id string) *Selection {
	return selection.Remove(id)
}
