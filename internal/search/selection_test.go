package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionSet_Capacity(t *testing.T) {
	s := &SelectionSet{}
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		s.Add(id)
	}

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, s.IDs())
	assert.False(t, s.Has("6"))
}

func TestSelectionSet_Toggle(t *testing.T) {
	s := NewSelectionSet("1", "2", "3", "4", "5")

	s.Toggle("6")
	assert.False(t, s.Has("6"), "шестой кандидат не добавляется")

	s.Toggle("3")
	assert.False(t, s.Has("3"))
	assert.Equal(t, 4, s.Len())

	s.Toggle("6")
	assert.True(t, s.Has("6"))
	assert.Equal(t, []string{"1", "2", "4", "5", "6"}, s.IDs())
}

func TestSelectionSet_DuplicatesAndEmpty(t *testing.T) {
	s := NewSelectionSet("1", "1", "", "2")

	assert.Equal(t, []string{"1", "2"}, s.IDs())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionSet_NilIsEmpty(t *testing.T) {
	var s *SelectionSet

	assert.False(t, s.Has("1"))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.IDs())
}

func TestWithSelection_DoesNotMutateCandidate(t *testing.T) {
	c := candidate("1", "Ann")
	sel := NewSelectionSet("1")

	view := WithSelection(c, sel)
	assert.True(t, view.IsSelected)

	sel.Remove("1")
	assert.False(t, WithSelection(c, sel).IsSelected)
	assert.True(t, view.IsSelected, "прошлая проекция не пересчитывается")
}
