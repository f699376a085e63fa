package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/personpad/internal/record"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{`{"DisplayName": "Dr. Who", "Name": "ignored"}`, "Dr. Who"},
		{`{"Name": {"First": "Ada", "Last": "Lovelace"}}`, "Ada Lovelace"},
		{`{"Name": {"First": "Cher"}}`, "Cher"},
		{`{"FirstName": "Alan", "LastName": "Turing"}`, "Alan Turing"},
		{`{"Name": "  Plain  "}`, "Plain"},
		{`{"Email": "x@example.com"}`, "x@example.com"},
		{`{"Id": 9}`, "record #4"},
		{`[1, 2]`, "record #4"},
	}

	for _, tt := range tests {
		v, err := record.Decode([]byte(tt.doc))
		require.NoError(t, err)
		assert.Equal(t, tt.want, Label(v, 4), "doc %s", tt.doc)
	}
}

func TestSearch(t *testing.T) {
	s := loaded(t)

	t.Run("empty query lists everything", func(t *testing.T) {
		matches := s.Search("")
		require.Len(t, matches, 3)
		assert.Equal(t, "José Álvarez", matches[0].Label)
		assert.Equal(t, "Ada Lovelace", matches[1].Label)
		assert.Equal(t, "Grace Hopper", matches[2].Label)
	})

	t.Run("accent and case insensitive label match", func(t *testing.T) {
		matches := s.Search("jose alv")
		require.Len(t, matches, 1)
		assert.Equal(t, 0, matches[0].Index)
		assert.Empty(t, matches[0].Path)
	})

	t.Run("matches string leaves", func(t *testing.T) {
		matches := s.Search("NAVY")
		require.Len(t, matches, 1)
		assert.Equal(t, 2, matches[0].Index)
		assert.Equal(t, "Department", matches[0].Path)
		assert.Equal(t, "Navy", matches[0].Value)
	})

	t.Run("nested leaf", func(t *testing.T) {
		matches := s.Search("example.com")
		require.Len(t, matches, 1)
		assert.Equal(t, "Contact.Business.Email", matches[0].Path)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Search("zzz"))
	})
}

func TestFold(t *testing.T) {
	assert.Equal(t, fold("jose"), fold("JOSÉ"))
	assert.Equal(t, fold("strasse"), fold("STRASSE"))
	assert.Equal(t, "alvarez", fold("Álvarez"))
}
