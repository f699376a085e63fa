package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/record"
)

const fixture = `[
	{"Id": 1, "Name": {"First": "José", "Last": "Álvarez"}, "Contact": {"Business": {"Email": "jose@example.com"}}},
	{"Id": 2, "Name": {"First": "Ada", "Last": "Lovelace"}, "Department": "Research"},
	{"Id": 3, "FullName": "Grace Hopper", "Department": "Navy"}
]`

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(config.DefaultConfig(), nil)
}

func loaded(t *testing.T) *Session {
	t.Helper()
	s := newTestSession(t)
	_, err := s.Load([]byte(fixture), "fixture.json")
	require.NoError(t, err)
	return s
}

func TestLoad_SelectsFirstRecord(t *testing.T) {
	s := newTestSession(t)

	records, err := s.Load([]byte(fixture), "fixture.json")
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "fixture.json", s.Source())

	rec, index, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 0, index)

	doc, err := record.Decode([]byte(fixture))
	require.NoError(t, err)
	assert.True(t, record.Equal(doc.([]any)[0], rec), "select(0) yields the document's first element")
}

func TestLoad_SingleObject(t *testing.T) {
	s := newTestSession(t)

	records, err := s.Load([]byte(`{"Name": "Solo"}`), "solo.json")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, index, ok := s.Active()
	assert.True(t, ok)
	assert.Equal(t, 0, index)
}

func TestLoad_EmptyArray(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Load([]byte(`[]`), "empty.json")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	_, index, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, -1, index)

	result := s.Execute("return typeof Person;")
	require.Nil(t, result.Err)
	assert.Equal(t, "undefined", result.Value)
}

func TestLoad_ParseErrorKeepsState(t *testing.T) {
	s := loaded(t)
	_, err := s.Select(2)
	require.NoError(t, err)

	_, err = s.Load([]byte(`[{"broken": }]`), "broken.json")

	var parseErr *record.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "fixture.json", s.Source())

	_, index, _ := s.Active()
	assert.Equal(t, 2, index)
}

func TestLoad_ScalarDocumentIsParseError(t *testing.T) {
	_, err := newTestSession(t).Load([]byte(`"just a string"`), "scalar.json")

	var parseErr *record.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestSelect(t *testing.T) {
	s := loaded(t)

	rec, err := s.Select(1)
	require.NoError(t, err)
	first, _ := record.Lookup(rec, "Name.First")
	assert.Equal(t, "Ada", first)

	_, index, _ := s.Active()
	assert.Equal(t, 1, index)
}

func TestSelect_OutOfRangeKeepsSelection(t *testing.T) {
	s := loaded(t)
	_, err := s.Select(1)
	require.NoError(t, err)

	for _, bad := range []int{3, 99, -1} {
		_, err := s.Select(bad)

		var selErr *SelectionError
		require.True(t, errors.As(err, &selErr), "index %d", bad)
		assert.Equal(t, bad, selErr.Index)
		assert.Equal(t, 3, selErr.Count)

		_, index, _ := s.Active()
		assert.Equal(t, 1, index, "previous selection stays active")
	}
}

func TestSelectionErrorMessage(t *testing.T) {
	assert.Equal(t, "cannot select record 5: valid range is 0-2", (&SelectionError{Index: 5, Count: 3}).Error())
	assert.Equal(t, "cannot select record 0: no records loaded", (&SelectionError{Index: 0}).Error())
}

func TestExecute_AgainstActiveRecord(t *testing.T) {
	s := loaded(t)
	_, err := s.Select(1)
	require.NoError(t, err)

	result := s.Execute("console.log(Person.Department); return Person.Name.Last.toUpperCase();")

	require.Nil(t, result.Err)
	assert.Equal(t, []string{"Research"}, result.Output)
	assert.Equal(t, "LOVELACE", result.Value)
}

func TestExecute_FailureIsNotFatal(t *testing.T) {
	s := loaded(t)

	failed := s.Execute("return Person.NoSuchField.Sub;")
	require.NotNil(t, failed.Err)
	assert.Contains(t, failed.Err.Message, "undefined")

	ok := s.Execute("return Person.Id;")
	require.Nil(t, ok.Err)
	assert.Equal(t, float64(1), ok.Value)
}

func TestTranscriptAndClear(t *testing.T) {
	s := loaded(t)

	s.Execute("console.log('one');")
	_, err := s.Select(2)
	require.NoError(t, err)
	s.Execute("throw new Error('two');")

	entries := s.Transcript()
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Record)
	assert.Equal(t, []string{"one"}, entries[0].Result.Output)
	assert.Equal(t, 2, entries[1].Record)
	assert.NotNil(t, entries[1].Result.Err)

	s.Clear()
	assert.Empty(t, s.Transcript())
	assert.Equal(t, 3, s.Len(), "clearing output keeps the records")
}

func TestPathsAndSuggest(t *testing.T) {
	s := loaded(t)

	paths := s.Paths()
	require.NotEmpty(t, paths)
	assert.Equal(t, "Id", paths[0].Path)

	suggestions := s.Suggest("Person.Contact.Business.", len("Person.Contact.Business."))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Email", suggestions[0].Label)

	empty := newTestSession(t)
	assert.Nil(t, empty.Paths())
	assert.Len(t, empty.Suggest("Pe", 2), 1, "the binding name completes without a record")
}

func TestRaw(t *testing.T) {
	s := loaded(t)
	_, err := s.Select(2)
	require.NoError(t, err)

	raw, err := s.Raw("")
	require.NoError(t, err)
	assert.Equal(t, `{"Id":3,"FullName":"Grace Hopper","Department":"Navy"}`, string(raw))

	_, err = newTestSession(t).Raw("  ")
	assert.ErrorIs(t, err, ErrNoActiveRecord)
}
