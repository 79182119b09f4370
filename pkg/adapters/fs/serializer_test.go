package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/abook/pkg/core"
)

func TestNewSnapshot(t *testing.T) {
	book := core.NewAddressBook()
	name, err := core.NewName("Solo")
	require.NoError(t, err)
	book.Add(core.NewRecord(name))

	snap := NewSnapshot(book)
	assert.Equal(t, SchemaVersion, snap.Version)
	require.Len(t, snap.Records, 1)
	assert.NotNil(t, snap.Records[0].Phones, "empty lists are persisted as [] not null")
	assert.NotNil(t, snap.Records[0].Emails)

	data, err := NewJSONSerializer().Serialize(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"phones": []`)
	assert.NotContains(t, string(data), "null")
}

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()

	t.Run("Does Not Escape HTML", func(t *testing.T) {
		snap := Snapshot{Version: 1, Records: []RecordData{{Name: "A&B <Ltd>", Phones: []string{}, Emails: []string{}}}}
		data, err := s.Serialize(snap)
		require.NoError(t, err)
		assert.Contains(t, string(data), "A&B <Ltd>")
	})

	t.Run("Reports Syntax Errors", func(t *testing.T) {
		_, err := s.Parse(strings.NewReader("{"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid json")
	})
}

func TestYAMLSerializer(t *testing.T) {
	s := NewYAMLSerializer()

	t.Run("Reads Hand Written Book", func(t *testing.T) {
		src := `version: 1
records:
  - name: Ann
    phones: ["123456789"]
    emails: [ann@example.com]
  - name: Bob
`
		snap, err := s.Parse(strings.NewReader(src))
		require.NoError(t, err)

		book, err := snap.Book()
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann", "Bob"}, book.Names())
		assert.Equal(t, []string{
			"Name: Ann, Phones: 123456789, Email: ann@example.com",
			"Name: Bob, Phones: , Email: ",
		}, book.ShowAll())
	})

	t.Run("Empty Document Has No Version", func(t *testing.T) {
		snap, err := s.Parse(bytes.NewReader(nil))
		require.NoError(t, err)
		_, err = snap.Book()
		assert.Error(t, err)
	})

	t.Run("Uses Two Space Indent", func(t *testing.T) {
		data, err := s.Serialize(Snapshot{Version: 1, Records: []RecordData{{Name: "Ann", Phones: []string{"123456789"}, Emails: []string{}}}})
		require.NoError(t, err)
		assert.Contains(t, string(data), "\n  - name: Ann\n")
	})
}

func TestSnapshotBook(t *testing.T) {
	t.Run("Duplicate Names Keep Last", func(t *testing.T) {
		snap := Snapshot{Version: 1, Records: []RecordData{
			{Name: "Ann", Phones: []string{"111111111"}},
			{Name: "Bob"},
			{Name: "Ann", Phones: []string{"222222222"}},
		}}
		book, err := snap.Book()
		require.NoError(t, err)
		assert.Equal(t, []string{"Ann", "Bob"}, book.Names())
		rec, ok := book.Get("Ann")
		require.True(t, ok)
		assert.True(t, rec.HasPhone("222222222"))
	})

	t.Run("Rejects Invalid Values", func(t *testing.T) {
		snap := Snapshot{Version: 1, Records: []RecordData{{Name: "Ann", Phones: []string{"12345"}}}}
		_, err := snap.Book()
		assert.ErrorIs(t, err, core.ErrValidation)
	})

	t.Run("Rejects Future Version", func(t *testing.T) {
		_, err := Snapshot{Version: SchemaVersion + 1}.Book()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported schema version")
	})
}
