package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

func newTestStore(t *testing.T) DocumentStore {
	t.Helper()
	return NewDocumentStore(logger.NewNop())
}

func TestDocumentStore_TenantIsolation(t *testing.T) {
	store := newTestStore(t)

	scopeA := ScopeKey{UserID: "user-a", ElderID: "elder-1", Filename: "notes.pdf"}
	scopeB := ScopeKey{UserID: "user-b", ElderID: "elder-1", Filename: "notes.pdf"}

	require.NoError(t, store.Put(scopeA, DocEntry{Category: CategoryNotes, Text: "alpha"}))
	require.NoError(t, store.Put(scopeB, DocEntry{Category: CategoryNotes, Text: "beta"}))

	entryA, err := store.Get(scopeA, CategoryNotes)
	require.NoError(t, err)
	assert.Equal(t, "alpha", entryA.Text)

	entryB, err := store.Get(scopeB, CategoryNotes)
	require.NoError(t, err)
	assert.Equal(t, "beta", entryB.Text)

	assert.Len(t, store.List("user-a", "elder-1"), 1)
	assert.Len(t, store.List("user-b", "elder-1"), 1)
	assert.Empty(t, store.List("user-a", "elder-2"))
}

func TestDocumentStore_SameFilenameAcrossCategories(t *testing.T) {
	store := newTestStore(t)
	scope := ScopeKey{UserID: "u", ElderID: "e", Filename: "doc.pdf"}

	require.NoError(t, store.Put(scope, DocEntry{Category: CategoryNotes, Text: "notes version"}))
	require.NoError(t, store.Put(scope, DocEntry{Category: CategoryNarrative, Text: "story version"}))

	entry, ok := store.FindText(scope)
	require.True(t, ok)
	assert.Equal(t, CategoryNotes, entry.Category)
	assert.Equal(t, "notes version", entry.Text)

	require.NoError(t, store.Delete(scope, CategoryNotes))
	entry, ok = store.FindText(scope)
	require.True(t, ok)
	assert.Equal(t, CategoryNarrative, entry.Category)
}

func TestDocumentStore_DeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	scope := ScopeKey{UserID: "u", ElderID: "e", Filename: "gone.pdf"}

	require.NoError(t, store.Delete(scope, CategoryNotes))

	require.NoError(t, store.Put(scope, DocEntry{Category: CategoryNotes, Text: "x"}))
	require.NoError(t, store.Delete(scope, CategoryNotes))
	require.NoError(t, store.Delete(scope, CategoryNotes))

	_, err := store.Get(scope, CategoryNotes)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentStore_RejectsUnknownCategory(t *testing.T) {
	store := newTestStore(t)
	scope := ScopeKey{UserID: "u", ElderID: "e", Filename: "f"}

	err := store.Put(scope, DocEntry{Category: Category("video"), Text: "x"})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = store.Get(scope, Category(""))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestDocumentStore_TextEntriesOrdering(t *testing.T) {
	store := newTestStore(t)
	put := func(filename string, cat Category) {
		scope := ScopeKey{UserID: "u", ElderID: "e", Filename: filename}
		require.NoError(t, store.Put(scope, DocEntry{Category: cat, Text: filename}))
	}
	put("b.pdf", CategoryNarrative)
	put("a.pdf", CategoryNarrative)
	put("z.pdf", CategoryNotes)
	scope := ScopeKey{UserID: "u", ElderID: "e", Filename: "song.mp3"}
	require.NoError(t, store.Put(scope, DocEntry{Category: CategoryMedia, Path: "/tmp/none"}))

	entries := store.TextEntries("u", "e")
	require.Len(t, entries, 3)
	assert.Equal(t, "z.pdf", entries[0].Filename)
	assert.Equal(t, "a.pdf", entries[1].Filename)
	assert.Equal(t, "b.pdf", entries[2].Filename)

	media := store.MediaEntries("u", "e")
	require.Len(t, media, 1)
	assert.Equal(t, "song.mp3", media[0].Filename)
}

func TestParseCategory(t *testing.T) {
	for _, valid := range []string{"structured-notes", "narrative", "media"} {
		_, err := ParseCategory(valid)
		assert.NoError(t, err, valid)
	}
	_, err := ParseCategory("Notes")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
