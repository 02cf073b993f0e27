package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

func TestAssemble_LabelsAndOrder(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "story.pdf"},
		DocEntry{Category: CategoryNarrative, Text: "once upon a time"},
	))
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "meds.pdf"},
		DocEntry{Category: CategoryNotes, Text: "take daily"},
	))

	assembler := NewContextAssembler(logger.NewNop(), store)
	merged := assembler.Assemble("u", "e", "")

	notesIdx := strings.Index(merged, "[STRUCTURED-NOTES - meds.pdf]\ntake daily")
	storyIdx := strings.Index(merged, "[NARRATIVE - story.pdf]\nonce upon a time")
	require.GreaterOrEqual(t, notesIdx, 0)
	require.GreaterOrEqual(t, storyIdx, 0)
	assert.Less(t, notesIdx, storyIdx)
}

func TestAssemble_PerDocumentTruncation(t *testing.T) {
	store := newTestStore(t)
	long := strings.Repeat("x", perDocumentExcerptLimit+500)
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "big.pdf"},
		DocEntry{Category: CategoryNotes, Text: long},
	))

	merged := NewContextAssembler(logger.NewNop(), store).Assemble("u", "e", "")
	assert.Contains(t, merged, strings.Repeat("x", perDocumentExcerptLimit))
	assert.NotContains(t, merged, strings.Repeat("x", perDocumentExcerptLimit+1))
}

func TestAssemble_FilenameFilter(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "a.pdf"},
		DocEntry{Category: CategoryNotes, Text: "full text of a"},
	))
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "b.pdf"},
		DocEntry{Category: CategoryNotes, Text: "full text of b"},
	))

	assembler := NewContextAssembler(logger.NewNop(), store)

	merged := assembler.Assemble("u", "e", "a.pdf")
	assert.Equal(t, "full text of a", merged)

	// A filtered miss is empty context, not an error.
	assert.Empty(t, assembler.Assemble("u", "e", "missing.pdf"))
}

func TestAssemble_MediaListedByNameOnly(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(
		ScopeKey{UserID: "u", ElderID: "e", Filename: "song.mp3"},
		DocEntry{Category: CategoryMedia, Path: "/tmp/song.mp3", Text: "should never appear"},
	))

	merged := NewContextAssembler(logger.NewNop(), store).Assemble("u", "e", "")
	assert.Contains(t, merged, "Uploaded media:\n- song.mp3")
	assert.NotContains(t, merged, "should never appear")
}

func TestAssemble_EmptyScope(t *testing.T) {
	merged := NewContextAssembler(logger.NewNop(), newTestStore(t)).Assemble("u", "e", "")
	assert.Empty(t, merged)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "ab", TruncateRunes("abc", 2))
	assert.Equal(t, "", TruncateRunes("abc", 0))
	// Multibyte text cuts on rune boundaries, never mid-character.
	assert.Equal(t, "héll", TruncateRunes("héllo", 4))
}
