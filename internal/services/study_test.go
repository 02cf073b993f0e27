package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/elderbridge-backend/internal/db"
	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
)

func newStudyFixture(t *testing.T) (StudyService, DocumentStore, *fakeGenClient, uuid.UUID) {
	t.Helper()
	dsn := fmt.Sprintf("file:study_%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	log := logger.NewNop()
	gen := &fakeGenClient{}
	store := NewDocumentStore(log)
	service := NewStudyService(
		log, store,
		NewTextExtractor(log, gen),
		gen,
		NewStructuredOutputService(log, gen),
		repos.NewCareFileRepo(gdb, log),
	)
	return service, store, gen, uuid.New()
}

func TestStudyUpload_RejectsNonDocuments(t *testing.T) {
	service, _, _, userID := newStudyFixture(t)
	_, err := service.Upload(context.Background(), userID, "song.mp3", "audio/mpeg", []byte{1})
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestStudyUpload_StoresUnderUserScope(t *testing.T) {
	service, store, gen, userID := newStudyFixture(t)
	gen.visionFunc = func(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
		return "wound care guide", nil
	}

	_, err := service.Upload(context.Background(), userID, "guide.png", "image/png", []byte{1})
	require.NoError(t, err)

	entry, ok := store.FindText(ScopeKey{UserID: userID.String(), ElderID: "", Filename: "guide.png"})
	require.True(t, ok)
	assert.Equal(t, "wound care guide", entry.Text)
}

func TestStudyAsk_PlainQuestionWithoutFile(t *testing.T) {
	service, _, gen, userID := newStudyFixture(t)
	gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "answer", nil
	}

	answer, err := service.Ask(context.Background(), userID, "what is diabetes?", "")
	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
	assert.Equal(t, "what is diabetes?", gen.lastPrompt)
}

func TestStudyAsk_IncludesFileContext(t *testing.T) {
	service, store, gen, userID := newStudyFixture(t)
	require.NoError(t, store.Put(
		ScopeKey{UserID: userID.String(), ElderID: "", Filename: "guide.pdf"},
		DocEntry{Category: CategoryNotes, Text: "insulin basics"},
	))
	gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "answer", nil
	}

	_, err := service.Ask(context.Background(), userID, "summarize", "guide.pdf")
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt, "insulin basics")
	assert.Contains(t, gen.lastPrompt, "Context from 'guide.pdf'")
}

func TestStudyQuizAndLinks_RequireContext(t *testing.T) {
	service, _, _, userID := newStudyFixture(t)

	_, err := service.Quiz(context.Background(), userID, "missing.pdf", 3)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Links(context.Background(), userID, "missing.pdf", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}
