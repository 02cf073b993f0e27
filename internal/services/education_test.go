package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/elderbridge-backend/internal/db"
	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	return f.text, f.err
}

type educationFixture struct {
	service EducationService
	store   DocumentStore
	gen     *fakeGenClient
	userID  uuid.UUID
	elderID uuid.UUID
	gdb     *gorm.DB
}

func newEducationFixture(t *testing.T) *educationFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:edu_%s?mode=memory&cache=shared", uuid.New().String())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(gdb))

	log := logger.NewNop()
	elderRepo := repos.NewElderRepo(gdb, log)
	fileRepo := repos.NewCareFileRepo(gdb, log)
	msgRepo := repos.NewCareMessageRepo(gdb, log)

	userID := uuid.New()
	elder := &types.Elder{
		ID:           uuid.New(),
		UserID:       userID,
		Relationship: "mother",
		Name:         "Margaret",
		LastUpdated:  time.Now(),
		CreatedAt:    time.Now(),
	}
	_, err = elderRepo.Create(context.Background(), nil, elder)
	require.NoError(t, err)

	gen := &fakeGenClient{}
	store := NewDocumentStore(log)
	service := NewEducationService(
		gdb, log,
		store,
		NewTextExtractor(log, gen),
		NewContextAssembler(log, store),
		gen,
		NewStructuredOutputService(log, gen),
		NewConversationLog(gdb, log, msgRepo),
		&fakeTranscriber{text: "la la la"},
		elderRepo, fileRepo,
		t.TempDir(),
	)

	return &educationFixture{
		service: service,
		store:   store,
		gen:     gen,
		userID:  userID,
		elderID: elder.ID,
		gdb:     gdb,
	}
}

func TestEducationUpload_RejectsForeignElder(t *testing.T) {
	fx := newEducationFixture(t)
	_, err := fx.service.Upload(context.Background(), fx.userID, uuid.New(), "structured-notes", "f.png", "image/png", []byte{1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEducationUpload_InvalidCategory(t *testing.T) {
	fx := newEducationFixture(t)
	_, err := fx.service.Upload(context.Background(), fx.userID, fx.elderID, "podcast", "f.png", "image/png", []byte{1})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestEducationUpload_TextDocument(t *testing.T) {
	fx := newEducationFixture(t)
	fx.gen.visionFunc = func(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
		return "care plan for Margaret", nil
	}

	msg, err := fx.service.Upload(context.Background(), fx.userID, fx.elderID, "structured-notes", "plan.png", "image/png", []byte{1})
	require.NoError(t, err)
	assert.Contains(t, msg, "plan.png")

	entry, ok := fx.store.FindText(ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: "plan.png"})
	require.True(t, ok)
	assert.Equal(t, "care plan for Margaret", entry.Text)

	files, err := fx.service.Files(context.Background(), fx.userID, fx.elderID)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "plan.png", files[0].Filename)
	assert.Equal(t, "structured-notes", files[0].Category)
}

func TestEducationUpload_MediaRequiresMP3(t *testing.T) {
	fx := newEducationFixture(t)
	_, err := fx.service.Upload(context.Background(), fx.userID, fx.elderID, "media", "song.wav", "audio/wav", []byte{1})
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}

func TestEducationAsk_GeneralKnowledgeWhenEmpty(t *testing.T) {
	fx := newEducationFixture(t)
	fx.gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "an answer", nil
	}

	result, err := fx.service.Ask(context.Background(), fx.userID, fx.elderID, "what is aspirin?", "")
	require.NoError(t, err)
	assert.Equal(t, "an answer", result.Answer)
	assert.Empty(t, result.MediaURL)
	assert.Contains(t, fx.gen.lastPrompt, "general knowledge")

	msgs, err := fx.service.Messages(context.Background(), fx.userID, fx.elderID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "what is aspirin?", msgs[0].Content)
	assert.Equal(t, RoleAssistant, msgs[1].Role)
}

func TestEducationAsk_FailureKeepsUserTurnOnly(t *testing.T) {
	fx := newEducationFixture(t)
	fx.gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("%w: timeout", ErrGenerationUnavailable)
	}

	_, err := fx.service.Ask(context.Background(), fx.userID, fx.elderID, "a question", "")
	require.ErrorIs(t, err, ErrGenerationUnavailable)

	msgs, err := fx.service.Messages(context.Background(), fx.userID, fx.elderID, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleUser, msgs[0].Role)
}

func TestEducationAsk_ContextPromptIncludesUploads(t *testing.T) {
	fx := newEducationFixture(t)
	scope := ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: "notes.pdf"}
	require.NoError(t, fx.store.Put(scope, DocEntry{Category: CategoryNotes, Text: "daily medication list"}))
	fx.gen.generateFunc = func(ctx context.Context, prompt string) (string, error) {
		return "from the notes", nil
	}

	_, err := fx.service.Ask(context.Background(), fx.userID, fx.elderID, "what meds?", "")
	require.NoError(t, err)
	assert.Contains(t, fx.gen.lastPrompt, "daily medication list")
	assert.NotContains(t, fx.gen.lastPrompt, "general knowledge")
}

func TestEducationAsk_MediaPlayback(t *testing.T) {
	fx := newEducationFixture(t)
	scope := ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: "Sunrise.mp3"}
	require.NoError(t, fx.store.Put(scope, DocEntry{Category: CategoryMedia, Path: "/tmp/sunrise.mp3"}))

	result, err := fx.service.Ask(context.Background(), fx.userID, fx.elderID, "please play sunrise for me", "")
	require.NoError(t, err)
	assert.Contains(t, result.Answer, "Sunrise.mp3")
	assert.Contains(t, result.MediaURL, "/education/fetch/media?filename=Sunrise.mp3")
	assert.Contains(t, result.MediaURL, fx.elderID.String())
}

func TestEducationAsk_MediaListingWhenAmbiguous(t *testing.T) {
	fx := newEducationFixture(t)
	for _, name := range []string{"First.mp3", "Second.mp3"} {
		scope := ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: name}
		require.NoError(t, fx.store.Put(scope, DocEntry{Category: CategoryMedia, Path: "/tmp/" + name}))
	}

	result, err := fx.service.Ask(context.Background(), fx.userID, fx.elderID, "play some music", "")
	require.NoError(t, err)
	assert.Empty(t, result.MediaURL)
	assert.Contains(t, result.Answer, "First.mp3")
	assert.Contains(t, result.Answer, "Second.mp3")
}

func TestEducationQuiz_NoContextForFile(t *testing.T) {
	fx := newEducationFixture(t)
	_, err := fx.service.Quiz(context.Background(), fx.userID, fx.elderID, "missing.pdf", 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEducationDeleteFile_RemovesStoreEntry(t *testing.T) {
	fx := newEducationFixture(t)
	scope := ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: "doc.pdf"}
	require.NoError(t, fx.store.Put(scope, DocEntry{Category: CategoryNotes, Text: "x"}))

	require.NoError(t, fx.service.DeleteFile(context.Background(), fx.userID, fx.elderID, "doc.pdf", "structured-notes"))
	_, ok := fx.store.FindText(scope)
	assert.False(t, ok)
}

func TestEducationLyrics_UsesTranscriber(t *testing.T) {
	fx := newEducationFixture(t)
	scope := ScopeKey{UserID: fx.userID.String(), ElderID: fx.elderID.String(), Filename: "song.mp3"}
	require.NoError(t, fx.store.Put(scope, DocEntry{Category: CategoryMedia, Path: "/tmp/song.mp3"}))

	lyrics, err := fx.service.Lyrics(context.Background(), fx.userID, fx.elderID, "song.mp3")
	require.NoError(t, err)
	assert.Equal(t, "la la la", lyrics)

	_, err = fx.service.Lyrics(context.Background(), fx.userID, fx.elderID, "absent.mp3")
	assert.True(t, errors.Is(err, ErrNotFound))
}
