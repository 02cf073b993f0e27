package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

// StudyService is the user-wide study surface: documents uploaded here are
// scoped to the user alone (empty subject), with ask, quiz and suggested-link
// generation on top of the same knowledge store.
type StudyService interface {
	Upload(ctx context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (string, error)
	Ask(ctx context.Context, userID uuid.UUID, question, filename string) (string, error)
	Quiz(ctx context.Context, userID uuid.UUID, filename string, num int) ([]QuizQuestion, error)
	Links(ctx context.Context, userID uuid.UUID, filename string, num int) ([]SuggestedLink, error)
}

type studyService struct {
	log        *logger.Logger
	store      DocumentStore
	extractor  TextExtractor
	gen        GenerativeClient
	structured StructuredOutputService
	fileRepo   repos.CareFileRepo
}

func NewStudyService(
	log *logger.Logger,
	store DocumentStore,
	extractor TextExtractor,
	gen GenerativeClient,
	structured StructuredOutputService,
	fileRepo repos.CareFileRepo,
) StudyService {
	return &studyService{
		log:        log.With("service", "StudyService"),
		store:      store,
		extractor:  extractor,
		gen:        gen,
		structured: structured,
		fileRepo:   fileRepo,
	}
}

func (ss *studyService) scope(userID uuid.UUID, filename string) ScopeKey {
	return ScopeKey{UserID: userID.String(), ElderID: "", Filename: filename}
}

func (ss *studyService) Upload(ctx context.Context, userID uuid.UUID, filename, mimeType string, data []byte) (string, error) {
	if !documentMimeTypes[mimeType] {
		return "", fmt.Errorf("%w: only PDF or image (jpg/png/webp) allowed", ErrUnsupportedMediaType)
	}
	text, err := ss.extractor.Extract(ctx, data, mimeType, filename)
	if err != nil {
		return "", err
	}
	if err := ss.store.Put(ss.scope(userID, filename), DocEntry{Category: CategoryNotes, Text: text, MimeType: mimeType}); err != nil {
		return "", err
	}
	record := &types.CareFile{
		ID:          uuid.New(),
		UserID:      userID,
		Filename:    filename,
		Category:    string(CategoryNotes),
		MimeType:    mimeType,
		TextExcerpt: TruncateRunes(text, metadataExcerptLimit),
		CreatedAt:   time.Now(),
	}
	if _, err := ss.fileRepo.Create(ctx, nil, record); err != nil {
		ss.log.Warn("Could not persist study file metadata", "filename", filename, "error", err)
	}
	ss.log.Info("Stored study document", "filename", filename, "user_id", userID)
	return fmt.Sprintf("Uploaded '%s'", filename), nil
}

func (ss *studyService) Ask(ctx context.Context, userID uuid.UUID, question, filename string) (string, error) {
	var material string
	if filename != "" {
		if entry, ok := ss.store.FindText(ss.scope(userID, filename)); ok {
			material = entry.Text
		}
	}

	prompt := question
	if strings.TrimSpace(material) != "" {
		prompt = fmt.Sprintf("Context from '%s':\n\n%s\n\nQuestion: %s",
			filename, TruncateRunes(material, quizContextLimit), question)
	}
	return ss.gen.Generate(ctx, prompt)
}

func (ss *studyService) Quiz(ctx context.Context, userID uuid.UUID, filename string, num int) ([]QuizQuestion, error) {
	entry, ok := ss.store.FindText(ss.scope(userID, filename))
	if !ok {
		return nil, fmt.Errorf("%w: no context found for this file", ErrNotFound)
	}
	return ss.structured.GenerateQuiz(ctx, entry.Text, num)
}

func (ss *studyService) Links(ctx context.Context, userID uuid.UUID, filename string, num int) ([]SuggestedLink, error) {
	entry, ok := ss.store.FindText(ss.scope(userID, filename))
	if !ok {
		return nil, fmt.Errorf("%w: no context found for this file", ErrNotFound)
	}
	return ss.structured.GenerateLinks(ctx, entry.Text, num)
}
