package services

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
)

const metadataExcerptLimit = 1000

var documentMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// AskResult is the outcome of one ask turn. MediaURL is set only when the
// question was classified as a media-playback request.
type AskResult struct {
	Answer   string `json:"answer"`
	MediaURL string `json:"media_url,omitempty"`
}

// EducationService is the elder-scoped document Q&A surface: uploads, asks,
// quizzes, file listings and the conversation log around them.
type EducationService interface {
	Upload(ctx context.Context, userID, elderID uuid.UUID, rawCategory, filename, mimeType string, data []byte) (string, error)
	Ask(ctx context.Context, userID, elderID uuid.UUID, question, filename string) (AskResult, error)
	Quiz(ctx context.Context, userID, elderID uuid.UUID, filename string, num int) ([]QuizQuestion, error)
	Files(ctx context.Context, userID, elderID uuid.UUID) ([]*types.CareFile, error)
	DeleteFile(ctx context.Context, userID, elderID uuid.UUID, filename, rawCategory string) error
	Messages(ctx context.Context, userID, elderID uuid.UUID, limit int) ([]*types.CareMessage, error)
	FetchStory(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error)
	FetchMediaPath(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error)
	Lyrics(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error)
}

type educationService struct {
	db           *gorm.DB
	log          *logger.Logger
	store        DocumentStore
	extractor    TextExtractor
	assembler    ContextAssembler
	gen          GenerativeClient
	structured   StructuredOutputService
	conversation ConversationLog
	transcriber  Transcriber
	elderRepo    repos.ElderRepo
	fileRepo     repos.CareFileRepo
	mediaRoot    string
}

func NewEducationService(
	db *gorm.DB,
	log *logger.Logger,
	store DocumentStore,
	extractor TextExtractor,
	assembler ContextAssembler,
	gen GenerativeClient,
	structured StructuredOutputService,
	conversation ConversationLog,
	transcriber Transcriber,
	elderRepo repos.ElderRepo,
	fileRepo repos.CareFileRepo,
	mediaRoot string,
) EducationService {
	return &educationService{
		db:           db,
		log:          log.With("service", "EducationService"),
		store:        store,
		extractor:    extractor,
		assembler:    assembler,
		gen:          gen,
		structured:   structured,
		conversation: conversation,
		transcriber:  transcriber,
		elderRepo:    elderRepo,
		fileRepo:     fileRepo,
		mediaRoot:    mediaRoot,
	}
}

func (es *educationService) Upload(ctx context.Context, userID, elderID uuid.UUID, rawCategory, filename, mimeType string, data []byte) (string, error) {
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return "", err
	}

	elder, err := es.elderRepo.GetOwned(ctx, nil, userID, elderID)
	if err != nil {
		return "", fmt.Errorf("Failed to verify elder ownership: %w", err)
	}
	if elder == nil {
		return "", fmt.Errorf("%w: elder not found for this user", ErrNotFound)
	}

	scope := ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename}

	if category.IsText() {
		if !documentMimeTypes[mimeType] {
			return "", fmt.Errorf("%w: only PDF or image (jpg/png/webp) allowed for %s", ErrUnsupportedMediaType, category)
		}
		text, err := es.extractor.Extract(ctx, data, mimeType, filename)
		if err != nil {
			return "", err
		}
		if err := es.store.Put(scope, DocEntry{Category: category, Text: text, MimeType: mimeType}); err != nil {
			return "", err
		}
		es.persistMetadata(ctx, userID, &elderID, filename, category, mimeType, "", text)
	} else {
		if !strings.HasSuffix(strings.ToLower(filename), ".mp3") {
			return "", fmt.Errorf("%w: only MP3 files allowed for media", ErrUnsupportedMediaType)
		}
		dir := filepath.Join(es.mediaRoot, userID.String(), elderID.String())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("Failed to create media directory: %w", err)
		}
		savePath := filepath.Join(dir, filepath.Base(filename))
		if err := os.WriteFile(savePath, data, 0o644); err != nil {
			return "", fmt.Errorf("Failed to save media file: %w", err)
		}
		if err := es.store.Put(scope, DocEntry{Category: CategoryMedia, Path: savePath, MimeType: "audio/mpeg"}); err != nil {
			return "", err
		}
		es.persistMetadata(ctx, userID, &elderID, filename, category, "audio/mpeg", savePath, "")
	}

	es.log.Info("Uploaded file", "filename", filename, "category", category, "user_id", userID)

	switch category {
	case CategoryMedia:
		return fmt.Sprintf("Media file '%s' uploaded successfully.", filename), nil
	case CategoryNarrative:
		return fmt.Sprintf("Story '%s' uploaded. You can now ask about it!", filename), nil
	default:
		return fmt.Sprintf("File '%s' uploaded to %s.", filename, category), nil
	}
}

// persistMetadata is best-effort: losing a metadata row never fails an upload.
func (es *educationService) persistMetadata(ctx context.Context, userID uuid.UUID, elderID *uuid.UUID, filename string, category Category, mimeType, storagePath, text string) {
	record := &types.CareFile{
		ID:          uuid.New(),
		UserID:      userID,
		ElderID:     elderID,
		Filename:    filename,
		Category:    string(category),
		MimeType:    mimeType,
		StoragePath: storagePath,
		TextExcerpt: TruncateRunes(text, metadataExcerptLimit),
		CreatedAt:   time.Now(),
	}
	if _, err := es.fileRepo.Create(ctx, nil, record); err != nil {
		es.log.Warn("Could not persist file metadata", "filename", filename, "error", err)
	}
}

func (es *educationService) Ask(ctx context.Context, userID, elderID uuid.UUID, question, filename string) (AskResult, error) {
	// The user turn is persisted before anything else so it survives a
	// failed generation.
	_ = es.conversation.Append(ctx, userID, &elderID, RoleUser, question)

	uid, eid := userID.String(), elderID.String()

	if result, handled := es.detectMediaPlayback(ctx, userID, elderID, question); handled {
		return result, nil
	}

	merged := es.assembler.Assemble(uid, eid, filename)

	var prompt string
	if strings.TrimSpace(merged) == "" {
		prompt = fmt.Sprintf(`You are a helpful assistant. The user has no uploaded documents or media; answer from general knowledge.

Question:
%s

Answer in a clear and helpful way:`, question)
	} else {
		prompt = fmt.Sprintf(`You are a helpful assistant that can answer questions using uploaded documents.

Context:
"""%s"""

Question:
%s

Answer in a clear and helpful way:`, TruncateRunes(merged, askContextLimit), question)
	}

	answer, err := es.gen.Generate(ctx, prompt)
	if err != nil {
		return AskResult{}, err
	}

	_ = es.conversation.Append(ctx, userID, &elderID, RoleAssistant, answer)
	return AskResult{Answer: answer}, nil
}

// detectMediaPlayback applies the playback heuristic: the lower-cased
// question contains the trigger keyword and the normalized name of a media
// item in scope. Keyword matching, not NLP.
func (es *educationService) detectMediaPlayback(ctx context.Context, userID, elderID uuid.UUID, question string) (AskResult, bool) {
	qLower := strings.ToLower(question)
	if !strings.Contains(qLower, "play") {
		return AskResult{}, false
	}
	media := es.store.MediaEntries(userID.String(), elderID.String())
	if len(media) == 0 {
		return AskResult{}, false
	}

	for _, m := range media {
		if strings.Contains(qLower, normalizeMediaName(m.Filename)) {
			answer := fmt.Sprintf("Playing '%s'...", m.Filename)
			mediaURL := fmt.Sprintf("/education/fetch/media?filename=%s&elder_id=%s",
				url.QueryEscape(m.Filename), elderID.String())
			_ = es.conversation.Append(ctx, userID, &elderID, RoleAssistant, answer)
			return AskResult{Answer: answer, MediaURL: mediaURL}, true
		}
	}

	names := make([]string, 0, len(media))
	for _, m := range media {
		names = append(names, m.Filename)
	}
	answer := fmt.Sprintf("I found these media files: %s. Please specify which one to play.", strings.Join(names, ", "))
	_ = es.conversation.Append(ctx, userID, &elderID, RoleAssistant, answer)
	return AskResult{Answer: answer}, true
}

func normalizeMediaName(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.ToLower(name), ".mp3"))
}

func (es *educationService) Quiz(ctx context.Context, userID, elderID uuid.UUID, filename string, num int) ([]QuizQuestion, error) {
	entry, ok := es.store.FindText(ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename})
	if !ok {
		return nil, fmt.Errorf("%w: no context found for this file", ErrNotFound)
	}
	return es.structured.GenerateQuiz(ctx, entry.Text, num)
}

func (es *educationService) Files(ctx context.Context, userID, elderID uuid.UUID) ([]*types.CareFile, error) {
	return es.fileRepo.ListScope(ctx, nil, userID, &elderID)
}

func (es *educationService) DeleteFile(ctx context.Context, userID, elderID uuid.UUID, filename, rawCategory string) error {
	category, err := ParseCategory(rawCategory)
	if err != nil {
		return err
	}
	scope := ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename}
	if err := es.store.Delete(scope, category); err != nil {
		return err
	}
	// Metadata removal is best-effort, same as metadata creation.
	if _, err := es.fileRepo.DeleteByScope(ctx, nil, userID, &elderID, filename, string(category)); err != nil {
		es.log.Warn("Could not delete file metadata", "filename", filename, "error", err)
	}
	return nil
}

func (es *educationService) Messages(ctx context.Context, userID, elderID uuid.UUID, limit int) ([]*types.CareMessage, error) {
	return es.conversation.List(ctx, userID, &elderID, limit)
}

func (es *educationService) FetchStory(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error) {
	entry, err := es.store.Get(ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename}, CategoryNarrative)
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

func (es *educationService) FetchMediaPath(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error) {
	entry, err := es.store.Get(ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename}, CategoryMedia)
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

func (es *educationService) Lyrics(ctx context.Context, userID, elderID uuid.UUID, filename string) (string, error) {
	entry, err := es.store.Get(ScopeKey{UserID: userID.String(), ElderID: elderID.String(), Filename: filename}, CategoryMedia)
	if err != nil {
		return "", err
	}
	return es.transcriber.Transcribe(ctx, entry.Path)
}
