package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

func TestExtract_UnsupportedMimeType(t *testing.T) {
	extractor := NewTextExtractor(logger.NewNop(), &fakeGenClient{})
	for _, mime := range []string{"text/plain", "application/msword", "audio/mpeg", ""} {
		_, err := extractor.Extract(context.Background(), []byte("data"), mime, "f")
		assert.ErrorIs(t, err, ErrUnsupportedMediaType, mime)
	}
}

func TestExtract_ImageDelegatesToVision(t *testing.T) {
	gen := &fakeGenClient{
		visionFunc: func(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
			assert.Equal(t, "image/png", mimeType)
			assert.Equal(t, []byte{1, 2, 3}, image)
			return "extracted text", nil
		},
	}
	extractor := NewTextExtractor(logger.NewNop(), gen)

	text, err := extractor.Extract(context.Background(), []byte{1, 2, 3}, "image/png", "scan.png")
	require.NoError(t, err)
	assert.Equal(t, "extracted text", text)
	assert.Contains(t, gen.lastInstruction, "Extract readable text")
}

func TestExtract_EmptyVisionOutputIsNotAnError(t *testing.T) {
	gen := &fakeGenClient{
		visionFunc: func(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
			return "", nil
		},
	}
	extractor := NewTextExtractor(logger.NewNop(), gen)

	text, err := extractor.Extract(context.Background(), []byte{1}, "image/jpeg", "blank.jpg")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_CorruptPDF(t *testing.T) {
	extractor := NewTextExtractor(logger.NewNop(), &fakeGenClient{})
	_, err := extractor.Extract(context.Background(), []byte("not a pdf"), "application/pdf", "bad.pdf")
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}
