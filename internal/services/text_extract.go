package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"github.com/yungbote/elderbridge-backend/internal/logger"
)

// visionExtractInstruction is the fixed prompt used when an uploaded image is
// turned into Q&A-ready text.
const visionExtractInstruction = "Extract readable text and key points from this document image. " +
	"Return clean, well-structured text suitable for Q&A."

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// TextExtractor converts an uploaded binary into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, mimeType, filename string) (string, error)
}

type textExtractor struct {
	log *logger.Logger
	gen GenerativeClient
}

func NewTextExtractor(log *logger.Logger, gen GenerativeClient) TextExtractor {
	return &textExtractor{log: log.With("service", "TextExtractor"), gen: gen}
}

func (te *textExtractor) Extract(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	switch {
	case mimeType == "application/pdf":
		return te.extractPDF(data, filename)
	case imageMimeTypes[mimeType]:
		// Vision output is accepted as-is, empty or not.
		return te.gen.GenerateVision(ctx, data, mimeType, visionExtractInstruction)
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mimeType)
}

func (te *textExtractor) extractPDF(data []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		te.log.Warn("PDF parse failed", "filename", filename, "error", err)
		return "", fmt.Errorf("%w: %q is not a readable PDF", ErrUnreadableDocument, filename)
	}

	var text strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil || pageText == "" {
			// Unreadable single pages are skipped; the document fails only
			// when nothing at all comes out.
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyDocument, filename)
	}
	return text.String(), nil
}
