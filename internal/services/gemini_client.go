package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/utils"
)

// GenerativeClient is the boundary to the text/vision generation backend.
// Calls are synchronous and single-shot; retries are the caller's concern.
type GenerativeClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateVision(ctx context.Context, image []byte, mimeType, instruction string) (string, error)
}

type geminiClient struct {
	log      *logger.Logger
	endpoint string
	apiKey   string

	textClient   *http.Client
	visionClient *http.Client
}

func NewGeminiClient(log *logger.Logger) (GenerativeClient, error) {
	apiKey := utils.GetEnv("GEMINI_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := utils.GetEnv("GEMINI_MODEL", "gemini-2.0-flash", log)
	baseURL := utils.GetEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com", log)
	textTimeout := utils.GetEnvAsInt("GEMINI_TIMEOUT_SECONDS", 20, log)
	visionTimeout := utils.GetEnvAsInt("GEMINI_VISION_TIMEOUT_SECONDS", 30, log)

	return &geminiClient{
		log:          log.With("service", "GeminiClient"),
		endpoint:     fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, model),
		apiKey:       apiKey,
		textClient:   &http.Client{Timeout: time.Duration(textTimeout) * time.Second},
		visionClient: &http.Client{Timeout: time.Duration(visionTimeout) * time.Second},
	}, nil
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (gc *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}
	return gc.call(ctx, gc.textClient, req)
}

func (gc *geminiClient) GenerateVision(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{
		{Text: instruction},
		{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(image),
		}},
	}}}}
	return gc.call(ctx, gc.visionClient, req)
}

func (gc *geminiClient) call(ctx context.Context, client *http.Client, body geminiRequest) (string, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrGenerationUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrGenerationUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", gc.apiKey)

	resp, err := client.Do(req)
	if err != nil {
		gc.log.Error("Gemini request failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrGenerationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gc.log.Error("Gemini returned non-2xx status", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrGenerationUnavailable, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		gc.log.Error("Gemini response decode failed", "error", err)
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationUnavailable, err)
	}

	// A successful transport call with missing answer fields degrades to an
	// empty string rather than an error.
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		gc.log.Warn("Gemini response had no candidate text")
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
