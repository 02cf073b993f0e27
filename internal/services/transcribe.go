package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/utils"
)

// Transcriber is the boundary to the audio transcription backend.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// whisperTranscriber shells out to a whisper.cpp binary. The binary writes a
// sidecar "<input>.txt" transcript next to the audio file.
type whisperTranscriber struct {
	log       *logger.Logger
	binPath   string
	modelPath string
}

func NewWhisperTranscriber(log *logger.Logger) Transcriber {
	return &whisperTranscriber{
		log:       log.With("service", "WhisperTranscriber"),
		binPath:   utils.GetEnv("WHISPER_BIN", "", log),
		modelPath: utils.GetEnv("WHISPER_MODEL", "", log),
	}
}

func (wt *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if wt.binPath == "" || wt.modelPath == "" {
		return "", fmt.Errorf("%w: transcription is not configured", ErrGenerationUnavailable)
	}

	transcriptPath := audioPath + ".txt"
	if cached, err := os.ReadFile(transcriptPath); err == nil {
		return strings.TrimSpace(string(cached)), nil
	}

	cmd := exec.CommandContext(ctx, wt.binPath, "-m", wt.modelPath, "-f", audioPath, "-otxt")
	output, err := cmd.CombinedOutput()
	if err != nil {
		wt.log.Error("Whisper transcription failed", "path", audioPath, "error", err, "output", string(output))
		return "", fmt.Errorf("%w: transcription failed", ErrGenerationUnavailable)
	}

	transcript, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("%w: transcript file not found", ErrGenerationUnavailable)
	}
	return strings.TrimSpace(string(transcript)), nil
}
