package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/monreader/api/internal/ocr"
	"github.com/monreader/api/internal/storage"
	"github.com/monreader/api/internal/tts"
)

// Speaker is the slice of the TTS synthesizer the pipeline needs.
type Speaker interface {
	Speak(ctx context.Context, text, path string) tts.Result
}

// Upload is one incoming image submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

// Outcome is the user-facing result of a pipeline run. AudioURL is nil
// when no playable audio exists; the Message explains why.
type Outcome struct {
	Success  bool    `json:"success"`
	Text     string  `json:"text"`
	AudioURL *string `json:"audio_url"`
	Message  string  `json:"message"`
}

// ValidationError marks a rejected upload (bad content type or
// extension). It has no side effects and maps to a client error.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Pipeline sequences one request: stage image, OCR, TTS, cleanup.
// OCR success is the only hard requirement for a successful outcome;
// TTS failure is folded into the response, never escalated.
type Pipeline struct {
	ocr         ocr.Provider
	speaker     Speaker
	store       *storage.Paths
	allowedExts map[string]bool
}

func New(ocrProvider ocr.Provider, speaker Speaker, store *storage.Paths, allowedExts []string) *Pipeline {
	exts := make(map[string]bool, len(allowedExts))
	for _, e := range allowedExts {
		exts[strings.ToLower(e)] = true
	}
	return &Pipeline{
		ocr:         ocrProvider,
		speaker:     speaker,
		store:       store,
		allowedExts: exts,
	}
}

// Process runs the full image-to-speech pipeline for one upload. The
// staged image is deleted on every exit path; generated audio survives
// only when it backs the returned AudioURL.
func (p *Pipeline) Process(ctx context.Context, up Upload) (*Outcome, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil, &ValidationError{Reason: "file must be an image"}
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !p.allowedExts[ext] {
		return nil, &ValidationError{Reason: fmt.Sprintf("file extension %q not allowed", ext)}
	}

	data, err := io.ReadAll(up.Data)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	id := uuid.New().String()

	var cleanup storage.Cleanup
	defer cleanup.Run()

	imagePath, err := p.store.SaveUpload(id, ext, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	cleanup.Add(imagePath)

	text, err := p.ocr.ExtractText(ctx, ocr.Request{Image: data, MimeType: up.ContentType})
	if err != nil {
		return nil, err
	}

	if text == "" {
		return &Outcome{
			Success: true,
			Text:    "",
			Message: "No text detected in the image",
		}, nil
	}

	audioPath := p.store.AudioPath(id)
	cleanup.Add(audioPath)

	res := p.speaker.Speak(ctx, text, audioPath)
	if !res.Saved {
		slog.Info("audio generation unavailable, returning text only", "id", id, "error", res.Err)
		return &Outcome{
			Success: true,
			Text:    text,
			Message: "Text extracted but audio generation failed",
		}, nil
	}

	// Generated audio outlives the request; only the staged image is
	// removed by the deferred cleanup.
	cleanup.Forget(audioPath)

	message := "Processing completed successfully"
	if res.Placeholder {
		message = "Text extracted; synthesis failed, audio is a silent placeholder"
	}
	url := p.audioURL(id)
	return &Outcome{
		Success:  true,
		Text:     text,
		AudioURL: &url,
		Message:  message,
	}, nil
}

// GenerateAudio runs the TTS stage alone for pre-extracted text.
func (p *Pipeline) GenerateAudio(ctx context.Context, text string) *Outcome {
	id := uuid.New().String()

	res := p.speaker.Speak(ctx, text, p.store.AudioPath(id))
	if !res.Saved {
		return &Outcome{
			Success: true,
			Message: "Audio generation failed for all configured voices",
		}
	}

	message := "Audio generated successfully"
	if res.Placeholder {
		message = "Synthesis failed, audio is a silent placeholder"
	}
	url := p.audioURL(id)
	return &Outcome{
		Success:  true,
		AudioURL: &url,
		Message:  message,
	}
}

func (p *Pipeline) audioURL(id string) string {
	return "/audio/" + id + ".mp3"
}
