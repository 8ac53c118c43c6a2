package tts

import (
	"context"
	"log/slog"
	"os"
	"time"
)

const placeholderDuration = time.Second

// SynthesizerConfig holds the voice ladder and text policy.
type SynthesizerConfig struct {
	PrimaryVoice    string
	BackupVoices    []string // tried in declared order after the primary
	Model           string
	MaxTextLength   int  // runes; longer text is truncated, default 1000
	SilenceFallback bool // write a silent placeholder when every voice fails
}

// Synthesizer turns text into an audio file on disk, falling through an
// ordered list of voices. Voice attempts are independent: one failure
// never aborts the remaining attempts.
type Synthesizer struct {
	provider Provider
	cfg      SynthesizerConfig
}

func NewSynthesizer(provider Provider, cfg SynthesizerConfig) *Synthesizer {
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = 1000
	}
	return &Synthesizer{provider: provider, cfg: cfg}
}

// Result is the tagged outcome of a Speak call: saved audio at Path, a
// silent placeholder at Path, or all attempts failed (Err holds the last
// provider error).
type Result struct {
	Saved       bool
	Path        string
	Placeholder bool
	Err         error
}

// Speak synthesizes text to the file at path, creating or overwriting it.
// Text beyond the configured cap is truncated first. The primary voice is
// tried, then each backup voice in order, stopping at the first success.
func (s *Synthesizer) Speak(ctx context.Context, text, path string) Result {
	text = Truncate(text, s.cfg.MaxTextLength)

	voices := make([]string, 0, 1+len(s.cfg.BackupVoices))
	voices = append(voices, s.cfg.PrimaryVoice)
	voices = append(voices, s.cfg.BackupVoices...)

	var lastErr error
	for i, voice := range voices {
		audio, err := s.provider.Synthesize(ctx, Request{
			Text:    text,
			VoiceID: voice,
			ModelID: s.cfg.Model,
		})
		if err != nil {
			slog.Warn("tts voice attempt failed",
				"provider", s.provider.Name(),
				"voice", voice,
				"attempt", i+1,
				"error", err,
			)
			lastErr = err
			continue
		}

		if err := os.WriteFile(path, audio, 0o644); err != nil {
			slog.Warn("tts save failed", "path", path, "error", err)
			lastErr = err
			continue
		}
		return Result{Saved: true, Path: path}
	}

	if s.cfg.SilenceFallback {
		if err := os.WriteFile(path, SilentMP3(placeholderDuration), 0o644); err != nil {
			slog.Warn("tts placeholder save failed", "path", path, "error", err)
		} else {
			return Result{Saved: true, Path: path, Placeholder: true}
		}
	}

	return Result{Err: lastErr}
}

// Truncate caps text at max runes. Overlong text keeps the first max-3
// runes and gains a trailing "..." so the result is exactly max runes.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max || max <= 3 {
		return text
	}
	return string(runes[:max-3]) + "..."
}
