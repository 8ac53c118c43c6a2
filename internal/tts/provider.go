package tts

import "context"

// Request holds the parameters for one synthesis attempt.
type Request struct {
	Text    string
	VoiceID string
	ModelID string
}

// Voice is one entry of the provider's voice catalog.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Provider is the interface for text-to-speech backends.
type Provider interface {
	// Synthesize returns the audio bytes (MP3) for the given text and
	// voice, or an error. An empty body from the provider is an error.
	Synthesize(ctx context.Context, req Request) ([]byte, error)
	Voices(ctx context.Context) ([]Voice, error)
	Name() string
}
